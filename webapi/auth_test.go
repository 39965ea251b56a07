package webapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/nfransec/twocents/internal/fixtures"
	"github.com/nfransec/twocents/pkg/domain/user"
	"github.com/nfransec/twocents/pkg/service"
)

type AuthTestSuite struct {
	suite.Suite
	app      *fiber.App
	uow      *fixtures.StubUnitOfWork
	testUser *user.User
	authSvc  *service.AuthService
}

func (s *AuthTestSuite) SetupTest() {
	s.app, s.uow, s.testUser, s.authSvc = SetupTestApp(s.T())
}

func (s *AuthTestSuite) login(body string) (*http.Response, []byte) {
	s.T().Helper()
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, 10000)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint: errcheck
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, b
}

func (s *AuthTestSuite) TestLoginByUsername() {
	s.uow.Users.On("GetByUsername", "testuser").Return(s.testUser, nil)

	resp, body := s.login(`{"identity":"testuser","password":"password123"}`)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var response Response
	s.Require().NoError(json.Unmarshal(body, &response))
	data, ok := response.Data.(map[string]any)
	s.Require().True(ok)
	s.Assert().NotEmpty(data["token"])

	var jwtCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "jwt" {
			jwtCookie = c
		}
	}
	s.Require().NotNil(jwtCookie)
	s.Assert().Equal(data["token"], jwtCookie.Value)
	s.Assert().True(jwtCookie.HttpOnly)
}

func (s *AuthTestSuite) TestLoginByEmail() {
	s.uow.Users.On("GetByEmail", "test@example.com").Return(s.testUser, nil)

	resp, _ := s.login(`{"identity":"test@example.com","password":"password123"}`)
	s.Assert().Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginWrongPassword() {
	s.uow.Users.On("GetByUsername", "testuser").Return(s.testUser, nil)

	resp, _ := s.login(`{"identity":"testuser","password":"wrong"}`)
	s.Assert().Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

// Unknown identity and wrong password produce the same response.
func (s *AuthTestSuite) TestLoginUnknownUser() {
	s.uow.Users.On("GetByUsername", "ghost").Return(nil, user.ErrUserNotFound)

	resp, body := s.login(`{"identity":"ghost","password":"password123"}`)
	s.Require().Equal(fiber.StatusUnauthorized, resp.StatusCode)

	var problem ProblemDetails
	s.Require().NoError(json.Unmarshal(body, &problem))
	s.Assert().Equal("Invalid identity or password", problem.Title)
}

func (s *AuthTestSuite) TestLoginMissingFields() {
	resp, _ := s.login(`{"identity":"testuser"}`)
	s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
