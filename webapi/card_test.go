package webapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nfransec/twocents/internal/fixtures"
	"github.com/nfransec/twocents/pkg/domain/card"
	"github.com/nfransec/twocents/pkg/domain/user"
	"github.com/nfransec/twocents/pkg/service"
)

type CardTestSuite struct {
	suite.Suite
	app       *fiber.App
	uow       *fixtures.StubUnitOfWork
	testUser  *user.User
	testToken string
}

func (s *CardTestSuite) SetupTest() {
	var authSvc *service.AuthService
	s.app, s.uow, s.testUser, authSvc = SetupTestApp(s.T())
	s.testToken = getTestToken(s.T(), authSvc, s.testUser)
}

func (s *CardTestSuite) request(method, target, body string, authed bool) *httptest.ResponseRecorder {
	s.T().Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.testToken)
	}
	resp, err := s.app.Test(req, 10000)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint: errcheck
	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	rec.Body = bytes.NewBuffer(b)
	return rec
}

func (s *CardTestSuite) ownedCard(amount int64) *card.Card {
	c, err := card.New(s.testUser.ID, "Millennia", "HDFC", "", decimal.NewFromInt(100000))
	s.Require().NoError(err)
	if amount > 0 {
		s.Require().NoError(c.RecordStatement(decimal.NewFromInt(amount), decimal.NewFromInt(amount/10), "2025-03-05"))
	}
	return c
}

func (s *CardTestSuite) TestCreateCard() {
	s.uow.Cards.On("Create", mock.Anything).Return(nil)

	rec := s.request("POST", "/cards",
		`{"cardName":"Millennia","bankName":"HDFC","cardNumber":"4321","creditLimit":100000}`, true)
	s.Assert().Equal(fiber.StatusCreated, rec.Code)
}

func (s *CardTestSuite) TestCreateCardUnauthorized() {
	rec := s.request("POST", "/cards", `{"cardName":"Millennia","bankName":"HDFC"}`, false)
	s.Assert().Equal(fiber.StatusBadRequest, rec.Code) // missing JWT
}

func (s *CardTestSuite) TestCreateCardUnknownBank() {
	rec := s.request("POST", "/cards", `{"cardName":"Millennia","bankName":"Gringotts"}`, true)
	s.Assert().Equal(fiber.StatusBadRequest, rec.Code)
}

func (s *CardTestSuite) TestCreateCardMissingFields() {
	rec := s.request("POST", "/cards", `{"cardName":""}`, true)
	s.Assert().Equal(fiber.StatusBadRequest, rec.Code)
}

func (s *CardTestSuite) TestListCards() {
	s.uow.Cards.On("ListByUser", s.testUser.ID).Return([]*card.Card{s.ownedCard(1000)}, nil)

	rec := s.request("GET", "/cards", "", true)
	s.Require().Equal(fiber.StatusOK, rec.Code)

	var response Response
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Assert().NotNil(response.Data)
}

func (s *CardTestSuite) TestGetCardNotFound() {
	id := uuid.New()
	s.uow.Cards.On("Get", s.testUser.ID, id).Return(nil, card.ErrCardNotFound)

	rec := s.request("GET", fmt.Sprintf("/cards/%s", id), "", true)
	s.Assert().Equal(fiber.StatusNotFound, rec.Code)
}

func (s *CardTestSuite) TestGetCardInvalidID() {
	rec := s.request("GET", "/cards/not-a-uuid", "", true)
	s.Assert().Equal(fiber.StatusBadRequest, rec.Code)
}

func (s *CardTestSuite) TestMarkCardPaid() {
	c := s.ownedCard(5000)
	s.uow.Cards.On("Get", s.testUser.ID, c.ID).Return(c, nil)
	s.uow.Cards.On("Update", c).Return(nil)

	rec := s.request("POST", fmt.Sprintf("/cards/%s/pay", c.ID), "", true)
	s.Require().Equal(fiber.StatusOK, rec.Code)

	var response Response
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	data, err := json.Marshal(response.Data)
	s.Require().NoError(err)
	var got card.Card
	s.Require().NoError(json.Unmarshal(data, &got))
	s.Assert().True(got.IsPaid)
	s.Assert().True(got.OutstandingAmount.IsZero())
	s.Require().Len(got.PaymentHistory, 1)
	s.Assert().True(got.PaymentHistory[0].Amount.Equal(decimal.NewFromInt(5000)))
}

func (s *CardTestSuite) TestMarkCardPaidNothingOutstanding() {
	c := s.ownedCard(0)
	s.uow.Cards.On("Get", s.testUser.ID, c.ID).Return(c, nil)

	rec := s.request("POST", fmt.Sprintf("/cards/%s/pay", c.ID), "", true)
	s.Assert().Equal(fiber.StatusConflict, rec.Code)
}

func (s *CardTestSuite) TestRecordStatement() {
	c := s.ownedCard(0)
	s.uow.Cards.On("Get", s.testUser.ID, c.ID).Return(c, nil)
	s.uow.Cards.On("Update", c).Return(nil)

	rec := s.request("PUT", fmt.Sprintf("/cards/%s/statement", c.ID),
		`{"totalAmount":5000,"minAmount":500,"dueDate":"2025-03-05"}`, true)
	s.Require().Equal(fiber.StatusOK, rec.Code)
	s.Assert().False(c.IsPaid)
}

func (s *CardTestSuite) TestIngestStatementEmail() {
	c := s.ownedCard(0)
	s.uow.Cards.On("Get", s.testUser.ID, c.ID).Return(c, nil)
	s.uow.Cards.On("Update", c).Return(nil)

	body := map[string]string{
		"body": "<td>Total Amount Due</td><td>Rs. 2,500.00</td><td>Due Date</td><td>2025-04-05</td>",
	}
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	rec := s.request("POST", fmt.Sprintf("/cards/%s/statement/email", c.ID), string(raw), true)
	s.Require().Equal(fiber.StatusOK, rec.Code)
	s.Assert().True(c.OutstandingAmount.Equal(decimal.RequireFromString("2500.00")))
}

func (s *CardTestSuite) TestUpdateSchedule() {
	c := s.ownedCard(0)
	s.uow.Cards.On("Get", s.testUser.ID, c.ID).Return(c, nil)
	s.uow.Cards.On("Update", c).Return(nil)

	rec := s.request("PUT", fmt.Sprintf("/cards/%s/schedule", c.ID),
		`{"autoPayEnabled":true,"reminderDays":5,"reminderChannel":"push"}`, true)
	s.Assert().Equal(fiber.StatusOK, rec.Code)
	s.Assert().True(c.AutoPayEnabled)
}

func (s *CardTestSuite) TestUpdateScheduleInvalidChannel() {
	c := s.ownedCard(0)
	rec := s.request("PUT", fmt.Sprintf("/cards/%s/schedule", c.ID),
		`{"autoPayEnabled":true,"reminderDays":5,"reminderChannel":"pigeon"}`, true)
	s.Assert().Equal(fiber.StatusBadRequest, rec.Code)
}

func (s *CardTestSuite) TestSearchCardsEmpty() {
	s.uow.Cards.On("Search", s.testUser.ID, "visa").Return([]*card.Card{}, nil)

	rec := s.request("GET", "/cards/search?query=visa", "", true)
	s.Require().Equal(fiber.StatusOK, rec.Code)
}

func (s *CardTestSuite) TestDeleteCard() {
	id := uuid.New()
	s.uow.Cards.On("Delete", s.testUser.ID, id).Return(nil)

	rec := s.request("DELETE", fmt.Sprintf("/cards/%s", id), "", true)
	s.Assert().Equal(fiber.StatusNoContent, rec.Code)
}

func (s *CardTestSuite) TestDeleteCardNotFound() {
	id := uuid.New()
	s.uow.Cards.On("Delete", s.testUser.ID, id).Return(card.ErrCardNotFound)

	rec := s.request("DELETE", fmt.Sprintf("/cards/%s", id), "", true)
	s.Assert().Equal(fiber.StatusNotFound, rec.Code)
}

func TestCardTestSuite(t *testing.T) {
	suite.Run(t, new(CardTestSuite))
}
