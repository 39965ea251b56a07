package webapi

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/require"

	"github.com/nfransec/twocents/internal/fixtures"
	"github.com/nfransec/twocents/pkg/config"
	"github.com/nfransec/twocents/pkg/domain/user"
	"github.com/nfransec/twocents/pkg/service"
)

// NewTestApp creates a Fiber app for testing without rate limiting.
func NewTestApp(
	cardSvc *service.CardService,
	userSvc *service.UserService,
	authSvc *service.AuthService,
	cfg *config.App,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", nil)
		},
	})
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("twocents API is running")
	})

	CardRoutes(app, cardSvc, authSvc, cfg)
	UserRoutes(app, userSvc, authSvc, cfg)
	AuthRoutes(app, authSvc, cfg)
	return app
}

// SetupTestApp wires an app against a stub unit of work and returns a
// registered test user.
func SetupTestApp(t *testing.T) (
	app *fiber.App,
	uow *fixtures.StubUnitOfWork,
	testUser *user.User,
	authSvc *service.AuthService,
) {
	t.Helper()
	cfg := &config.App{
		Jwt: &config.Jwt{Secret: "secret", Expiry: time.Hour, CookieName: "jwt"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	uow = fixtures.NewStubUnitOfWork()
	cardSvc := service.NewCardService(uow.Factory(), logger)
	userSvc := service.NewUserService(uow.Factory(), logger)
	authSvc = service.NewAuthService(uow.Factory(), cfg.Jwt, logger)

	var err error
	testUser, err = user.New("testuser", "test@example.com", "password123")
	require.NoError(t, err)

	app = NewTestApp(cardSvc, userSvc, authSvc, cfg)
	return app, uow, testUser, authSvc
}

// getTestToken issues a token for the test user.
func getTestToken(t *testing.T, authSvc *service.AuthService, u *user.User) string {
	t.Helper()
	token, err := authSvc.GenerateToken(u)
	require.NoError(t, err)
	return token
}
