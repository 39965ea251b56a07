package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nfransec/twocents/pkg/config"
	"github.com/nfransec/twocents/pkg/service"
)

// LoginInput is the request body for authentication.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthRoutes registers the authentication endpoints.
func AuthRoutes(app *fiber.App, authSvc *service.AuthService, cfg *config.App) {
	app.Post("/login", Login(authSvc, cfg))
}

// Login handles user authentication and returns a JWT token. The token
// is also set as a cookie for browser clients.
// @Summary User login
// @Description Authenticate user with identity (username or email) and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /login [post]
func Login(authSvc *service.AuthService, cfg *config.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(input.Identity, input.Password)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
		}
		if u == nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Invalid identity or password", nil)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
		}
		c.Cookie(&fiber.Cookie{
			Name:     cfg.Jwt.CookieName,
			Value:    token,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteStrictMode,
			MaxAge:   int(cfg.Jwt.Expiry.Seconds()),
		})
		return SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
