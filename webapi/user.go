package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/nfransec/twocents/pkg/config"
	"github.com/nfransec/twocents/pkg/middleware"
	"github.com/nfransec/twocents/pkg/service"
)

// NewUserInput is the request body for registration.
type NewUserInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateUserInput is the request body for profile updates.
type UpdateUserInput struct {
	FullName *string `json:"fullName"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// UserRoutes registers the user endpoints.
func UserRoutes(app *fiber.App, userSvc *service.UserService, authSvc *service.AuthService, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/user", CreateUser(userSvc))
	app.Get("/users", protected, middleware.AdminProtected(), ListUsers(userSvc))
	app.Get("/user/:id", protected, GetUser(userSvc, authSvc))
	app.Put("/user/:id", protected, UpdateUser(userSvc, authSvc))
	app.Delete("/user/:id", protected, DeleteUser(userSvc, authSvc))
}

// ownUserID parses :id and verifies it matches the authenticated user.
func ownUserID(c *fiber.Ctx, authSvc *service.AuthService) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		log.Errorf("Invalid user ID: %v", err)
		return uuid.Nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid user ID", "User ID must be a valid UUID")
	}
	userID, err := currentUserID(c, authSvc)
	if err != nil {
		return uuid.Nil, err
	}
	if id != userID {
		// Same vague message as a missing user, no existence leakage.
		return uuid.Nil, ErrorResponseJSON(c, fiber.StatusNotFound, notFoundMessage, nil)
	}
	return id, nil
}

// CreateUser registers a new account.
// @Summary Create a new user
// @Description Create a new user account with username, email, and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body NewUserInput true "User creation data"
// @Success 201 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /user [post]
func CreateUser(userSvc *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[NewUserInput](c)
		if input == nil {
			return err
		}
		if len(input.Password) > 72 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", "Password too long")
		}
		u, err := userSvc.CreateUser(input.Username, input.Email, input.Password)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Couldn't create user", err.Error())
		}
		u.Password = ""
		return SuccessResponseJSON(c, fiber.StatusCreated, "Created user", u)
	}
}

// GetUser returns the authenticated user's own profile.
// @Summary Get user by ID
// @Description Retrieve a user by their ID (own profile only)
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /user/{id} [get]
// @Security Bearer
func GetUser(userSvc *service.UserService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ownUserID(c, authSvc)
		if err != nil {
			return err
		}
		u, err := userSvc.GetUser(id)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		u.Password = ""
		return SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// ListUsers returns all users. Admin only.
// @Summary List users
// @Description List all registered users (admin only)
// @Tags users
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Router /users [get]
// @Security Bearer
func ListUsers(userSvc *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := userSvc.ListUsers()
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		for _, u := range users {
			u.Password = ""
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Users found", users)
	}
}

// UpdateUser updates the authenticated user's own profile.
// @Summary Update user
// @Description Update user information by ID (own profile only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserInput true "User update data"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /user/{id} [put]
// @Security Bearer
func UpdateUser(userSvc *service.UserService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ownUserID(c, authSvc)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.UpdateUser(id, service.UserUpdate{
			FullName: input.FullName,
			Password: input.Password,
		})
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		u.Password = ""
		return SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", u)
	}
}

// DeleteUser deletes the authenticated user's account and cascades to
// their cards.
// @Summary Delete user
// @Description Delete a user account and all their cards (own profile only)
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 204 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /user/{id} [delete]
// @Security Bearer
func DeleteUser(userSvc *service.UserService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ownUserID(c, authSvc)
		if err != nil {
			return err
		}
		if err := userSvc.DeleteUser(id); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
