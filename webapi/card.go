package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nfransec/twocents/pkg/config"
	"github.com/nfransec/twocents/pkg/domain/card"
	"github.com/nfransec/twocents/pkg/middleware"
	"github.com/nfransec/twocents/pkg/service"
)

// CreateCardInput is the request body for card creation.
type CreateCardInput struct {
	CardName    string          `json:"cardName" validate:"required"`
	BankName    string          `json:"bankName" validate:"required"`
	CardNumber  string          `json:"cardNumber"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

// EditCardInput is the request body for editing descriptive fields.
// Absent fields are left unchanged.
type EditCardInput struct {
	CardName    *string          `json:"cardName"`
	BankName    *string          `json:"bankName"`
	CardNumber  *string          `json:"cardNumber"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
	BillingDate *string          `json:"billingDate"`
}

// StatementInput is the request body for ingesting parsed statement
// fields.
type StatementInput struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	MinAmount   decimal.Decimal `json:"minAmount"`
	DueDate     string          `json:"dueDate"`
}

// StatementEmailInput carries a raw bank email body for extraction.
type StatementEmailInput struct {
	Body string `json:"body" validate:"required"`
}

// ScheduleInput is the request body for auto-pay preferences.
type ScheduleInput struct {
	AutoPayEnabled  bool   `json:"autoPayEnabled"`
	ReminderDays    int    `json:"reminderDays" validate:"min=0,max=28"`
	ReminderChannel string `json:"reminderChannel" validate:"required,oneof=email push both"`
}

// CardRoutes registers all card endpoints. Everything is JWT protected.
func CardRoutes(app *fiber.App, cardSvc *service.CardService, authSvc *service.AuthService, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/cards", protected, CreateCard(cardSvc, authSvc))
	app.Get("/cards", protected, ListCards(cardSvc, authSvc))
	app.Get("/cards/search", protected, SearchCards(cardSvc, authSvc))
	app.Get("/cards/:id", protected, GetCard(cardSvc, authSvc))
	app.Put("/cards/:id", protected, EditCard(cardSvc, authSvc))
	app.Delete("/cards/:id", protected, DeleteCard(cardSvc, authSvc))
	app.Post("/cards/:id/pay", protected, MarkCardPaid(cardSvc, authSvc))
	app.Put("/cards/:id/statement", protected, RecordStatement(cardSvc, authSvc))
	app.Post("/cards/:id/statement/email", protected, IngestStatementEmail(cardSvc, authSvc))
	app.Put("/cards/:id/schedule", protected, UpdateSchedule(cardSvc, authSvc))
}

// currentUserID resolves the authenticated user from the verified token.
func currentUserID(c *fiber.Ctx, authSvc *service.AuthService) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
	}
	userID, err := authSvc.GetCurrentUserID(token)
	if err != nil {
		log.Errorf("Failed to parse user ID from token: %v", err)
		return uuid.Nil, ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	return userID, nil
}

// cardID parses the :id path parameter.
func cardID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid card ID", "Card ID must be a valid UUID")
	}
	return id, nil
}

// CreateCard registers a new card for the authenticated user.
// @Summary Create a card
// @Description Register a new credit card for the authenticated user
// @Tags cards
// @Accept json
// @Produce json
// @Param request body CreateCardInput true "Card data"
// @Success 201 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /cards [post]
// @Security Bearer
func CreateCard(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[CreateCardInput](c)
		if input == nil {
			return err
		}
		created, err := cardSvc.CreateCard(userID, input.CardName, input.BankName, input.CardNumber, input.CreditLimit)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Card created", created)
	}
}

// ListCards lists the authenticated user's cards.
// @Summary List cards
// @Description List all cards owned by the authenticated user
// @Tags cards
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} ProblemDetails
// @Router /cards [get]
// @Security Bearer
func ListCards(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		cards, err := cardSvc.ListCards(userID)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Cards found", cards)
	}
}

// SearchCards matches the query against card and bank names.
// @Summary Search cards
// @Description Case-insensitive substring search over card and bank names
// @Tags cards
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} Response
// @Failure 401 {object} ProblemDetails
// @Router /cards/search [get]
// @Security Bearer
func SearchCards(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		cards, err := cardSvc.SearchCards(userID, c.Query("query"))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Search results", cards)
	}
}

// GetCard retrieves one card by ID.
// @Summary Get card
// @Description Retrieve one of the authenticated user's cards
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /cards/{id} [get]
// @Security Bearer
func GetCard(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := cardID(c)
		if err != nil {
			return err
		}
		found, err := cardSvc.GetCard(userID, id)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Card found", found)
	}
}

// EditCard updates descriptive card fields.
// @Summary Edit card
// @Description Update card name, bank, number, limit or billing date
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body EditCardInput true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /cards/{id} [put]
// @Security Bearer
func EditCard(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := cardID(c)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[EditCardInput](c)
		if input == nil {
			return err
		}
		updated, err := cardSvc.EditCard(userID, id, card.Details{
			CardName:    input.CardName,
			BankName:    input.BankName,
			CardNumber:  input.CardNumber,
			CreditLimit: input.CreditLimit,
			BillingDate: input.BillingDate,
		})
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Card updated", updated)
	}
}

// MarkCardPaid settles the outstanding balance.
// @Summary Mark card paid
// @Description Settle the card's full outstanding balance
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} Response
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /cards/{id}/pay [post]
// @Security Bearer
func MarkCardPaid(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := cardID(c)
		if err != nil {
			return err
		}
		paid, err := cardSvc.MarkCardPaid(userID, id)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Card marked as paid", paid)
	}
}

// RecordStatement ingests parsed statement fields.
// @Summary Record statement
// @Description Ingest a parsed billing statement for the card
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body StatementInput true "Statement fields"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /cards/{id}/statement [put]
// @Security Bearer
func RecordStatement(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := cardID(c)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[StatementInput](c)
		if input == nil {
			return err
		}
		updated, err := cardSvc.RecordStatement(userID, id, input.TotalAmount, input.MinAmount, input.DueDate)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Statement recorded", updated)
	}
}

// IngestStatementEmail extracts statement fields from a raw email body
// and records them.
// @Summary Ingest statement email
// @Description Extract statement fields from a raw bank email and record them
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body StatementEmailInput true "Raw email body"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /cards/{id}/statement/email [post]
// @Security Bearer
func IngestStatementEmail(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := cardID(c)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[StatementEmailInput](c)
		if input == nil {
			return err
		}
		updated, extracted, err := cardSvc.IngestStatementEmail(userID, id, input.Body)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Statement extracted", fiber.Map{
			"card":      updated,
			"extracted": extracted,
		})
	}
}

// UpdateSchedule sets auto-pay and reminder preferences.
// @Summary Update schedule
// @Description Update the card's auto-pay and reminder preference
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body ScheduleInput true "Schedule preference"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /cards/{id}/schedule [put]
// @Security Bearer
func UpdateSchedule(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := cardID(c)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[ScheduleInput](c)
		if input == nil {
			return err
		}
		updated, err := cardSvc.UpdateSchedule(userID, id, input.AutoPayEnabled, input.ReminderDays, card.ReminderChannel(input.ReminderChannel))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Schedule updated", updated)
	}
}

// DeleteCard removes a card.
// @Summary Delete card
// @Description Delete one of the authenticated user's cards
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 204 {object} Response
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /cards/{id} [delete]
// @Security Bearer
func DeleteCard(cardSvc *service.CardService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		id, err := cardID(c)
		if err != nil {
			return err
		}
		if err := cardSvc.DeleteCard(userID, id); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
