package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nfransec/twocents/pkg/domain"
	"github.com/nfransec/twocents/pkg/domain/card"
	"github.com/nfransec/twocents/pkg/domain/user"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes a standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details.
func ErrorResponseJSON(
	c *fiber.Ctx,
	status int,
	title string,
	detail any,
) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// notFoundMessage is the single message used for missing and unowned
// resources alike, so callers cannot probe for existence.
const notFoundMessage = "Card or user not found"

// DomainErrorResponse converts a domain error into the matching problem
// response. Not-found and ownership mismatches collapse into one vague
// message; validation errors keep their detail.
func DomainErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, card.ErrCardNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, domain.ErrNotFound):
		return ErrorResponseJSON(c, fiber.StatusNotFound, notFoundMessage, nil)
	case errors.Is(err, card.ErrNothingOutstanding):
		return ErrorResponseJSON(c, fiber.StatusConflict, "Nothing outstanding", err.Error())
	case errors.Is(err, card.ErrUnknownBank),
		errors.Is(err, card.ErrCardNotOffered),
		errors.Is(err, card.ErrNegativeAmount),
		errors.Is(err, card.ErrInvalidReminderChannel),
		errors.Is(err, card.ErrInvalidReminderDays),
		errors.Is(err, domain.ErrValidation):
		return ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, user.ErrUserUnauthorized):
		return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	case errors.Is(err, domain.ErrUpstream):
		return ErrorResponseJSON(c, fiber.StatusBadGateway, "Upstream dependency failure", nil)
	default:
		return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns the populated struct, or writes an
// error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, fe.Field()+" failed on "+fe.Tag())
			}
			return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", details)
		}
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
