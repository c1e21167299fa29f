package presenter

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/prepmatch/backend/pkg/apperr"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Success: false, Error: message})
}

// FromError maps apperr kinds to HTTP statuses. Unclassified errors become a
// generic 500 without the underlying message.
func FromError(c *fiber.Ctx, err error) error {
	switch apperr.KindOf(err) {
	case apperr.Validation:
		return Error(c, http.StatusBadRequest, apperr.MessageOf(err))
	case apperr.Unauthorized:
		return Error(c, http.StatusUnauthorized, apperr.MessageOf(err))
	case apperr.Forbidden:
		return Error(c, http.StatusForbidden, apperr.MessageOf(err))
	case apperr.NotFound:
		return Error(c, http.StatusNotFound, apperr.MessageOf(err))
	case apperr.Conflict:
		return Error(c, http.StatusConflict, apperr.MessageOf(err))
	default:
		return Error(c, http.StatusInternalServerError, apperr.MessageOf(err))
	}
}

// FromErrorVerbose behaves like FromError but attaches the raw error text on
// internal failures. Only the matching cache read and subscription paths use
// it; they historically exposed the driver message for diagnostics.
func FromErrorVerbose(c *fiber.Ctx, err error) error {
	if apperr.KindOf(err) == apperr.Internal {
		return Error(c, http.StatusInternalServerError, err.Error())
	}
	return FromError(c, err)
}
