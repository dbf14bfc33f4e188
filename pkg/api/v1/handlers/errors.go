// Package handlers provides HTTP request handling
package handlers

import (
	"errors"
	"strings"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hasnain-nisan/admindash/internal/logger"
	"github.com/hasnain-nisan/admindash/internal/services"
	"github.com/hasnain-nisan/admindash/internal/types"
)

// Common error messages
const (
	ErrMsgInvalidReqBody   = "Invalid request body"
	ErrMsgInvalidListQuery = "Invalid list parameters"
	ErrMsgIDRequired       = "id is required"
	ErrMsgListFailed       = "Failed to list rows"
	ErrMsgGetFailed        = "Failed to get row"
	ErrMsgCreateFailed     = "Failed to create row"
	ErrMsgUpdateFailed     = "Failed to update row"
	ErrMsgDeleteFailed     = "Failed to delete row"
	ErrMsgRestoreFailed    = "Failed to restore row"
)

var notFoundErrors = []error{
	services.ErrUserNotFound,
	services.ErrClientNotFound,
	services.ErrProjectNotFound,
	services.ErrStakeholderNotFound,
	services.ErrInterviewNotFound,
	services.ErrConfigNotFound,
}

// respondWithError maps a service error to a status code and error envelope.
// Unexpected errors are logged and reported with fallback.
func respondWithError(c *fiber.Ctx, err error, fallback string) error {
	var resp types.ErrorResponse
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		resp = types.ErrInvalidInput(strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": "))
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp = types.ErrNotFound(notFoundMessage(err))
	case errors.Is(err, services.ErrConflict):
		resp = types.ErrConflict(strings.ReplaceAll(err.Error(), "\n", ": "))
	default:
		logger.ErrorWithFields(fallback, map[string]interface{}{
			"error":  err.Error(),
			"method": c.Method(),
			"path":   c.Path(),
		})
		resp = types.ErrServer(fallback)
	}
	return c.Status(resp.Status).JSON(resp)
}

func notFoundMessage(err error) string {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "not found"
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ErrInvalidInput(msg))
}
