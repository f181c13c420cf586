package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/export"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/http/middleware"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/service"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/session"
)

// errorPayload is the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response. The message must be
// safe for clients; internal error details stay in the logs.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// mapServiceError translates domain sentinels into HTTP error responses.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidFileType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "unsupported file type")
	case errors.Is(err, session.ErrTranslationInFlight):
		return writeError(c, fiber.StatusConflict, "TRANSLATION_IN_FLIGHT", "translation already in progress")
	case errors.Is(err, session.ErrNoFile):
		return writeError(c, fiber.StatusConflict, "NO_FILE_SELECTED", "no file selected")
	case errors.Is(err, session.ErrUnknownLanguage):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_LANGUAGE", "unknown language code")
	case errors.Is(err, service.ErrNothingToExport):
		return writeError(c, fiber.StatusConflict, "NOTHING_TO_EXPORT", "no translated text to export")
	case errors.Is(err, export.ErrUnknownFormat):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_FORMAT", "unknown export format")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "history record not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for errors escaping the handlers.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
