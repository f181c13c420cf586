package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/service"
)

// ListHistory returns stored translations newest-first as previews.
func ListHistory(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.History(c.UserContext())
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetHistoryRecord returns one full record including both texts and the
// document structure.
func GetHistoryRecord(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.HistoryRecord(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// DownloadHistoryExport streams a stored record re-serialized into the
// requested format (query param format, default txt).
func DownloadHistoryExport(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.DownloadHistory(c.UserContext(), id, c.Query("format", "txt"))
		if err != nil {
			return mapServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.FileName))
		return c.Send(res.Payload)
	}
}

// DeleteHistoryRecord removes one record. Deleting an already-absent record
// still answers 204.
func DeleteHistoryRecord(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.DeleteHistory(c.UserContext(), id); err != nil {
			return mapServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ClearHistory truncates the whole history. The destructive call only runs
// with an explicit confirm=true query parameter.
func ClearHistory(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("confirm") != "true" {
			return writeError(c, fiber.StatusBadRequest, "CONFIRMATION_REQUIRED", "pass confirm=true to clear all history")
		}
		if err := svc.ClearHistory(c.UserContext()); err != nil {
			return mapServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
