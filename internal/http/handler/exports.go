package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/service"
)

// ExportTranslation serializes the translated session into the requested
// format (query param format, default txt), records a history entry and
// stores the artifact for download.
func ExportTranslation(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := c.Query("format", "txt")
		res, err := svc.Export(c.UserContext(), format)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
