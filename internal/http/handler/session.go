package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
	"github.com/AlkamaSunasara00/tranzora-ai/internal/service"
)

// GetSession returns the current session snapshot.
func GetSession(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Snapshot(c.UserContext()))
	}
}

// UploadFile installs a new source file from a multipart form (field name:
// file). A rejected file leaves the session untouched.
func UploadFile(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		payload, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		snap, err := svc.SelectFile(c.UserContext(), fh.Filename, ct, fh.Size, payload)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(snap)
	}
}

// TranslateSession runs the remote translation against the selected file.
// The response snapshot is always in the translated state; remote failures
// surface as marker text within it.
func TranslateSession(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.Translate(c.UserContext())
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(snap)
	}
}

type setLanguageRequest struct {
	Code string `json:"code"`
}

// SetTargetLanguage changes the target language for the next translation.
func SetTargetLanguage(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req setLanguageRequest
		if err := c.BodyParser(&req); err != nil || req.Code == "" {
			return writeError(c, fiber.StatusBadRequest, "LANGUAGE_REQUIRED", "language code is required")
		}
		snap, err := svc.SetLanguage(c.UserContext(), req.Code)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(snap)
	}
}

// ResetSession clears the file, results and target language.
func ResetSession(svc service.TranslationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.Reset(c.UserContext())
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(snap)
	}
}

// ListLanguages returns the supported target-language catalog.
func ListLanguages() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"data":    model.Languages,
			"default": model.DefaultLanguageCode,
		})
	}
}
