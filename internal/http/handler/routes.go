package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.TranslationService) {
	// Serve the OpenAPI spec and Swagger UI.
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Tranzora API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/languages", ListLanguages())

	app.Get("/session", GetSession(svc))
	app.Post("/session/file", UploadFile(svc))
	app.Post("/session/translate", TranslateSession(svc))
	app.Post("/session/language", SetTargetLanguage(svc))
	app.Post("/session/reset", ResetSession(svc))

	app.Post("/exports", ExportTranslation(svc))

	app.Get("/history", ListHistory(svc))
	app.Get("/history/:id", GetHistoryRecord(svc))
	app.Get("/history/:id/download", DownloadHistoryExport(svc))
	app.Delete("/history/:id", DeleteHistoryRecord(svc))
	app.Delete("/history", ClearHistory(svc))
}
