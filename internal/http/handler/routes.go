package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"filevault/internal/auth"
	"filevault/internal/http/middleware"
	"filevault/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, validator auth.SessionValidator, sessionCookie string, fileSvc service.FileService) {
	// Serve OpenAPI spec and Swagger UI
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
  <title>API Docs</title>
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

	// Readiness probe: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	// Everything under /files requires an authenticated session.
	files := app.Group("/files", middleware.SessionAuth(validator, sessionCookie))
	files.Get("/", ListFiles(fileSvc))
	files.Post("/upload", CreateUploadIntent(fileSvc))
	files.Get("/:id/download", DownloadFile(fileSvc))
	files.Patch("/:id", RenameFile(fileSvc))
	files.Delete("/:id", DeleteFile(fileSvc))
}
