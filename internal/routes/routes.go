package routes

import (
	"translation-backend/internal/handlers"
	"translation-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, exportHandler *handlers.ExportHandler, translationHandler *handlers.TranslationHandler) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1", middleware.RequireUser())

	// Export routes - creation, history and downloads
	exports := v1.Group("/exports")
	{
		exports.Post("/", exportHandler.CreateExport)
		exports.Get("/", exportHandler.ListExports)
		exports.Get("/:id/download", exportHandler.DownloadExport)
		exports.Get("/:id/link", exportHandler.GetExportLink)
		exports.Delete("/:id", exportHandler.DeleteExport)
	}

	// Project routes
	projects := v1.Group("/projects")
	{
		projects.Get("/:id/export/:code", exportHandler.ExportLanguage)
		projects.Get("/:id/missing/:languageId", translationHandler.MissingTranslations)
		projects.Post("/:id/groups", translationHandler.CreateGroup)
	}

	// Translation routes - batch operations
	translations := v1.Group("/translations")
	{
		translations.Post("/bulk", translationHandler.BulkUpdate)
		translations.Post("/copy", translationHandler.CopyTranslations)
	}
}
