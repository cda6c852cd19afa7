package handlers

import (
	"path/filepath"
	"strings"

	"translation-backend/internal/export"
	"translation-backend/internal/middleware"
	"translation-backend/internal/services"
	"translation-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type ExportHandler struct {
	exports   services.ExportService
	jobs      services.ExportJobService
	downloads services.DownloadService
	fs        afero.Fs
	logger    *logrus.Logger
}

func NewExportHandler(
	exports services.ExportService,
	jobs services.ExportJobService,
	downloads services.DownloadService,
	fs afero.Fs,
	logger *logrus.Logger,
) *ExportHandler {
	return &ExportHandler{
		exports:   exports,
		jobs:      jobs,
		downloads: downloads,
		fs:        fs,
		logger:    logger,
	}
}

// CreateExport godoc
// @Summary Export project translations
// @Description Export a project's translations as JSON (zip for several languages) or CSV. With async=true the export runs in the background and can be downloaded later.
// @Tags exports
// @Accept json
// @Produce json
// @Produce octet-stream
// @Param X-User-ID header int true "Requesting user"
// @Param export body ExportRequest true "Export request"
// @Success 200 {file} file "Export file"
// @Success 202 {object} DispatchResponse "Export started"
// @Failure 404 {object} utils.StandardResponse "Project or language not found"
// @Failure 422 {object} utils.StandardResponse "Validation failed"
// @Router /exports [post]
func (h *ExportHandler) CreateExport(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req ExportRequest
	if err := parseBody(c, &req); err != nil {
		return utils.ErrorFromErr(c, err)
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}

	if req.Async {
		record, err := h.jobs.Dispatch(ctx, middleware.UserID(c), req.ProjectID, format, req.Languages)
		if err != nil {
			h.logger.WithError(err).WithField("project_id", req.ProjectID).Error("Failed to dispatch export")
			return utils.ErrorFromErr(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(DispatchResponse{
			Message:  "Export started. You can download it from the exports list once it is ready.",
			Async:    true,
			ExportID: record.ID,
		})
	}

	result, err := h.exports.ExportProject(ctx, req.ProjectID, format, req.Languages)
	if err != nil {
		h.logger.WithError(err).WithField("project_id", req.ProjectID).Error("Failed to export project")
		return utils.ErrorFromErr(c, err)
	}
	return h.sendFile(c, result.Path, result.FileName)
}

// ListExports godoc
// @Summary List my exports
// @Description List the requesting user's exports, newest first
// @Tags exports
// @Produce json
// @Param X-User-ID header int true "Requesting user"
// @Success 200 {object} utils.StandardResponse{data=[]ExportListItem}
// @Router /exports [get]
func (h *ExportHandler) ListExports(c *fiber.Ctx) error {
	records, err := h.jobs.ListForUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list exports")
		return utils.ErrorFromErr(c, err)
	}

	items := make([]ExportListItem, len(records))
	for i, r := range records {
		items[i] = toExportListItem(r)
	}
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Exports retrieved successfully", items, utils.ListMeta{Total: len(items)})
}

// DownloadExport godoc
// @Summary Download an export
// @Description Download a completed export. Only the user who requested it may download it.
// @Tags exports
// @Produce octet-stream
// @Param X-User-ID header int true "Requesting user"
// @Param id path int true "Export ID"
// @Success 200 {file} file "Export file"
// @Failure 403 {object} utils.StandardResponse "Not your export"
// @Failure 404 {object} utils.StandardResponse "Not found or not ready"
// @Router /exports/{id}/download [get]
func (h *ExportHandler) DownloadExport(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}

	dl, f, err := h.downloads.Open(c.UserContext(), id, middleware.UserID(c))
	if err != nil {
		h.logger.WithError(err).WithField("export_id", id).Warn("Export download refused")
		return utils.ErrorFromErr(c, err)
	}

	c.Attachment(dl.FileName)
	c.Set(fiber.HeaderContentType, dl.ContentType)
	return c.SendStream(f, int(dl.Size))
}

// GetExportLink godoc
// @Summary Get a download link
// @Description Get a presigned object storage link for a completed export
// @Tags exports
// @Produce json
// @Param X-User-ID header int true "Requesting user"
// @Param id path int true "Export ID"
// @Success 200 {object} utils.StandardResponse{data=ExportLinkResponse}
// @Failure 403 {object} utils.StandardResponse "Not your export"
// @Failure 404 {object} utils.StandardResponse "Not found, not ready or not mirrored"
// @Router /exports/{id}/link [get]
func (h *ExportHandler) GetExportLink(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}

	link, err := h.downloads.PresignedURL(c.UserContext(), id, middleware.UserID(c))
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Download link generated successfully", ExportLinkResponse{URL: link})
}

// DeleteExport godoc
// @Summary Delete an export
// @Description Delete one of the requesting user's exports and its file
// @Tags exports
// @Produce json
// @Param X-User-ID header int true "Requesting user"
// @Param id path int true "Export ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse "Not your export"
// @Failure 404 {object} utils.StandardResponse "Export not found"
// @Router /exports/{id} [delete]
func (h *ExportHandler) DeleteExport(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}

	if err := h.jobs.Delete(c.UserContext(), id, middleware.UserID(c)); err != nil {
		return utils.ErrorFromErr(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Export deleted successfully", nil)
}

// ExportLanguage godoc
// @Summary Export one language
// @Description Download a single project language as a JSON file
// @Tags exports
// @Produce json
// @Param X-User-ID header int true "Requesting user"
// @Param id path int true "Project ID"
// @Param code path string true "Language code"
// @Success 200 {file} file "JSON file"
// @Failure 404 {object} utils.StandardResponse "Project or language not found"
// @Failure 422 {object} utils.StandardResponse "Language not attached to the project"
// @Router /projects/{id}/export/{code} [get]
func (h *ExportHandler) ExportLanguage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}

	result, err := h.exports.ExportLanguage(c.UserContext(), id, c.Params("code"))
	if err != nil {
		h.logger.WithError(err).WithField("project_id", id).Error("Failed to export language")
		return utils.ErrorFromErr(c, err)
	}
	return h.sendFile(c, result.Path, result.FileName)
}

func (h *ExportHandler) sendFile(c *fiber.Ctx, path, fileName string) error {
	info, err := h.fs.Stat(path)
	if err != nil {
		h.logger.WithError(err).WithField("path", path).Error("Export file missing after export")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
	f, err := h.fs.Open(path)
	if err != nil {
		h.logger.WithError(err).WithField("path", path).Error("Failed to open export file")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	c.Attachment(fileName)
	c.Set(fiber.HeaderContentType, export.ContentType(ext))
	return c.SendStream(f, int(info.Size()))
}
