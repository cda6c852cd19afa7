package handlers

import (
	"translation-backend/internal/middleware"
	"translation-backend/internal/services"
	"translation-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TranslationHandler struct {
	service services.TranslationService
	logger  *logrus.Logger
}

func NewTranslationHandler(service services.TranslationService, logger *logrus.Logger) *TranslationHandler {
	return &TranslationHandler{
		service: service,
		logger:  logger,
	}
}

// BulkUpdate godoc
// @Summary Bulk update translations
// @Description Create or update many translations at once. Either every row is stored or none is.
// @Tags translations
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Requesting user"
// @Param request body BulkTranslationRequest true "Translations"
// @Success 200 {object} utils.StandardResponse{data=CountResponse}
// @Failure 404 {object} utils.StandardResponse "Translation key not found"
// @Failure 422 {object} utils.StandardResponse "Validation failed"
// @Router /translations/bulk [post]
func (h *TranslationHandler) BulkUpdate(c *fiber.Ctx) error {
	var req BulkTranslationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.ErrorFromErr(c, err)
	}

	count, err := h.service.BulkUpdate(c.UserContext(), middleware.UserID(c), req.rows())
	if err != nil {
		h.logger.WithError(err).Error("Failed to bulk update translations")
		return utils.ErrorFromErr(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Translations updated successfully", CountResponse{Count: count})
}

// CopyTranslations godoc
// @Summary Copy translations between languages
// @Description Copy every translation of a project from one language into another as drafts
// @Tags translations
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Requesting user"
// @Param request body CopyTranslationsRequest true "Copy request"
// @Success 200 {object} utils.StandardResponse{data=CountResponse}
// @Failure 404 {object} utils.StandardResponse "Project or language not found"
// @Failure 422 {object} utils.StandardResponse "Validation failed"
// @Router /translations/copy [post]
func (h *TranslationHandler) CopyTranslations(c *fiber.Ctx) error {
	var req CopyTranslationsRequest
	if err := parseBody(c, &req); err != nil {
		return utils.ErrorFromErr(c, err)
	}

	count, err := h.service.CopyBetweenLanguages(c.UserContext(), middleware.UserID(c),
		req.ProjectID, req.SourceLanguageID, req.TargetLanguageID, req.Overwrite)
	if err != nil {
		h.logger.WithError(err).WithField("project_id", req.ProjectID).Error("Failed to copy translations")
		return utils.ErrorFromErr(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Translations copied successfully", CountResponse{Count: count})
}

// MissingTranslations godoc
// @Summary List keys missing a translation
// @Tags translations
// @Produce json
// @Param X-User-ID header int true "Requesting user"
// @Param id path int true "Project ID"
// @Param languageId path int true "Language ID"
// @Success 200 {object} utils.StandardResponse{data=[]models.TranslationKey}
// @Failure 404 {object} utils.StandardResponse "Project or language not found"
// @Router /projects/{id}/missing/{languageId} [get]
func (h *TranslationHandler) MissingTranslations(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}
	languageID, err := parseID(c, "languageId")
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}

	keys, err := h.service.MissingTranslations(c.UserContext(), projectID, languageID)
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Missing translations retrieved successfully", keys, utils.ListMeta{Total: len(keys)})
}

// CreateGroup godoc
// @Summary Create a key group
// @Tags translations
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Requesting user"
// @Param id path int true "Project ID"
// @Param request body CreateGroupRequest true "Group"
// @Success 201 {object} utils.StandardResponse{data=models.TranslationKey}
// @Failure 404 {object} utils.StandardResponse "Project not found"
// @Failure 422 {object} utils.StandardResponse "Validation failed"
// @Router /projects/{id}/groups [post]
func (h *TranslationHandler) CreateGroup(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id")
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}

	var req CreateGroupRequest
	if err := parseBody(c, &req); err != nil {
		return utils.ErrorFromErr(c, err)
	}

	key, err := h.service.CreateGroup(c.UserContext(), projectID, req.Name, req.Description)
	if err != nil {
		return utils.ErrorFromErr(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Group created successfully", key)
}
