package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tapfolio.app/backend/internal/dto"
	"tapfolio.app/backend/internal/model"
	"tapfolio.app/backend/internal/service"
	"tapfolio.app/backend/pkg/apperror"
	"tapfolio.app/backend/pkg/response"
	"tapfolio.app/backend/pkg/validator"
)

type WidgetHandler struct {
	widgetService service.WidgetService
}

func NewWidgetHandler(widgetService service.WidgetService) *WidgetHandler {
	return &WidgetHandler{
		widgetService: widgetService,
	}
}

func (h *WidgetHandler) UpsertSetting(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	var input dto.UpsertWidgetSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	setting, err := h.widgetService.UpsertSetting(c.Request.Context(), userID, cardID, model.WidgetType(c.Param("widget_type")), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

func (h *WidgetHandler) CreateCustomLink(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	var input dto.CreateCustomLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	link, err := h.widgetService.CreateCustomLink(c.Request.Context(), userID, cardID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

func (h *WidgetHandler) UpdateCustomLink(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}
	linkID, ok := pathID(c, "link_id")
	if !ok {
		return
	}

	var input dto.UpdateCustomLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	link, err := h.widgetService.UpdateCustomLink(c.Request.Context(), userID, cardID, linkID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *WidgetHandler) DeleteCustomLink(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}
	linkID, ok := pathID(c, "link_id")
	if !ok {
		return
	}

	if err := h.widgetService.DeleteCustomLink(c.Request.Context(), userID, cardID, linkID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "link deleted"})
}

func (h *WidgetHandler) CreateSocialLink(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	var input dto.CreateSocialLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	link, err := h.widgetService.CreateSocialLink(c.Request.Context(), userID, cardID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

func (h *WidgetHandler) UpdateSocialLink(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}
	linkID, ok := pathID(c, "link_id")
	if !ok {
		return
	}

	var input dto.UpdateSocialLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	link, err := h.widgetService.UpdateSocialLink(c.Request.Context(), userID, cardID, linkID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *WidgetHandler) DeleteSocialLink(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}
	linkID, ok := pathID(c, "link_id")
	if !ok {
		return
	}

	if err := h.widgetService.DeleteSocialLink(c.Request.Context(), userID, cardID, linkID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "social link deleted"})
}

func (h *WidgetHandler) CreateService(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	var input dto.CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	svc, err := h.widgetService.CreateService(c.Request.Context(), userID, cardID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *WidgetHandler) UpdateService(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "service_id")
	if !ok {
		return
	}

	var input dto.UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	svc, err := h.widgetService.UpdateService(c.Request.Context(), userID, cardID, serviceID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *WidgetHandler) DeleteService(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "service_id")
	if !ok {
		return
	}

	if err := h.widgetService.DeleteService(c.Request.Context(), userID, cardID, serviceID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return uuid.Nil, false
	}
	return id, true
}
