package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tapfolio.app/backend/internal/dto"
	"tapfolio.app/backend/internal/middleware"
	"tapfolio.app/backend/internal/service"
	"tapfolio.app/backend/internal/widget"
	"tapfolio.app/backend/pkg/apperror"
	"tapfolio.app/backend/pkg/response"
	"tapfolio.app/backend/pkg/validator"
)

type CardHandler struct {
	cardService service.CardService
}

func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

func (h *CardHandler) Onboarding(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.OnboardingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	profile, err := h.cardService.Onboarding(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	profile, err := h.cardService.CreateCard(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *CardHandler) ListCards(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

func (h *CardHandler) Directory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.cardService.Directory(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": entries})
}

func (h *CardHandler) UpdateVisibility(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	var input dto.UpdateVisibilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.cardService.UpdateVisibility(c.Request.Context(), userID, cardID, *input.IsPublic); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "visibility updated"})
}

func (h *CardHandler) SetPrimary(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	if err := h.cardService.SetPrimary(c.Request.Context(), userID, cardID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "card set as primary"})
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(c.Request.Context(), userID, cardID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "card deleted"})
}

// GetCardPage serves the resolved card for both visitors and owners; auth
// is optional on this route.
func (h *CardHandler) GetCardPage(c *gin.Context) {
	viewerID := response.OptionalUserID(c)
	mode := widget.ParseMode(c.Query("mode"))

	viewerKey := viewerID.String()
	if viewerID == uuid.Nil {
		viewerKey = c.ClientIP()
	}

	page, err := h.cardService.GetCardPage(c.Request.Context(), c.Param("username"), viewerID, mode, viewerKey)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if !page.IsOwner {
		middleware.RecordCardView()
	}

	c.JSON(http.StatusOK, page)
}

func (h *CardHandler) GetVCard(c *gin.Context) {
	viewerID := response.OptionalUserID(c)

	body, fileName, err := h.cardService.GetVCard(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", []byte(body))
}

// userAndCardID pulls the authenticated user and the :card_id path param,
// writing the error response itself when either is missing.
func userAndCardID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return uuid.Nil, uuid.Nil, false
	}

	cardID, err := uuid.Parse(c.Param("card_id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, cardID, true
}
