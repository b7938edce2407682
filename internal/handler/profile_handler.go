package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tapfolio.app/backend/internal/dto"
	"tapfolio.app/backend/internal/service"
	"tapfolio.app/backend/pkg/response"
	"tapfolio.app/backend/pkg/validator"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	var input dto.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, cardID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateBio(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	var input dto.UpdateBioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	profile, err := h.profileService.UpdateBio(c.Request.Context(), userID, cardID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateContact(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	var input dto.UpdateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	profile, err := h.profileService.UpdateContact(c.Request.Context(), userID, cardID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateLocation(c *gin.Context) {
	userID, cardID, ok := userAndCardID(c)
	if !ok {
		return
	}

	var input dto.UpdateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	profile, err := h.profileService.UpdateLocation(c.Request.Context(), userID, cardID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
