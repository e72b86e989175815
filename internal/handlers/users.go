package handlers

import (
	"net/http"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/response"
	"taskhub/backend/internal/services"
	"taskhub/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db          *gorm.DB
	userService services.UserService
}

func NewUserHandler(db *gorm.DB, userService services.UserService) *UserHandler {
	return &UserHandler{db: db, userService: userService}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(h.db, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", user.Summary())
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var input validation.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewValidationMessage("invalid request body"))
		return
	}

	patch, fieldErrs := input.Validate()
	if fieldErrs != nil {
		response.Error(c, apperrors.NewValidation(fieldErrs))
		return
	}

	user, err := h.userService.UpdateProfile(h.db, currentUserID(c), *patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "profile updated successfully", user.Summary())
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var input validation.PasswordChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewValidationMessage("invalid request body"))
		return
	}

	req, fieldErrs := input.Validate()
	if fieldErrs != nil {
		response.Error(c, apperrors.NewValidation(fieldErrs))
		return
	}

	if err := h.userService.ChangePassword(h.db, currentUserID(c), *req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "password changed successfully", nil)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.userService.DeleteAccount(h.db, currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "account deleted successfully", nil)
}

func (h *UserHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.userService.GetDashboard(h.db, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", dashboard)
}
