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

type AuthHandler struct {
	db          *gorm.DB
	authService services.AuthService
}

func NewAuthHandler(db *gorm.DB, authService services.AuthService) *AuthHandler {
	return &AuthHandler{db: db, authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input validation.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewValidationMessage("invalid request body"))
		return
	}

	req, fieldErrs := input.Validate()
	if fieldErrs != nil {
		response.Error(c, apperrors.NewValidation(fieldErrs))
		return
	}

	user, err := h.authService.Register(h.db, *req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "account created successfully", gin.H{
		"user": user.Summary(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input validation.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewValidationMessage("invalid request body"))
		return
	}

	req, fieldErrs := input.Validate()
	if fieldErrs != nil {
		response.Error(c, apperrors.NewValidation(fieldErrs))
		return
	}

	user, token, err := h.authService.Login(h.db, *req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "login successful", gin.H{
		"token": token,
		"user":  user.Summary(),
	})
}
