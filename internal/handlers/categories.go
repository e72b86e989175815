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

type CategoryHandler struct {
	db              *gorm.DB
	categoryService services.CategoryService
}

func NewCategoryHandler(db *gorm.DB, categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{db: db, categoryService: categoryService}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(h.db, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(h.db, currentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input validation.CategoryCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewValidationMessage("invalid request body"))
		return
	}

	req, fieldErrs := input.Validate()
	if fieldErrs != nil {
		response.Error(c, apperrors.NewValidation(fieldErrs))
		return
	}

	category, err := h.categoryService.CreateCategory(h.db, currentUserID(c), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "category created successfully", category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input validation.CategoryUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewValidationMessage("invalid request body"))
		return
	}

	patch, fieldErrs := input.Validate()
	if fieldErrs != nil {
		response.Error(c, apperrors.NewValidation(fieldErrs))
		return
	}

	category, err := h.categoryService.UpdateCategory(h.db, currentUserID(c), id, *patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "category updated successfully", category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(h.db, currentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "category deleted successfully", nil)
}

func (h *CategoryHandler) GetCategoryTasks(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	tasks, err := h.categoryService.CategoryTasks(h.db, currentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", tasks)
}
