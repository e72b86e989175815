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

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input validation.TaskCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewValidationMessage("invalid request body"))
		return
	}

	req, fieldErrs := input.Validate()
	if fieldErrs != nil {
		response.Error(c, apperrors.NewValidation(fieldErrs))
		return
	}

	task, err := h.taskService.CreateTask(h.db, currentUserID(c), *req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "task created successfully", task)
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	var input validation.TaskListInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.Error(c, apperrors.NewValidationMessage("invalid query parameters"))
		return
	}

	query, fieldErrs := input.Validate()
	if fieldErrs != nil {
		response.Error(c, apperrors.NewValidation(fieldErrs))
		return
	}

	tasks, pagination, err := h.taskService.ListTasks(h.db, currentUserID(c), *query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{
		"tasks":      tasks,
		"pagination": pagination,
	})
}

func (h *TaskHandler) GetTaskStats(c *gin.Context) {
	stats, err := h.taskService.Stats(h.db, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", stats)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	task, err := h.taskService.GetTask(h.db, currentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "", task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input validation.TaskUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.NewValidationMessage("invalid request body"))
		return
	}

	patch, fieldErrs := input.Validate()
	if fieldErrs != nil {
		response.Error(c, apperrors.NewValidation(fieldErrs))
		return
	}

	task, err := h.taskService.UpdateTask(h.db, currentUserID(c), id, *patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "task updated successfully", task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.taskService.DeleteTask(h.db, currentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "task deleted successfully", nil)
}
