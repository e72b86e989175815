package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/validation"

	"gorm.io/gorm"
)

// Pagination mirrors the list endpoint's metadata block.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

type TaskStats struct {
	Total      int64 `json:"total_tasks"`
	Completed  int64 `json:"completed_tasks"`
	Pending    int64 `json:"pending_tasks"`
	InProgress int64 `json:"in_progress_tasks"`
	Overdue    int64 `json:"overdue_tasks"`
	DueToday   int64 `json:"due_today_tasks"`
}

type TaskService interface {
	CreateTask(db *gorm.DB, userID uint, in validation.TaskCreate) (*models.Task, error)
	GetTask(db *gorm.DB, userID, id uint) (*models.Task, error)
	ListTasks(db *gorm.DB, userID uint, q validation.TaskListQuery) ([]models.Task, Pagination, error)
	UpdateTask(db *gorm.DB, userID, id uint, patch validation.TaskPatch) (*models.Task, error)
	DeleteTask(db *gorm.DB, userID, id uint) error
	Stats(db *gorm.DB, userID uint) (*TaskStats, error)
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, userID uint, in validation.TaskCreate) (*models.Task, error) {
	if in.CategoryID != nil {
		if err := checkCategoryVisible(db, userID, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	task := models.Task{
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}
	if task.Status == models.StatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := db.Create(&task).Error; err != nil {
		return nil, apperrors.FromDB(err, "task")
	}
	return &task, nil
}

// GetTask scopes the lookup by owner, so a foreign task id and a
// nonexistent one produce the same not-found outcome.
func (s *TaskServiceImpl) GetTask(db *gorm.DB, userID, id uint) (*models.Task, error) {
	var task models.Task
	err := db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("task")
		}
		return nil, apperrors.NewInternal(err)
	}
	return &task, nil
}

func (s *TaskServiceImpl) ListTasks(db *gorm.DB, userID uint, q validation.TaskListQuery) ([]models.Task, Pagination, error) {
	base := db.Model(&models.Task{}).Where("user_id = ?", userID)

	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}
	if q.Priority != "" {
		base = base.Where("priority = ?", q.Priority)
	}
	if q.CategoryID != nil {
		base = base.Where("category_id = ?", *q.CategoryID)
	}
	if q.DueDateFrom != nil {
		base = base.Where("due_date >= ?", *q.DueDateFrom)
	}
	if q.DueDateTo != nil {
		// inclusive upper bound over the whole calendar day
		base = base.Where("due_date < ?", q.DueDateTo.AddDate(0, 0, 1))
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, apperrors.NewInternal(err)
	}

	var tasks []models.Task
	err := base.Session(&gorm.Session{}).
		Preload("Category").
		Order(fmt.Sprintf("%s %s", q.Sort, q.Order)).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, Pagination{}, apperrors.NewInternal(err)
	}

	return tasks, NewPagination(q.Page, q.Limit, total), nil
}

// UpdateTask assembles a column-assignment set from exactly the fields the
// patch carries. When status changes, completed_at is derived: entering
// "completed" stamps it, leaving clears it, staying leaves it untouched.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, userID, id uint, patch validation.TaskPatch) (*models.Task, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationMessage("no valid fields to update")
	}

	var task models.Task
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("task")
		}
		return nil, apperrors.NewInternal(err)
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.DueDate.Set {
		updates["due_date"] = patch.DueDate.Value
	}
	if patch.CategoryID.Set {
		if patch.CategoryID.Value != nil {
			if err := checkCategoryVisible(db, userID, *patch.CategoryID.Value); err != nil {
				return nil, err
			}
		}
		updates["category_id"] = patch.CategoryID.Value
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
		switch {
		case *patch.Status == models.StatusCompleted && task.Status != models.StatusCompleted:
			updates["completed_at"] = time.Now()
		case *patch.Status != models.StatusCompleted:
			updates["completed_at"] = nil
		}
	}
	updates["updated_at"] = time.Now()

	result := db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, apperrors.FromDB(result.Error, "task")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NewNotFound("task")
	}

	return s.GetTask(db, userID, id)
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, userID, id uint) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if result.Error != nil {
		return apperrors.NewInternal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("task")
	}
	return nil
}

func (s *TaskServiceImpl) Stats(db *gorm.DB, userID uint) (*TaskStats, error) {
	return computeTaskStats(db, userID)
}

// computeTaskStats is shared with the dashboard aggregation.
func computeTaskStats(db *gorm.DB, userID uint) (*TaskStats, error) {
	var stats TaskStats
	scoped := func() *gorm.DB {
		return db.Model(&models.Task{}).Where("user_id = ?", userID)
	}

	if err := scoped().Count(&stats.Total).Error; err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if err := scoped().Where("status = ?", models.StatusCompleted).Count(&stats.Completed).Error; err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if err := scoped().Where("status = ?", models.StatusPending).Count(&stats.Pending).Error; err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if err := scoped().Where("status = ?", models.StatusInProgress).Count(&stats.InProgress).Error; err != nil {
		return nil, apperrors.NewInternal(err)
	}

	// due dates are stored as UTC midnights, so the day boundaries must be
	// UTC too or hosts west of UTC shift today's tasks into overdue
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	err := scoped().
		Where("due_date < ? AND status <> ?", today, models.StatusCompleted).
		Count(&stats.Overdue).Error
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	err = scoped().
		Where("due_date >= ? AND due_date < ? AND status <> ?", today, tomorrow, models.StatusCompleted).
		Count(&stats.DueToday).Error
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	return &stats, nil
}

// checkCategoryVisible verifies a category referenced by a task is usable
// by the caller: their own or a global default.
func checkCategoryVisible(db *gorm.DB, userID, categoryID uint) error {
	var category models.Category
	err := db.Where("id = ? AND (user_id = ? OR user_id IS NULL)", categoryID, userID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewValidation([]apperrors.FieldError{
				{Field: "category_id", Message: "category not found"},
			})
		}
		return apperrors.NewInternal(err)
	}
	return nil
}
