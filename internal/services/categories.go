package services

import (
	"errors"
	"fmt"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/validation"

	"gorm.io/gorm"
)

type CategoryService interface {
	ListCategories(db *gorm.DB, userID uint) ([]models.Category, error)
	GetCategory(db *gorm.DB, userID, id uint) (*models.Category, error)
	CreateCategory(db *gorm.DB, userID uint, in validation.CategoryCreate) (*models.Category, error)
	UpdateCategory(db *gorm.DB, userID, id uint, patch validation.CategoryPatch) (*models.Category, error)
	DeleteCategory(db *gorm.DB, userID, id uint) error
	CategoryTasks(db *gorm.DB, userID, categoryID uint) ([]models.Task, error)
}

type CategoryServiceImpl struct{}

func NewCategoryService() *CategoryServiceImpl {
	return &CategoryServiceImpl{}
}

// ListCategories returns the caller's own categories plus the global
// defaults. An unauthenticated caller (userID 0) sees only the defaults.
func (s *CategoryServiceImpl) ListCategories(db *gorm.DB, userID uint) ([]models.Category, error) {
	var categories []models.Category
	query := db.Order("name asc")
	if userID == 0 {
		query = query.Where("user_id IS NULL")
	} else {
		query = query.Where("user_id = ? OR user_id IS NULL", userID)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return categories, nil
}

func (s *CategoryServiceImpl) GetCategory(db *gorm.DB, userID, id uint) (*models.Category, error) {
	category, err := loadCategory(db, id)
	if err != nil {
		return nil, err
	}
	if !category.IsDefault() && !category.OwnedBy(userID) {
		return nil, apperrors.NewForbidden("you do not have access to this category")
	}
	return category, nil
}

func (s *CategoryServiceImpl) CreateCategory(db *gorm.DB, userID uint, in validation.CategoryCreate) (*models.Category, error) {
	if err := checkDuplicateName(db, userID, in.Name, 0); err != nil {
		return nil, err
	}

	category := models.Category{
		Name:   in.Name,
		Color:  in.Color,
		UserID: &userID,
	}
	if err := db.Create(&category).Error; err != nil {
		// a race past the pre-check lands on the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("a category with this name already exists")
		}
		return nil, apperrors.FromDB(err, "category")
	}
	return &category, nil
}

func (s *CategoryServiceImpl) UpdateCategory(db *gorm.DB, userID, id uint, patch validation.CategoryPatch) (*models.Category, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationMessage("no valid fields to update")
	}

	category, err := loadCategory(db, id)
	if err != nil {
		return nil, err
	}
	if !category.OwnedBy(userID) {
		return nil, apperrors.NewForbidden("you do not have permission to modify this category")
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		if *patch.Name != category.Name {
			if err := checkDuplicateName(db, userID, *patch.Name, id); err != nil {
				return nil, err
			}
		}
		updates["name"] = *patch.Name
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}

	result := db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("a category with this name already exists")
		}
		return nil, apperrors.FromDB(result.Error, "category")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NewNotFound("category")
	}

	return loadCategory(db, id)
}

// DeleteCategory refuses while tasks still reference the category; the
// caller has to reassign or remove them first.
func (s *CategoryServiceImpl) DeleteCategory(db *gorm.DB, userID, id uint) error {
	category, err := loadCategory(db, id)
	if err != nil {
		return err
	}
	if !category.OwnedBy(userID) {
		return apperrors.NewForbidden("you do not have permission to delete this category")
	}

	var referencing int64
	if err := db.Model(&models.Task{}).Where("category_id = ?", id).Count(&referencing).Error; err != nil {
		return apperrors.NewInternal(err)
	}
	if referencing > 0 {
		return apperrors.NewConflict(fmt.Sprintf(
			"cannot delete category: %d task(s) are still assigned to it", referencing))
	}

	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{})
	if result.Error != nil {
		return apperrors.NewInternal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("category")
	}
	return nil
}

func (s *CategoryServiceImpl) CategoryTasks(db *gorm.DB, userID, categoryID uint) ([]models.Task, error) {
	category, err := loadCategory(db, categoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsDefault() && !category.OwnedBy(userID) {
		return nil, apperrors.NewForbidden("you do not have access to this category")
	}

	var tasks []models.Task
	err = db.Where("category_id = ? AND user_id = ?", categoryID, userID).
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return tasks, nil
}

func loadCategory(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("category")
		}
		return nil, apperrors.NewInternal(err)
	}
	return &category, nil
}

func checkDuplicateName(db *gorm.DB, userID uint, name string, excludeID uint) error {
	query := db.Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperrors.NewInternal(err)
	}
	if count > 0 {
		return apperrors.NewConflict("a category with this name already exists")
	}
	return nil
}
