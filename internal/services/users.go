package services

import (
	"errors"
	"time"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Dashboard aggregates everything the account overview page shows.
type Dashboard struct {
	Stats         TaskStats     `json:"stats"`
	CategoryCount int64         `json:"category_count"`
	RecentTasks   []models.Task `json:"recent_tasks"`
}

type UserService interface {
	GetProfile(db *gorm.DB, userID uint) (*models.User, error)
	UpdateProfile(db *gorm.DB, userID uint, patch validation.ProfilePatch) (*models.User, error)
	ChangePassword(db *gorm.DB, userID uint, in validation.PasswordChange) error
	DeleteAccount(db *gorm.DB, userID uint) error
	GetDashboard(db *gorm.DB, userID uint) (*Dashboard, error)
}

type UserServiceImpl struct {
	bcryptCost int
}

func NewUserService(bcryptCost int) *UserServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserServiceImpl{bcryptCost: bcryptCost}
}

func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID uint) (*models.User, error) {
	return loadUser(db, userID)
}

func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID uint, patch validation.ProfilePatch) (*models.User, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationMessage("no valid fields to update")
	}

	user, err := loadUser(db, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		if *patch.Email != user.Email {
			var count int64
			err := db.Model(&models.User{}).
				Where("email = ? AND id <> ?", *patch.Email, userID).
				Count(&count).Error
			if err != nil {
				return nil, apperrors.NewInternal(err)
			}
			if count > 0 {
				return nil, apperrors.NewConflict("an account with this email already exists")
			}
		}
		updates["email"] = *patch.Email
	}
	if patch.AvatarURL.Set {
		if patch.AvatarURL.Valid {
			updates["avatar_url"] = patch.AvatarURL.Value
		} else {
			updates["avatar_url"] = nil
		}
	}
	updates["updated_at"] = time.Now()

	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("an account with this email already exists")
		}
		return nil, apperrors.NewInternal(result.Error)
	}

	return loadUser(db, userID)
}

func (s *UserServiceImpl) ChangePassword(db *gorm.DB, userID uint, in validation.PasswordChange) error {
	user, err := loadUser(db, userID)
	if err != nil {
		return err
	}

	if !VerifyPassword(user.Password, in.CurrentPassword) {
		return apperrors.NewValidationMessage("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.bcryptCost)
	if err != nil {
		return apperrors.NewInternal(err)
	}

	err = db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":   string(hashed),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return apperrors.NewInternal(err)
	}
	return nil
}

// DeleteAccount removes the user and everything they own in one
// transaction. The explicit deletes keep the cascade portable across
// the postgres and sqlite drivers.
func (s *UserServiceImpl) DeleteAccount(db *gorm.DB, userID uint) error {
	if _, err := loadUser(db, userID); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return apperrors.NewInternal(err)
	}
	return nil
}

func (s *UserServiceImpl) GetDashboard(db *gorm.DB, userID uint) (*Dashboard, error) {
	stats, err := computeTaskStats(db, userID)
	if err != nil {
		return nil, err
	}

	var categoryCount int64
	err = db.Model(&models.Category{}).Where("user_id = ?", userID).Count(&categoryCount).Error
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	var recent []models.Task
	err = db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	return &Dashboard{
		Stats:         *stats,
		CategoryCount: categoryCount,
		RecentTasks:   recent,
	}, nil
}

func loadUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.NewInternal(err)
	}
	return &user, nil
}
