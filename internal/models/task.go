package models

import (
	"time"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task always has exactly one owner. CompletedAt is non-nil iff Status is
// "completed"; the transition logic lives in the task service.
type Task struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	CategoryID  *uint  `json:"category_id" gorm:"index"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Description string `json:"description" gorm:"size:1000"`
	Status      string `json:"status" gorm:"size:20;not null;default:'pending'"`
	Priority    string `json:"priority" gorm:"size:10;not null;default:'medium'"`

	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
