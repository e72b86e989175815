package models

import (
	"time"
)

const DefaultCategoryColor = "#3B82F6"

// Category groups tasks. A category with a nil UserID is a global default:
// readable by every user, mutable by none. Name uniqueness is per owner.
type Category struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:50;not null;uniqueIndex:idx_categories_owner_name"`
	Color  string `json:"color" gorm:"size:7;not null;default:'#3B82F6'"`
	UserID *uint  `json:"user_id" gorm:"uniqueIndex:idx_categories_owner_name"`

	CreatedAt time.Time `json:"created_at"`
}

// IsDefault reports whether the category is a global default (no owner).
func (c *Category) IsDefault() bool {
	return c.UserID == nil
}

// OwnedBy reports whether the category is owned by the given user.
func (c *Category) OwnedBy(userID uint) bool {
	return c.UserID != nil && *c.UserID == userID
}
