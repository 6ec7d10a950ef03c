package models

import "gorm.io/gorm"

// Category is a node in the catalog tree. A category is either a root
// (ParentCategoryID nil) or the child of exactly one other category.
type Category struct {
	gorm.Model
	Name             string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	Description      string `json:"description"`
	ParentCategoryID *uint  `json:"parent_category_id" gorm:"index"`
}
