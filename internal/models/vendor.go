package models

import "gorm.io/gorm"

// Vendor sells products under a single category. CategoryID is a weak
// reference: existence is re-verified at write time, never assumed.
type Vendor struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id" gorm:"index;not null"`
	Location    string `json:"location"`

	// Owning user account for vendor-role callers; nil for vendors
	// created by back-office staff without a login.
	UserID *uint `json:"user_id,omitempty" gorm:"uniqueIndex"`

	// Geographic position stored as WKB; exchanged as GeoJSON at the API.
	Position []byte `json:"-" gorm:"type:bytea"`
}
