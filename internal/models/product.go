package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name        string  `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	Description string  `json:"description"`
	VendorID    uint    `json:"vendor_id" gorm:"index;not null"`
	Price       float64 `json:"price"`
}
