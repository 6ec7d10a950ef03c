package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCanceled  OrderStatus = "canceled"
	StatusCompleted OrderStatus = "completed"
	StatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every valid status, used for input validation.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusCanceled,
	StatusCompleted,
	StatusDelivered,
}

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if OrderStatus(s) == st {
			return true
		}
	}
	return false
}

// OrderProduct is one line item of an order.
type OrderProduct struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// OrderProducts is stored as a JSON column; order of items is preserved.
type OrderProducts []OrderProduct

func (p OrderProducts) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *OrderProducts) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	default:
		return errors.New("unsupported type for order products column")
	}
}

// Order is scoped to its customer, vendor and (once assigned) rider; those
// three ids decide which non-admin callers may see or touch it.
type Order struct {
	gorm.Model
	Description string        `json:"description"`
	VendorID    uint          `json:"vendor_id" gorm:"index;not null"`
	CustomerID  uint          `json:"customer_id" gorm:"index;not null"`
	RiderID     *uint         `json:"rider_id" gorm:"index"`
	Products    OrderProducts `json:"products" gorm:"type:jsonb"`
	Price       float64       `json:"price"`
	Status      OrderStatus   `json:"status" gorm:"not null;default:'pending'"`
}
