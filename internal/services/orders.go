package services

import (
	"errors"

	"gorm.io/gorm"

	"soko_market/internal/apperr"
	"soko_market/internal/authz"
	"soko_market/internal/models"
)

// OrderService applies the per-role access scope to every order read and
// mutation: admins are unrestricted, everyone else only reaches orders
// naming them. An order outside the caller's scope reads as absent; its
// existence is never revealed.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderInput creates one order. The customer id always comes from the
// caller, never the payload.
type OrderInput struct {
	ID          uint                 `json:"id"`
	Description string               `json:"description"`
	VendorID    uint                 `json:"vendor_id" binding:"required"`
	RiderID     *uint                `json:"rider_id"`
	Products    models.OrderProducts `json:"products" binding:"required,min=1,dive"`
	Price       float64              `json:"price"`
	Status      string               `json:"status"`
}

// OrderPatch is a partial update; nil fields are left untouched.
type OrderPatch struct {
	Description *string               `json:"description"`
	RiderID     *uint                 `json:"rider_id"`
	Products    *models.OrderProducts `json:"products"`
	Price       *float64              `json:"price"`
	Status      *string               `json:"status"`
}

// scoped returns the storage filter for the caller's role.
func (s *OrderService) scoped(caller authz.Identity) *gorm.DB {
	switch caller.Role {
	case models.RoleAdmin:
		return s.db
	case models.RoleCustomer:
		return s.db.Where("customer_id = ?", caller.UserID)
	case models.RoleRider:
		return s.db.Where("rider_id = ?", caller.UserID)
	case models.RoleVendor:
		sub := s.db.Model(&models.Vendor{}).Select("id").Where("user_id = ?", caller.UserID)
		return s.db.Where("vendor_id IN (?)", sub)
	default:
		// The policy gate keeps other roles out; match nothing if one
		// slips through.
		return s.db.Where("1 = 0")
	}
}

// Create places an order for the calling customer. The vendor reference is
// weak and re-verified here.
func (s *OrderService) Create(in OrderInput, caller authz.Identity) (*models.Order, error) {
	status := models.StatusPending
	if in.Status != "" {
		if !models.ValidOrderStatus(in.Status) {
			return nil, apperr.New(apperr.InvalidInput, "unknown order status %q", in.Status)
		}
		status = models.OrderStatus(in.Status)
	}
	for _, p := range in.Products {
		if p.Quantity < 1 {
			return nil, apperr.New(apperr.InvalidInput, "product %q quantity must be at least 1", p.Product)
		}
	}

	var vendor models.Vendor
	if err := s.db.First(&vendor, in.VendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.DependencyMissing, "vendor %d not found", in.VendorID)
		}
		return nil, apperr.Wrap(apperr.Internal, err, "could not verify vendor %d", in.VendorID)
	}

	order := models.Order{
		Description: in.Description,
		VendorID:    in.VendorID,
		CustomerID:  caller.UserID,
		RiderID:     in.RiderID,
		Products:    in.Products,
		Price:       in.Price,
		Status:      status,
	}
	order.ID = in.ID

	if err := s.db.Create(&order).Error; err != nil {
		return nil, classifyWriteErr(err, "order")
	}
	return &order, nil
}

// FindAll lists exactly the orders inside the caller's scope.
func (s *OrderService) FindAll(caller authz.Identity) ([]models.Order, error) {
	var orders []models.Order
	if err := s.scoped(caller).Find(&orders).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch orders")
	}
	return orders, nil
}

// FindOne returns the order only if it is inside the caller's scope. A
// missing order and an out-of-scope order are indistinguishable.
func (s *OrderService) FindOne(id uint, caller authz.Identity) (*models.Order, error) {
	var order models.Order
	if err := s.scoped(caller).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch order %d", id)
	}
	return &order, nil
}

// Update re-runs the scoped lookup first; only on success does the
// mutation proceed.
func (s *OrderService) Update(id uint, patch OrderPatch, caller authz.Identity) error {
	order, err := s.FindOne(id, caller)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.RiderID != nil {
		fields["rider_id"] = *patch.RiderID
	}
	if patch.Products != nil {
		for _, p := range *patch.Products {
			if p.Quantity < 1 {
				return apperr.New(apperr.InvalidInput, "product %q quantity must be at least 1", p.Product)
			}
		}
		fields["products"] = *patch.Products
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Status != nil {
		if !models.ValidOrderStatus(*patch.Status) {
			return apperr.New(apperr.InvalidInput, "unknown order status %q", *patch.Status)
		}
		fields["status"] = models.OrderStatus(*patch.Status)
	}
	if len(fields) == 0 {
		return apperr.New(apperr.InvalidInput, "no fields to update")
	}

	if err := s.db.Model(order).Updates(fields).Error; err != nil {
		return classifyWriteErr(err, "order")
	}
	return nil
}

// Delete removes the order within the caller's scope. The policy gate has
// already excluded riders; zero matched rows reads as NotFound.
func (s *OrderService) Delete(id uint, caller authz.Identity) error {
	res := s.scoped(caller).Unscoped().Where("id = ?", id).Delete(&models.Order{})
	if res.Error != nil {
		return apperr.Wrap(apperr.Internal, res.Error, "could not delete order %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "order %d not found", id)
	}
	return nil
}
