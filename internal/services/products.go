package services

import (
	"errors"

	"gorm.io/gorm"

	"soko_market/internal/apperr"
	"soko_market/internal/authz"
	"soko_market/internal/models"
)

// ProductService manages products under vendors. A vendor-role caller only
// reaches products of the vendor record naming them.
type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// ProductInput is one item of a batch create.
type ProductInput struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// vendorFor resolves the parent vendor within the caller's scope: vendors
// only resolve their own record, so a foreign vendor reads as absent.
func (s *ProductService) vendorFor(vendorID uint, caller authz.Identity) (*models.Vendor, error) {
	q := s.db
	if caller.Role == models.RoleVendor {
		q = q.Where("user_id = ?", caller.UserID)
	}
	var vendor models.Vendor
	if err := q.First(&vendor, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.DependencyMissing, "vendor %d not found", vendorID)
		}
		return nil, apperr.Wrap(apperr.Internal, err, "could not verify vendor %d", vendorID)
	}
	return &vendor, nil
}

// Create attempts every item independently under the given vendor, whose
// existence (and, for vendor callers, ownership) is re-verified per item.
func (s *ProductService) Create(vendorID uint, inputs []ProductInput, caller authz.Identity) ([]models.Product, []ItemError) {
	var created []models.Product
	var errs []ItemError

	for _, in := range inputs {
		if _, err := s.vendorFor(vendorID, caller); err != nil {
			errs = append(errs, ItemError{Item: in.Name, Error: err.Error()})
			continue
		}
		if in.Price < 0 {
			errs = append(errs, ItemError{
				Item:  in.Name,
				Error: apperr.New(apperr.InvalidInput, "price must not be negative").Error(),
			})
			continue
		}

		product := models.Product{
			Name:        in.Name,
			Description: in.Description,
			VendorID:    vendorID,
			Price:       in.Price,
		}
		product.ID = in.ID

		if err := s.db.Create(&product).Error; err != nil {
			errs = append(errs, ItemError{Item: in.Name, Error: classifyWriteErr(err, "product").Error()})
			continue
		}
		created = append(created, product)
	}
	return created, errs
}

// FindAll lists products, optionally narrowed to one vendor.
func (s *ProductService) FindAll(vendorID *uint) ([]models.Product, error) {
	var products []models.Product
	q := s.db
	if vendorID != nil {
		q = q.Where("vendor_id = ?", *vendorID)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch products")
	}
	return products, nil
}

// FindVendorProducts lists the products of one vendor.
func (s *ProductService) FindVendorProducts(vendorID uint) ([]models.Product, error) {
	return s.FindAll(&vendorID)
}

func (s *ProductService) FindOne(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch product %d", id)
	}
	return &product, nil
}

// mutableScope narrows product mutations for vendor-role callers to the
// products of their own vendor record.
func (s *ProductService) mutableScope(caller authz.Identity) *gorm.DB {
	if caller.Role == models.RoleVendor {
		sub := s.db.Model(&models.Vendor{}).Select("id").Where("user_id = ?", caller.UserID)
		return s.db.Where("vendor_id IN (?)", sub)
	}
	return s.db
}

// Update applies a partial patch within the caller's mutation scope.
func (s *ProductService) Update(id uint, patch ProductPatch, caller authz.Identity) error {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return apperr.New(apperr.InvalidInput, "price must not be negative")
		}
		fields["price"] = *patch.Price
	}
	if len(fields) == 0 {
		return apperr.New(apperr.InvalidInput, "no fields to update")
	}

	res := s.mutableScope(caller).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return classifyWriteErr(res.Error, "product")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "product %d not found", id)
	}
	return nil
}

// Delete removes one product within the caller's mutation scope.
func (s *ProductService) Delete(id uint, caller authz.Identity) error {
	res := s.mutableScope(caller).Unscoped().Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return apperr.Wrap(apperr.Internal, res.Error, "could not delete product %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "product %d not found", id)
	}
	return nil
}

// DeleteVendorProducts removes every product of a vendor; part of the
// vendor delete cascade.
func (s *ProductService) DeleteVendorProducts(vendorID uint) error {
	if err := s.db.Unscoped().Where("vendor_id = ?", vendorID).Delete(&models.Product{}).Error; err != nil {
		return apperr.Wrap(apperr.Internal, err, "could not delete products of vendor %d", vendorID)
	}
	return nil
}
