package services

import (
	"encoding/json"
	"errors"

	logrus "github.com/sirupsen/logrus"
	geom "github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/gorm"

	"soko_market/internal/apperr"
	"soko_market/internal/authz"
	"soko_market/internal/models"
)

// VendorService manages vendors under categories. The category reference is
// weak: it is re-verified against live records at write time, per batch item.
type VendorService struct {
	db       *gorm.DB
	products *ProductService
}

func NewVendorService(db *gorm.DB, products *ProductService) *VendorService {
	return &VendorService{db: db, products: products}
}

// VendorInput is one item of a batch create. Position, when present, is a
// GeoJSON Point.
type VendorInput struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Location    string          `json:"location" binding:"required"`
	UserID      *uint           `json:"user_id"`
	Position    json.RawMessage `json:"position"`
}

// VendorPatch is a partial update; nil fields are left untouched.
type VendorPatch struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	CategoryID  *uint           `json:"category_id"`
	Location    *string         `json:"location"`
	Position    json.RawMessage `json:"position"`
}

// VendorDetail is the read-side join returned by FindOne.
type VendorDetail struct {
	Vendor   models.Vendor    `json:"vendor"`
	Products []models.Product `json:"products"`
}

// parsePosition converts a GeoJSON geometry into WKB bytes for storage.
func parsePosition(raw json.RawMessage) ([]byte, error) {
	var g geom.T
	if err := gjson.Unmarshal(raw, &g); err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "invalid position geometry")
	}
	data, err := wkb.Marshal(g, wkb.NDR)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "invalid position geometry")
	}
	return data, nil
}

// PositionGeoJSON decodes a vendor's stored position back to GeoJSON, or
// nil when no position is set.
func PositionGeoJSON(v *models.Vendor) (json.RawMessage, error) {
	if len(v.Position) == 0 {
		return nil, nil
	}
	g, err := wkb.Unmarshal(v.Position)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "corrupt position for vendor %d", v.ID)
	}
	return gjson.Marshal(g)
}

// Create attempts every item independently under the given category. The
// category's existence is re-verified per item, so a category deleted
// mid-batch fails only the remaining items.
func (s *VendorService) Create(categoryID uint, inputs []VendorInput) ([]models.Vendor, []ItemError) {
	var created []models.Vendor
	var errs []ItemError

	for _, in := range inputs {
		var category models.Category
		if err := s.db.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs = append(errs, ItemError{
					Item:  in.Name,
					Error: apperr.New(apperr.DependencyMissing, "category %d not found", categoryID).Error(),
				})
			} else {
				errs = append(errs, ItemError{Item: in.Name, Error: err.Error()})
			}
			continue
		}

		vendor := models.Vendor{
			Name:        in.Name,
			Description: in.Description,
			CategoryID:  categoryID,
			Location:    in.Location,
			UserID:      in.UserID,
		}
		vendor.ID = in.ID

		if len(in.Position) > 0 {
			pos, err := parsePosition(in.Position)
			if err != nil {
				errs = append(errs, ItemError{Item: in.Name, Error: err.Error()})
				continue
			}
			vendor.Position = pos
		}

		if err := s.db.Create(&vendor).Error; err != nil {
			errs = append(errs, ItemError{Item: in.Name, Error: classifyWriteErr(err, "vendor").Error()})
			continue
		}
		created = append(created, vendor)
	}
	return created, errs
}

// FindAll lists vendors, optionally narrowed to one category.
func (s *VendorService) FindAll(categoryID *uint) ([]models.Vendor, error) {
	var vendors []models.Vendor
	q := s.db
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if err := q.Find(&vendors).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch vendors")
	}
	return vendors, nil
}

// FindCategoryVendors lists the vendors of one category.
func (s *VendorService) FindCategoryVendors(categoryID uint) ([]models.Vendor, error) {
	return s.FindAll(&categoryID)
}

// FindOne returns the vendor together with its products.
func (s *VendorService) FindOne(id uint) (*VendorDetail, error) {
	var vendor models.Vendor
	if err := s.db.First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "vendor %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch vendor %d", id)
	}

	products, err := s.products.FindVendorProducts(id)
	if err != nil {
		return nil, err
	}
	return &VendorDetail{Vendor: vendor, Products: products}, nil
}

// ownedScope narrows a vendor query to records the caller may mutate.
// Back-office roles see everything; a vendor-role caller only the vendor
// record naming them. Out-of-scope records read as absent, not forbidden.
func (s *VendorService) ownedScope(caller authz.Identity) *gorm.DB {
	if caller.Role == models.RoleVendor {
		return s.db.Where("user_id = ?", caller.UserID)
	}
	return s.db
}

// Update applies a partial patch within the caller's mutation scope. When
// the patch moves the vendor to another category, that category must exist.
func (s *VendorService) Update(id uint, patch VendorPatch, caller authz.Identity) error {
	var vendor models.Vendor
	if err := s.ownedScope(caller).First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "vendor %d not found", id)
		}
		return apperr.Wrap(apperr.Internal, err, "could not fetch vendor %d", id)
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, *patch.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.DependencyMissing, "category %d not found", *patch.CategoryID)
			}
			return apperr.Wrap(apperr.Internal, err, "could not verify category %d", *patch.CategoryID)
		}
		fields["category_id"] = *patch.CategoryID
	}
	if len(patch.Position) > 0 {
		pos, err := parsePosition(patch.Position)
		if err != nil {
			return err
		}
		fields["position"] = pos
	}
	if len(fields) == 0 {
		return apperr.New(apperr.InvalidInput, "no fields to update")
	}

	if err := s.db.Model(&vendor).Updates(fields).Error; err != nil {
		return classifyWriteErr(err, "vendor")
	}
	return nil
}

// Delete removes the vendor within the caller's mutation scope, then
// cascades to its products.
func (s *VendorService) Delete(id uint, caller authz.Identity) error {
	res := s.ownedScope(caller).Unscoped().Where("id = ?", id).Delete(&models.Vendor{})
	if res.Error != nil {
		return apperr.Wrap(apperr.Internal, res.Error, "could not delete vendor %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "vendor %d not found", id)
	}
	if err := s.products.DeleteVendorProducts(id); err != nil {
		logrus.WithError(err).WithField("vendor_id", id).Error("partial vendor cascade")
		return err
	}
	return nil
}

// DeleteCategoryVendors removes every vendor of a category and, for each,
// its products. Runs sequentially: a failure stops further deletion but
// prior deletions stand.
func (s *VendorService) DeleteCategoryVendors(categoryID uint) error {
	var vendorIDs []uint
	if err := s.db.Model(&models.Vendor{}).Where("category_id = ?", categoryID).Pluck("id", &vendorIDs).Error; err != nil {
		return apperr.Wrap(apperr.Internal, err, "could not resolve vendors of category %d", categoryID)
	}
	for _, vendorID := range vendorIDs {
		if err := s.db.Unscoped().Delete(&models.Vendor{}, vendorID).Error; err != nil {
			return apperr.Wrap(apperr.Internal, err, "could not delete vendor %d", vendorID)
		}
		if err := s.products.DeleteVendorProducts(vendorID); err != nil {
			return err
		}
	}
	return nil
}
