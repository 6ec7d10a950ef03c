package services

import (
	"errors"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"soko_market/internal/apperr"
	"soko_market/internal/models"
)

// CategoryService maintains the top of the catalog tree and owns the
// downward cascade: category → sub-categories + vendors → products.
type CategoryService struct {
	db      *gorm.DB
	vendors *VendorService
}

func NewCategoryService(db *gorm.DB, vendors *VendorService) *CategoryService {
	return &CategoryService{db: db, vendors: vendors}
}

// CategoryInput is one item of a batch create. A non-zero ID is honored as
// the record's id.
type CategoryInput struct {
	ID               uint   `json:"id"`
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	ParentCategoryID *uint  `json:"parent_category_id"`
}

// CategoryPatch is a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	ParentCategoryID *uint   `json:"parent_category_id"`
}

// CategoryDetail is the read-side join returned by FindOne.
type CategoryDetail struct {
	Category      models.Category   `json:"category"`
	SubCategories []models.Category `json:"sub_categories"`
	Vendors       []models.Vendor   `json:"vendors"`
}

// Create attempts every item independently; a failed item yields an
// ItemError and never aborts its siblings. Parent existence is re-verified
// per item, tolerating a parent deleted mid-batch.
func (s *CategoryService) Create(inputs []CategoryInput) ([]models.Category, []ItemError) {
	var created []models.Category
	var errs []ItemError

	for _, in := range inputs {
		if in.ParentCategoryID != nil {
			var parent models.Category
			if err := s.db.First(&parent, *in.ParentCategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					errs = append(errs, ItemError{
						Item:  in.Name,
						Error: apperr.New(apperr.DependencyMissing, "parent category %d not found", *in.ParentCategoryID).Error(),
					})
				} else {
					errs = append(errs, ItemError{Item: in.Name, Error: err.Error()})
				}
				continue
			}
		}

		cat := models.Category{
			Name:             in.Name,
			Description:      in.Description,
			ParentCategoryID: in.ParentCategoryID,
		}
		cat.ID = in.ID

		if err := s.db.Create(&cat).Error; err != nil {
			errs = append(errs, ItemError{Item: in.Name, Error: classifyWriteErr(err, "category").Error()})
			continue
		}
		created = append(created, cat)
	}
	return created, errs
}

// FindAll lists categories, optionally narrowed to one parent's children.
func (s *CategoryService) FindAll(parentID *uint) ([]models.Category, error) {
	var cats []models.Category
	q := s.db
	if parentID != nil {
		q = q.Where("parent_category_id = ?", *parentID)
	}
	if err := q.Find(&cats).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch categories")
	}
	return cats, nil
}

// FindOne returns the category together with its direct sub-categories and
// its vendors.
func (s *CategoryService) FindOne(id uint) (*CategoryDetail, error) {
	var cat models.Category
	if err := s.db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "category %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch category %d", id)
	}

	subs, err := s.FindAll(&id)
	if err != nil {
		return nil, err
	}
	vendors, err := s.vendors.FindCategoryVendors(id)
	if err != nil {
		return nil, err
	}

	return &CategoryDetail{Category: cat, SubCategories: subs, Vendors: vendors}, nil
}

// Update applies a partial patch; matching zero records reports NotFound.
// When the patch moves the category under a new parent, that parent must
// exist.
func (s *CategoryService) Update(id uint, patch CategoryPatch) error {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.ParentCategoryID != nil {
		var parent models.Category
		if err := s.db.First(&parent, *patch.ParentCategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.DependencyMissing, "parent category %d not found", *patch.ParentCategoryID)
			}
			return apperr.Wrap(apperr.Internal, err, "could not verify parent category %d", *patch.ParentCategoryID)
		}
		fields["parent_category_id"] = *patch.ParentCategoryID
	}
	if len(fields) == 0 {
		return apperr.New(apperr.InvalidInput, "no fields to update")
	}

	res := s.db.Model(&models.Category{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return classifyWriteErr(res.Error, "category")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "category %d not found", id)
	}
	return nil
}

// Delete removes the category, then cascades depth-first through its
// sub-categories and vendors. Already-deleted records stay deleted if a
// later cascade step fails; the error surfaces to the caller.
func (s *CategoryService) Delete(id uint) error {
	res := s.db.Unscoped().Delete(&models.Category{}, id)
	if res.Error != nil {
		return apperr.Wrap(apperr.Internal, res.Error, "could not delete category %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "category %d not found", id)
	}
	if err := s.cascade(id); err != nil {
		logrus.WithError(err).WithField("category_id", id).Error("partial category cascade")
		return err
	}
	return nil
}

// cascade deletes a category's subtree: each sub-category recursively, then
// the category's vendors with their products. Steps run sequentially so a
// failure stops further deletion without undoing prior steps.
func (s *CategoryService) cascade(id uint) error {
	var subIDs []uint
	if err := s.db.Model(&models.Category{}).Where("parent_category_id = ?", id).Pluck("id", &subIDs).Error; err != nil {
		return apperr.Wrap(apperr.Internal, err, "could not resolve sub-categories of %d", id)
	}
	for _, subID := range subIDs {
		if err := s.db.Unscoped().Delete(&models.Category{}, subID).Error; err != nil {
			return apperr.Wrap(apperr.Internal, err, "could not delete sub-category %d", subID)
		}
		if err := s.cascade(subID); err != nil {
			return err
		}
	}
	return s.vendors.DeleteCategoryVendors(id)
}
