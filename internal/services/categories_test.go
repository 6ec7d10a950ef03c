package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soko_market/internal/apperr"
	"soko_market/internal/models"
)

func TestCategoryCreateHonorsExplicitID(t *testing.T) {
	_, categories, _, _ := newServices(t)

	created, errs := categories.Create([]CategoryInput{{ID: 42, Name: "electronics"}})
	require.Empty(t, errs)
	require.Len(t, created, 1)
	assert.Equal(t, uint(42), created[0].ID)

	detail, err := categories.FindOne(42)
	require.NoError(t, err)
	assert.Equal(t, "electronics", detail.Category.Name)
}

func TestCategoryBatchCreatePartialFailure(t *testing.T) {
	db, categories, _, _ := newServices(t)
	seedCategory(t, db, "food", nil)

	created, errs := categories.Create([]CategoryInput{
		{Name: "drinks"},
		{Name: "food"}, // duplicate name
		{Name: "snacks"},
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "food", errs[0].Item)
	assert.Contains(t, errs[0].Error, "already exists")

	require.Len(t, created, 2)
	assert.Equal(t, "drinks", created[0].Name)
	assert.Equal(t, "snacks", created[1].Name)

	// The failing sibling did not abort the others.
	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestCategoryCreateMissingParent(t *testing.T) {
	_, categories, _, _ := newServices(t)

	missing := uint(999)
	created, errs := categories.Create([]CategoryInput{{Name: "orphan", ParentCategoryID: &missing}})
	assert.Empty(t, created)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error, "parent category 999 not found")
}

func TestCategoryFindOneReturnsChildrenAndVendors(t *testing.T) {
	db, categories, _, _ := newServices(t)

	root := seedCategory(t, db, "food", nil)
	seedCategory(t, db, "drinks", &root.ID)
	seedCategory(t, db, "snacks", &root.ID)
	seedVendor(t, db, "mama-ntilie", root.ID, nil)

	detail, err := categories.FindOne(root.ID)
	require.NoError(t, err)
	assert.Len(t, detail.SubCategories, 2)
	require.Len(t, detail.Vendors, 1)
	assert.Equal(t, "mama-ntilie", detail.Vendors[0].Name)
}

func TestCategoryUpdateRejectsMissingParent(t *testing.T) {
	db, categories, _, _ := newServices(t)
	cat := seedCategory(t, db, "food", nil)

	missing := uint(9999)
	err := categories.Update(cat.ID, CategoryPatch{ParentCategoryID: &missing})
	assert.True(t, apperr.Is(err, apperr.DependencyMissing))

	// The dangling reference was never persisted.
	var got models.Category
	require.NoError(t, db.First(&got, cat.ID).Error)
	assert.Nil(t, got.ParentCategoryID)
}

func TestCategoryUpdateReparentsUnderLiveParent(t *testing.T) {
	db, categories, _, _ := newServices(t)
	root := seedCategory(t, db, "food", nil)
	cat := seedCategory(t, db, "drinks", nil)

	require.NoError(t, categories.Update(cat.ID, CategoryPatch{ParentCategoryID: &root.ID}))

	var got models.Category
	require.NoError(t, db.First(&got, cat.ID).Error)
	require.NotNil(t, got.ParentCategoryID)
	assert.Equal(t, root.ID, *got.ParentCategoryID)
}

func TestCategoryUpdateNotFound(t *testing.T) {
	_, categories, _, _ := newServices(t)

	name := "renamed"
	err := categories.Update(12345, CategoryPatch{Name: &name})
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestCategoryDeleteNotFound(t *testing.T) {
	_, categories, _, _ := newServices(t)

	err := categories.Delete(777)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestCategoryDeleteSurfacesCascadeFailureWithoutRollback(t *testing.T) {
	db, categories, _, _ := newServices(t)
	root := seedCategory(t, db, "food", nil)
	seedVendor(t, db, "mama-ntilie", root.ID, nil)

	// Break the vendor step of the cascade after the category row is gone.
	require.NoError(t, db.Migrator().DropTable(&models.Vendor{}))

	err := categories.Delete(root.ID)
	assert.True(t, apperr.Is(err, apperr.Internal))

	// The category row stays deleted; there is no compensating re-creation.
	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCategoryDeleteCascadesSubtree(t *testing.T) {
	db, categories, _, _ := newServices(t)

	root := seedCategory(t, db, "food", nil)
	sub := seedCategory(t, db, "drinks", &root.ID)
	v1 := seedVendor(t, db, "v1", root.ID, nil)
	v2 := seedVendor(t, db, "v2", root.ID, nil)
	v3 := seedVendor(t, db, "v3", sub.ID, nil)
	seedProduct(t, db, "p1", v1.ID)
	seedProduct(t, db, "p2", v1.ID)
	seedProduct(t, db, "p3", v2.ID)
	seedProduct(t, db, "p4", v3.ID)

	// Unrelated records survive the cascade.
	other := seedCategory(t, db, "hardware", nil)
	otherVendor := seedVendor(t, db, "tools-r-us", other.ID, nil)
	seedProduct(t, db, "hammer", otherVendor.ID)

	require.NoError(t, categories.Delete(root.ID))

	var cats, vendors, products int64
	require.NoError(t, db.Model(&models.Category{}).Count(&cats).Error)
	require.NoError(t, db.Model(&models.Vendor{}).Count(&vendors).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.EqualValues(t, 1, cats, "only the unrelated category remains")
	assert.EqualValues(t, 1, vendors)
	assert.EqualValues(t, 1, products)

	_, err := categories.FindOne(root.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
