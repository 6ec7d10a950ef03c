package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soko_market/internal/apperr"
	"soko_market/internal/models"
)

func TestVendorCreateMissingCategory(t *testing.T) {
	db, _, vendors, _ := newServices(t)

	created, errs := vendors.Create(321, []VendorInput{{Name: "ghost", Location: "nowhere"}})
	assert.Empty(t, created)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error, "category 321 not found")

	// Nothing was persisted for the failed item.
	var count int64
	require.NoError(t, db.Model(&models.Vendor{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestVendorBatchToleratesParentDeletedMidBatch(t *testing.T) {
	db, _, vendors, _ := newServices(t)
	cat := seedCategory(t, db, "food", nil)

	// Both items re-check the parent; both succeed while it lives.
	created, errs := vendors.Create(cat.ID, []VendorInput{
		{Name: "a", Location: "x"},
		{Name: "b", Location: "y"},
	})
	assert.Empty(t, errs)
	assert.Len(t, created, 2)
}

func TestVendorFindOneReturnsProducts(t *testing.T) {
	db, _, vendors, _ := newServices(t)
	cat := seedCategory(t, db, "food", nil)
	v := seedVendor(t, db, "mama-ntilie", cat.ID, nil)
	seedProduct(t, db, "ugali", v.ID)
	seedProduct(t, db, "sukuma", v.ID)

	detail, err := vendors.FindOne(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "mama-ntilie", detail.Vendor.Name)
	assert.Len(t, detail.Products, 2)
}

func TestVendorDeleteCascadesProducts(t *testing.T) {
	db, _, vendors, products := newServices(t)
	cat := seedCategory(t, db, "food", nil)
	v := seedVendor(t, db, "mama-ntilie", cat.ID, nil)
	seedProduct(t, db, "p1", v.ID)
	seedProduct(t, db, "p2", v.ID)

	admin := seedUser(t, db, "root", models.RoleAdmin)
	require.NoError(t, vendors.Delete(v.ID, asAdmin(admin.ID)))

	remaining, err := products.FindVendorProducts(v.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = vendors.FindOne(v.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestVendorDeleteSurfacesCascadeFailureWithoutRollback(t *testing.T) {
	db, _, vendors, _ := newServices(t)
	cat := seedCategory(t, db, "food", nil)
	v := seedVendor(t, db, "mama-ntilie", cat.ID, nil)
	seedProduct(t, db, "ugali", v.ID)

	// Break the product step of the cascade after the vendor row is gone.
	require.NoError(t, db.Migrator().DropTable(&models.Product{}))

	admin := seedUser(t, db, "root", models.RoleAdmin)
	err := vendors.Delete(v.ID, asAdmin(admin.ID))
	assert.True(t, apperr.Is(err, apperr.Internal))

	// The vendor row stays deleted; there is no compensating re-creation.
	var count int64
	require.NoError(t, db.Model(&models.Vendor{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestVendorOwnershipNarrowsMutations(t *testing.T) {
	db, _, vendors, _ := newServices(t)
	cat := seedCategory(t, db, "food", nil)

	owner := seedUser(t, db, "owner", models.RoleVendor)
	stranger := seedUser(t, db, "stranger", models.RoleVendor)
	v := seedVendor(t, db, "mama-ntilie", cat.ID, &owner.ID)

	name := "renamed"

	// A foreign vendor reads the record as absent, not forbidden.
	err := vendors.Update(v.ID, VendorPatch{Name: &name}, asVendor(stranger.ID))
	assert.True(t, apperr.Is(err, apperr.NotFound))

	require.NoError(t, vendors.Update(v.ID, VendorPatch{Name: &name}, asVendor(owner.ID)))

	detail, err := vendors.FindOne(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", detail.Vendor.Name)

	err = vendors.Delete(v.ID, asVendor(stranger.ID))
	assert.True(t, apperr.Is(err, apperr.NotFound))
	require.NoError(t, vendors.Delete(v.ID, asVendor(owner.ID)))
}

func TestVendorUpdateRejectsMissingCategory(t *testing.T) {
	db, _, vendors, _ := newServices(t)
	cat := seedCategory(t, db, "food", nil)
	v := seedVendor(t, db, "mama-ntilie", cat.ID, nil)

	missing := uint(888)
	admin := seedUser(t, db, "root", models.RoleAdmin)
	err := vendors.Update(v.ID, VendorPatch{CategoryID: &missing}, asAdmin(admin.ID))
	assert.True(t, apperr.Is(err, apperr.DependencyMissing))
}

func TestVendorPositionRoundTrip(t *testing.T) {
	db, _, vendors, _ := newServices(t)
	cat := seedCategory(t, db, "food", nil)

	point := json.RawMessage(`{"type":"Point","coordinates":[36.8219,-1.2921]}`)
	created, errs := vendors.Create(cat.ID, []VendorInput{{Name: "geo", Location: "Nairobi", Position: point}})
	require.Empty(t, errs)
	require.Len(t, created, 1)

	detail, err := vendors.FindOne(created[0].ID)
	require.NoError(t, err)

	out, err := PositionGeoJSON(&detail.Vendor)
	require.NoError(t, err)

	var decoded struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Point", decoded.Type)
	require.Len(t, decoded.Coordinates, 2)
	assert.InDelta(t, 36.8219, decoded.Coordinates[0], 1e-9)
	assert.InDelta(t, -1.2921, decoded.Coordinates[1], 1e-9)
}

func TestVendorCreateRejectsInvalidPosition(t *testing.T) {
	db, _, vendors, _ := newServices(t)
	cat := seedCategory(t, db, "food", nil)

	created, errs := vendors.Create(cat.ID, []VendorInput{
		{Name: "bad-geo", Location: "x", Position: json.RawMessage(`{"type":"Nope"}`)},
	})
	assert.Empty(t, created)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error, "invalid position geometry")
}
