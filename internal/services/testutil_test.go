package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"soko_market/internal/authz"
	"soko_market/internal/config"
	"soko_market/internal/models"
)

// newTestDB opens a fresh in-memory database per test. A single connection
// keeps the pool from silently opening separate in-memory databases.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func newServices(t *testing.T) (*gorm.DB, *CategoryService, *VendorService, *ProductService) {
	t.Helper()
	db := newTestDB(t)
	products := NewProductService(db)
	vendors := NewVendorService(db, products)
	categories := NewCategoryService(db, vendors)
	return db, categories, vendors, products
}

func seedUser(t *testing.T, db *gorm.DB, name string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string, parentID *uint) models.Category {
	t.Helper()
	cat := models.Category{Name: name, ParentCategoryID: parentID}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func seedVendor(t *testing.T, db *gorm.DB, name string, categoryID uint, userID *uint) models.Vendor {
	t.Helper()
	vendor := models.Vendor{Name: name, CategoryID: categoryID, Location: "Nairobi", UserID: userID}
	require.NoError(t, db.Create(&vendor).Error)
	return vendor
}

func seedProduct(t *testing.T, db *gorm.DB, name string, vendorID uint) models.Product {
	t.Helper()
	product := models.Product{Name: name, VendorID: vendorID, Price: 9.5}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func asAdmin(id uint) authz.Identity  { return authz.Identity{UserID: id, Role: models.RoleAdmin} }
func asVendor(id uint) authz.Identity { return authz.Identity{UserID: id, Role: models.RoleVendor} }
