// Package authz is the single authorization gate. Every entity route
// declares an action identifier; the gate checks the caller's role against
// that action's allow-list before the controller runs. Actions without a
// declared allow-list are denied.
package authz

import (
	"soko_market/internal/models"
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID uint
	Role   models.Role
}

// Action identifies one operation on one entity kind.
type Action string

const (
	ActionCategoryCreate Action = "category.create"
	ActionCategoryRead   Action = "category.read"
	ActionCategoryUpdate Action = "category.update"
	ActionCategoryDelete Action = "category.delete"

	ActionVendorCreate Action = "vendor.create"
	ActionVendorRead   Action = "vendor.read"
	ActionVendorUpdate Action = "vendor.update"
	ActionVendorDelete Action = "vendor.delete"

	ActionProductCreate Action = "product.create"
	ActionProductRead   Action = "product.read"
	ActionProductUpdate Action = "product.update"
	ActionProductDelete Action = "product.delete"

	ActionOrderCreate Action = "order.create"
	ActionOrderRead   Action = "order.read"
	ActionOrderUpdate Action = "order.update"
	ActionOrderDelete Action = "order.delete"

	ActionUserCreate Action = "user.create"
	ActionUserRead   Action = "user.read"
	ActionUserUpdate Action = "user.update"
	ActionUserDelete Action = "user.delete"
)

var allAuthenticated = []models.Role{
	models.RoleAdmin,
	models.RoleSales,
	models.RoleTechSupport,
	models.RoleCustomer,
	models.RoleVendor,
	models.RoleRider,
}

var backOffice = []models.Role{models.RoleAdmin, models.RoleSales}

// vendorOwned actions additionally allow the vendor role; ownership of the
// touched record is narrowed in the service layer, not here.
var vendorOwned = []models.Role{models.RoleAdmin, models.RoleSales, models.RoleVendor}

var orderParties = []models.Role{
	models.RoleAdmin,
	models.RoleCustomer,
	models.RoleVendor,
	models.RoleRider,
}

var userAdmins = []models.Role{models.RoleAdmin, models.RoleTechSupport}

var allowLists = map[Action][]models.Role{
	ActionCategoryCreate: backOffice,
	ActionCategoryRead:   allAuthenticated,
	ActionCategoryUpdate: backOffice,
	ActionCategoryDelete: backOffice,

	ActionVendorCreate: backOffice,
	ActionVendorRead:   allAuthenticated,
	ActionVendorUpdate: vendorOwned,
	ActionVendorDelete: vendorOwned,

	ActionProductCreate: vendorOwned,
	ActionProductRead:   allAuthenticated,
	ActionProductUpdate: vendorOwned,
	ActionProductDelete: vendorOwned,

	ActionOrderCreate: {models.RoleCustomer},
	ActionOrderRead:   orderParties,
	ActionOrderUpdate: orderParties,
	// Riders cannot delete orders, only admin and the owning parties.
	ActionOrderDelete: {models.RoleAdmin, models.RoleVendor, models.RoleCustomer},

	ActionUserCreate: userAdmins,
	ActionUserRead:   userAdmins,
	ActionUserUpdate: userAdmins,
	ActionUserDelete: {models.RoleAdmin},
}

// Allowed reports whether role may perform action. Unknown actions are
// denied for every role.
func Allowed(action Action, role models.Role) bool {
	roles, ok := allowLists[action]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
