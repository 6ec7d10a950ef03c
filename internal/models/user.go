package models

import "gorm.io/gorm"

// Role is the set of actor kinds known to the platform.
type Role string

const (
	RoleCustomer    Role = "customer"
	RoleVendor      Role = "vendor"
	RoleRider       Role = "rider"
	RoleAdmin       Role = "admin"
	RoleTechSupport Role = "tech_support"
	RoleSales       Role = "sales"
)

// AllRoles lists every valid role, used for input validation.
var AllRoles = []Role{
	RoleCustomer,
	RoleVendor,
	RoleRider,
	RoleAdmin,
	RoleTechSupport,
	RoleSales,
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	for _, r := range AllRoles {
		if Role(s) == r {
			return true
		}
	}
	return false
}

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"uniqueIndex;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Role     Role   `json:"role" gorm:"not null"`
}
