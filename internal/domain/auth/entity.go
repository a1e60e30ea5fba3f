package auth

import "time"

// Roles an account can carry. Staff roles use the internal dashboard;
// customers use the portal. Roles are stored as account metadata and are
// not enforced on data routes.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleDispatcher = "dispatcher"
	RoleCustomer   = "customer"
)

// User is an authenticated account, staff or customer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidStaffRole reports whether role is one of the internal team roles.
func ValidStaffRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTechnician, RoleDispatcher:
		return true
	}
	return false
}
