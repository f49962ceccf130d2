package models

import "time"

// AdminRole enumerates admin role values. The default is RoleAdmin.
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "superadmin"
)

// Admin defines the admin model based on the 'admins' table
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"` // globally unique
	Password  string    `json:"-" db:"password"`  // bcrypt hash, excluded from JSON
	Role      AdminRole `json:"role" db:"role"`
	IsActive  bool      `json:"is_active" db:"is_active"` // login is refused while false
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
