package models

import "time"

// User roles. Admins manage the catalog; cashiers only run sales.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User represents a staff account (cashier or admin).
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role      string    `json:"role" gorm:"type:varchar(20)" validate:"omitempty,oneof=admin cashier"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
