package auth

import "github.com/google/uuid"

// AuthUser is the credentials projection of the users table, joined with
// the role name the token claims carry.
type AuthUser struct {
	ID       uuid.UUID `gorm:"column:id"`
	Name     string    `gorm:"column:name"`
	Email    string    `gorm:"column:email"`
	NIK      string    `gorm:"column:nik"`
	Password string    `gorm:"column:password"`
	RoleName string    `gorm:"column:role_name"`
	IsActive bool      `gorm:"column:is_active"`
}
