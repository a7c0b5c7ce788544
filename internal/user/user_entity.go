package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string     `gorm:"type:varchar(255);not null"`
	Email      string     `gorm:"type:text;not null;uniqueIndex:uq_user_email"`
	NIK        string     `gorm:"column:nik;type:varchar(50);not null;uniqueIndex:uq_user_nik"`
	Password   string     `gorm:"type:text;not null"`
	RoleID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	DivisionID *uuid.UUID `gorm:"type:uuid;index"`
	IsActive   bool       `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Role     *UserRole     `gorm:"foreignKey:RoleID;references:ID"`
	Division *UserDivision `gorm:"foreignKey:DivisionID;references:ID"`
}

// UserRole is a minimal join projection of the roles table.
type UserRole struct {
	ID   uuid.UUID `gorm:"primaryKey"`
	Name string    `gorm:"column:name"`
}

func (UserRole) TableName() string {
	return "roles"
}

// UserDivision is a minimal join projection of the divisions table.
type UserDivision struct {
	ID   uuid.UUID `gorm:"primaryKey"`
	Name string    `gorm:"column:name"`
}

func (UserDivision) TableName() string {
	return "divisions"
}
