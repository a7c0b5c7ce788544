package directory

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee     = "EMPLOYEE"
	RoleDivisionHead = "DIVISION_HEAD"
	RoleHRD          = "HRD"
	RoleDirector     = "DIRECTOR"
)

type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Approver is the projection of a user eligible to act at one stage.
// The directory reads the users table directly instead of importing the
// user package, so the dependency only points one way.
type Approver struct {
	ID       uuid.UUID `gorm:"column:id"`
	Name     string    `gorm:"column:name"`
	Email    string    `gorm:"column:email"`
	RoleName string    `gorm:"column:role_name"`
}
