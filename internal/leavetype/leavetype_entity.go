package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxDaysPerYear is the annual quota for the type. Nil means unlimited.
type LeaveType struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"size:255;not null;uniqueIndex:uq_leave_type_name"`
	Description    *string        `gorm:"size:500"`
	MaxDaysPerYear *int           `gorm:""`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
