package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeaveRequest is the aggregate root of one leave application. Its status
// is derived from the approval chain and never set directly by an approver.
// Once it leaves PENDING the record is immutable history.
type LeaveRequest struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID      `gorm:"type:uuid;not null;index"`
	LeaveTypeID uuid.UUID      `gorm:"type:uuid;not null;index"`
	StartDate   time.Time      `gorm:"type:date;not null"`
	EndDate     time.Time      `gorm:"type:date;not null"`
	TotalDays   int            `gorm:"not null"`
	Reason      string         `gorm:"size:500;not null"`
	Status      string         `gorm:"size:20;not null;default:PENDING"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// LeaveTypeInfo is the slice of the leave type the store needs for
// validation and responses. Read straight from the leave_types table so
// the package dependency only points one way.
type LeaveTypeInfo struct {
	ID             uuid.UUID `gorm:"column:id"`
	Name           string    `gorm:"column:name"`
	MaxDaysPerYear *int      `gorm:"column:max_days_per_year"`
}

// TypeUsage is one row of the per-type stats projection: how much of the
// yearly quota the requester has consumed for one leave type.
type TypeUsage struct {
	LeaveTypeID    uuid.UUID `gorm:"column:leave_type_id"`
	LeaveTypeName  string    `gorm:"column:leave_type_name"`
	MaxDaysPerYear *int      `gorm:"column:max_days_per_year"`
	TotalRequests  int       `gorm:"column:total_requests"`
	UsedDays       int       `gorm:"column:used_days"`
}
