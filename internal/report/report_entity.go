package report

import (
	"time"

	"github.com/google/uuid"
)

// ReportRow is the flattened tabular projection used for dashboards and
// exports. It reads the post-decision snapshot and never mutates anything.
type ReportRow struct {
	ID             uuid.UUID `gorm:"column:id"`
	RequesterID    uuid.UUID `gorm:"column:requester_id"`
	RequesterName  string    `gorm:"column:requester_name"`
	RequesterEmail string    `gorm:"column:requester_email"`
	LeaveTypeName  string    `gorm:"column:leave_type_name"`
	StartDate      time.Time `gorm:"column:start_date"`
	EndDate        time.Time `gorm:"column:end_date"`
	TotalDays      int       `gorm:"column:total_days"`
	Reason         string    `gorm:"column:reason"`
	Status         string    `gorm:"column:status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}
