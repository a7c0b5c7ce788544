package approval

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ApprovalStep is one stage of a request's approval chain. StepOrder is
// 1-based and fixed at submission time. A step leaves PENDING exactly once,
// and only by its assigned approver.
type ApprovalStep struct {
	ID             uuid.UUID
	LeaveRequestID uuid.UUID
	ApproverID     uuid.UUID
	StepOrder      int
	Status         string
	Remarks        *string
	DecidedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StepWithApprover is the step row joined with the approver's name and role
// for request detail views.
type StepWithApprover struct {
	ApprovalStep
	ApproverName string
	ApproverRole string
}

// PendingApproval is the projection shown in an approver's inbox: the step
// plus enough of the owning request to act on it.
type PendingApproval struct {
	StepID           uuid.UUID
	StepOrder        int
	LeaveRequestID   uuid.UUID
	RequesterID      uuid.UUID
	RequesterName    string
	RequesterNIK     string
	LeaveTypeName    string
	StartDate        time.Time
	EndDate          time.Time
	TotalDays        int
	Reason           string
	RequestCreatedAt time.Time
}
