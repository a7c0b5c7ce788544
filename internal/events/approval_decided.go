package events

import "time"

type ApprovalDecidedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	LeaveRequestID string    `json:"leave_request_id"`
	StepID         string    `json:"step_id"`
	ApproverID     string    `json:"approver_id"`
	Decision       string    `json:"decision"`
	RequestStatus  string    `json:"leave_request_status"`
	NextApproverID string    `json:"next_approver_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
