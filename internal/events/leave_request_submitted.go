package events

import "time"

const LeaveWorkflowTopic = "leave.workflow.v1"

type LeaveRequestSubmittedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	LeaveRequestID string    `json:"leave_request_id"`
	RequesterID    string    `json:"requester_id"`
	FirstApprover  string    `json:"first_approver_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}
