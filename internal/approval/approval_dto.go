package approval

type DecideRequest struct {
	Decision string  `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Remarks  *string `json:"remarks" binding:"omitempty,max=500"`
}

type StepResponse struct {
	ID             string  `json:"id"`
	LeaveRequestID string  `json:"leave_request_id"`
	ApproverID     string  `json:"approver_id"`
	ApproverName   string  `json:"approver_name,omitempty"`
	ApproverRole   string  `json:"approver_role,omitempty"`
	StepOrder      int     `json:"step_order"`
	Status         string  `json:"status"`
	Remarks        *string `json:"remarks"`
	DecidedAt      *string `json:"decided_at"`
}

type PendingApprovalResponse struct {
	StepID           string `json:"step_id"`
	StepOrder        int    `json:"step_order"`
	LeaveRequestID   string `json:"leave_request_id"`
	RequesterID      string `json:"requester_id"`
	RequesterName    string `json:"requester_name"`
	RequesterNIK     string `json:"requester_nik"`
	LeaveTypeName    string `json:"leave_type_name"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TotalDays        int    `json:"total_days"`
	Reason           string `json:"reason"`
	RequestCreatedAt string `json:"request_created_at"`
}

type DecideResponse struct {
	Step           StepResponse `json:"step"`
	RequestStatus  string       `json:"leave_request_status"`
	NextApproverID *string      `json:"next_approver_id,omitempty"`
}
