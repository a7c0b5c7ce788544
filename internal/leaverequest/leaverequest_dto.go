package leaverequest

import "github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/approval"

type CreateLeaveRequestRequest struct {
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
}

type UpdateLeaveRequestRequest struct {
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
}

type LeaveTypeSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MaxDaysPerYear *int   `json:"max_days_per_year"`
}

type LeaveRequestResponse struct {
	ID          string                  `json:"id"`
	RequesterID string                  `json:"requester_id"`
	LeaveType   LeaveTypeSummary        `json:"leave_type"`
	StartDate   string                  `json:"start_date"`
	EndDate     string                  `json:"end_date"`
	TotalDays   int                     `json:"total_days"`
	Reason      string                  `json:"reason"`
	Status      string                  `json:"status"`
	CreatedAt   string                  `json:"created_at"`
	Approvals   []approval.StepResponse `json:"approvals,omitempty"`
}

type TypeStatsResponse struct {
	LeaveTypeID    string `json:"leave_type_id"`
	LeaveTypeName  string `json:"leave_type_name"`
	MaxDaysPerYear *int   `json:"max_days_per_year"`
	TotalRequests  int    `json:"total_requests"`
	UsedDays       int    `json:"used_days"`
	RemainingDays  *int   `json:"remaining_days"`
}

type LeaveStatsResponse struct {
	Year           int                    `json:"year"`
	ByType         []TypeStatsResponse    `json:"by_type"`
	PendingCount   int64                  `json:"pending_count"`
	ApprovedCount  int64                  `json:"approved_count"`
	RecentRequests []LeaveRequestResponse `json:"recent_requests"`
}
