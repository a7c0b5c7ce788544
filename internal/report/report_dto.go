package report

type ReportFilter struct {
	StartDate   string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Status      string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	RequesterID string `form:"requester_id" binding:"omitempty,uuid"`
}

type ReportRowResponse struct {
	ID             string `json:"id"`
	RequesterID    string `json:"requester_id"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	LeaveTypeName  string `json:"leave_type_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalDays      int    `json:"total_days"`
	Reason         string `json:"reason"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}
