package leavetype

type CreateLeaveTypeRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    *string `json:"description"`
	MaxDaysPerYear *int    `json:"max_days_per_year" binding:"omitempty,gte=1"`
}

type UpdateLeaveTypeRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    *string `json:"description"`
	MaxDaysPerYear *int    `json:"max_days_per_year" binding:"omitempty,gte=1"`
}

type LeaveTypeResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	MaxDaysPerYear *int    `json:"max_days_per_year"`
}
