package division

type CreateDivisionRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateDivisionRequest struct {
	Name string `json:"name" binding:"required"`
}

type DivisionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
