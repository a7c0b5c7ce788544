package user

type CreateUserRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	NIK        string  `json:"nik"`
	Password   string  `json:"password" binding:"required,min=8"`
	RoleID     string  `json:"role_id" binding:"required,uuid"`
	DivisionID *string `json:"division_id" binding:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email" binding:"omitempty,email"`
	NIK        string  `json:"nik"`
	Password   string  `json:"password" binding:"omitempty,min=8"`
	RoleID     string  `json:"role_id" binding:"omitempty,uuid"`
	DivisionID *string `json:"division_id" binding:"omitempty,uuid"`
}

type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	NIK          string  `json:"nik"`
	RoleID       string  `json:"role_id"`
	RoleName     string  `json:"role_name,omitempty"`
	DivisionID   *string `json:"division_id,omitempty"`
	DivisionName *string `json:"division_name,omitempty"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}
