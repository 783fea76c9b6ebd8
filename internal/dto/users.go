package dto

import "github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" binding:"required"`
}

// UpdateUserRequest patches an account; nil fields stay unchanged.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
}

type UserResponse struct {
	*models.User
	Role string `json:"role"`
}
