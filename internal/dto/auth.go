package dto

import "github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	Role  string       `json:"role"`
	User  *models.User `json:"user"`
}

// VerifyCredentialRequest re-checks the caller's own password before a
// sensitive operation.
type VerifyCredentialRequest struct {
	Password string `json:"password" binding:"required"`
}
