package dto

import "github.com/estatecore/backend/internal/app/models"

// RegisterRequest carries the multipart form fields of POST /api/user/add-user.
// The profile picture arrives as the separate `profilePic` file part.
type RegisterRequest struct {
	FirstName string `form:"first_nm" binding:"required"`
	LastName  string `form:"last_nm" binding:"required"`
	Address   string `form:"address" binding:"required"`
	City      string `form:"city" binding:"required"`
	State     string `form:"state" binding:"required"`
	Email     string `form:"email" binding:"required"`
	Mobile    string `form:"mobile" binding:"required"`
	Password  string `form:"password" binding:"required"`
	Role      string `form:"role"`
}

// RegisterResponse is returned on successful signup
type RegisterResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Message string       `json:"message"`
	Status  string       `json:"status"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// ForgotPasswordRequest carries the account email for a reset link
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest carries the replacement password; the token travels
// in the URL path
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}
