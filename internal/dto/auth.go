package dto

import "github.com/aakash-73/Se2-Project-v1/internal/model"

// ── auth DTOs ──

// LoginRequest login form; username may be an email address
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest registration form
type RegisterRequest struct {
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	UserType        string `json:"user_type"        validate:"required,oneof=student professor"`
}

// LoginResponse identity and the shell it lands on
type LoginResponse struct {
	Identity model.Identity `json:"identity"`
	Shell    ShellView      `json:"shell"`
}

// RegisterResponse where the client goes after registering
type RegisterResponse struct {
	NextView string `json:"next_view"`
	Pending  bool   `json:"pending"`
}

// SessionResponse session probe
type SessionResponse struct {
	Identity *model.Identity `json:"identity,omitempty"`
	Shell    ShellView       `json:"shell"`
}
