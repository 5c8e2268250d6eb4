package dto

// ── admin and landing DTOs ──

// UserListQuery which user list to show
type UserListQuery struct {
	Type string `form:"type" binding:"omitempty,oneof=professor student"`
}

// UpdateProfessorRequest professor edit form
type UpdateProfessorRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"  binding:"required"`
	Email     string `json:"email"      binding:"required,email"`
}

// LogEmailRequest landing page email capture
type LogEmailRequest struct {
	Email string `json:"email"`
}
