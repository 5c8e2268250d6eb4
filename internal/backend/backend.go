package backend

import (
	"context"

	"github.com/aakash-73/Se2-Project-v1/internal/model"
)

// AuthAPI Auth Service endpoints
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, payload *RegisterPayload) (*RegisterResult, error)
}

// SyllabusAPI Syllabus Service endpoints
type SyllabusAPI interface {
	ListOwn(ctx context.Context, creds Credentials, username string) ([]model.SyllabusRecord, error)
	ListAll(ctx context.Context, creds Credentials) ([]model.SyllabusRecord, error)
	Get(ctx context.Context, creds Credentials, id string) (*model.SyllabusRecord, error)
	Add(ctx context.Context, creds Credentials, meta model.SyllabusMetadata, file *model.PDFFile) (string, error)
	Update(ctx context.Context, creds Credentials, id string, fields [][2]string, file *model.PDFFile) (string, error)
	Delete(ctx context.Context, creds Credentials, id string) (string, error)
	PDF(ctx context.Context, creds Credentials, id string) (*model.PDFFile, error)
	PDFText(ctx context.Context, creds Credentials, id string) (string, error)
}

// ChatAPI chat-with-PDF endpoint
type ChatAPI interface {
	ChatWithPDF(ctx context.Context, creds Credentials, msg, pdfID, pdfContent string) (string, error)
}

// AdminAPI user management endpoints
type AdminAPI interface {
	ListProfessors(ctx context.Context, creds Credentials) ([]model.UserSummary, error)
	ListStudents(ctx context.Context, creds Credentials) ([]model.UserSummary, error)
	UpdateProfessor(ctx context.Context, creds Credentials, id string, payload *ProfessorPayload) (string, error)
	DeleteProfessor(ctx context.Context, creds Credentials, id string) (string, error)
	ListRegistrationRequests(ctx context.Context, creds Credentials) ([]model.RegistrationRequest, error)
	DecideRegistration(ctx context.Context, creds Credentials, id string, approve bool) (string, error)
}

// LandingAPI email capture endpoint
type LandingAPI interface {
	LogEmail(ctx context.Context, email string) error
}

// Backend aggregate of all backend APIs
type Backend struct {
	Auth     AuthAPI
	Syllabus SyllabusAPI
	Chat     ChatAPI
	Admin    AdminAPI
	Landing  LandingAPI
}

// New aggregates a Client behind every API
func New(c *Client) *Backend {
	return &Backend{
		Auth:     c,
		Syllabus: c,
		Chat:     c,
		Admin:    c,
		Landing:  c,
	}
}

// ── payloads ──

// LoginResult successful login
type LoginResult struct {
	Message  string
	Username string
	UserType string
	Cookies  Credentials
}

// RegisterPayload body of POST /register
type RegisterPayload struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	UserType        string `json:"user_type"`
}

// RegisterResult status distinguishes created (2xx) from pending approval (202)
type RegisterResult struct {
	Status  int
	Message string
}

// ProfessorPayload body of PUT /professors/:id
type ProfessorPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
