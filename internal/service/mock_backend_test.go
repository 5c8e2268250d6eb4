package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	"github.com/aakash-73/Se2-Project-v1/internal/catalog"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	"github.com/aakash-73/Se2-Project-v1/pkg/jwt"
)

// ── Mock backend ──

type mockBackend struct {
	mu sync.Mutex

	// auth
	loginResult *backend.LoginResult
	loginErr    error
	registerRes *backend.RegisterResult
	registerErr error
	registered  []*backend.RegisterPayload

	// syllabus
	records   []model.SyllabusRecord
	listErr   error
	listCalls int
	ownCalls  []string
	allCalls  int
	added     []model.SyllabusMetadata
	addErr    error
	updated   map[string][][2]string
	updateErr error
	deleted   []string
	deleteErr error
	getErr    error
	pdfs      map[string]*model.PDFFile
	texts     map[string]string
	pdfErr    error

	// chat
	chatReply string
	chatErr   error
	chatHook  func()
	chatCalls []chatCall

	// admin
	professors []model.UserSummary
	students   []model.UserSummary
	requests   []model.RegistrationRequest
	decisions  map[string]bool
	adminErr   error

	// landing
	emails   []string
	emailErr error
}

type chatCall struct {
	Message, PDFID, Content string
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		updated:   make(map[string][][2]string),
		pdfs:      make(map[string]*model.PDFFile),
		texts:     make(map[string]string),
		decisions: make(map[string]bool),
	}
}

func (m *mockBackend) Login(_ context.Context, username, password string) (*backend.LoginResult, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	if m.loginResult != nil {
		return m.loginResult, nil
	}
	return &backend.LoginResult{Message: "Login successful", Username: username, UserType: "student"}, nil
}

func (m *mockBackend) Register(_ context.Context, payload *backend.RegisterPayload) (*backend.RegisterResult, error) {
	m.registered = append(m.registered, payload)
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	if m.registerRes != nil {
		return m.registerRes, nil
	}
	return &backend.RegisterResult{Status: 201, Message: "User registered successfully"}, nil
}

func (m *mockBackend) ListOwn(_ context.Context, _ backend.Credentials, username string) ([]model.SyllabusRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.ownCalls = append(m.ownCalls, username)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]model.SyllabusRecord(nil), m.records...), nil
}

func (m *mockBackend) ListAll(_ context.Context, _ backend.Credentials) ([]model.SyllabusRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.allCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]model.SyllabusRecord(nil), m.records...), nil
}

func (m *mockBackend) Get(_ context.Context, _ backend.Credentials, id string) (*model.SyllabusRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, r := range m.records {
		if r.RecordID() == id {
			rec := r
			return &rec, nil
		}
	}
	return &model.SyllabusRecord{SyllabusPDF: id}, nil
}

func (m *mockBackend) Add(_ context.Context, _ backend.Credentials, meta model.SyllabusMetadata, _ *model.PDFFile) (string, error) {
	if m.addErr != nil {
		return "", m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, meta)
	m.records = append(m.records, model.SyllabusRecord{
		CourseID:    meta.CourseID,
		CourseName:  meta.CourseName,
		SyllabusPDF: fmt.Sprintf("pdf-%d", len(m.records)+1),
	})
	return "Syllabus added successfully", nil
}

func (m *mockBackend) Update(_ context.Context, _ backend.Credentials, id string, fields [][2]string, _ *model.PDFFile) (string, error) {
	if m.updateErr != nil {
		return "", m.updateErr
	}
	m.updated[id] = fields
	return "Syllabus updated successfully", nil
}

func (m *mockBackend) Delete(_ context.Context, _ backend.Credentials, id string) (string, error) {
	if m.deleteErr != nil {
		return "", m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	out := m.records[:0]
	for _, r := range m.records {
		if r.RecordID() != id {
			out = append(out, r)
		}
	}
	m.records = out
	return "Syllabus deleted successfully", nil
}

func (m *mockBackend) PDF(_ context.Context, _ backend.Credentials, id string) (*model.PDFFile, error) {
	if m.pdfErr != nil {
		return nil, m.pdfErr
	}
	if f, ok := m.pdfs[id]; ok {
		return f, nil
	}
	return &model.PDFFile{Name: id + ".pdf", ContentType: "application/pdf", Data: samplePDF}, nil
}

func (m *mockBackend) PDFText(_ context.Context, _ backend.Credentials, id string) (string, error) {
	if m.pdfErr != nil {
		return "", m.pdfErr
	}
	return m.texts[id], nil
}

func (m *mockBackend) ChatWithPDF(_ context.Context, _ backend.Credentials, msg, pdfID, pdfContent string) (string, error) {
	m.chatCalls = append(m.chatCalls, chatCall{Message: msg, PDFID: pdfID, Content: pdfContent})
	if m.chatHook != nil {
		m.chatHook()
	}
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.chatReply, nil
}

func (m *mockBackend) ListProfessors(_ context.Context, _ backend.Credentials) ([]model.UserSummary, error) {
	return m.professors, m.adminErr
}

func (m *mockBackend) ListStudents(_ context.Context, _ backend.Credentials) ([]model.UserSummary, error) {
	return m.students, m.adminErr
}

func (m *mockBackend) UpdateProfessor(_ context.Context, _ backend.Credentials, id string, _ *backend.ProfessorPayload) (string, error) {
	if m.adminErr != nil {
		return "", m.adminErr
	}
	return "Professor updated successfully", nil
}

func (m *mockBackend) DeleteProfessor(_ context.Context, _ backend.Credentials, id string) (string, error) {
	if m.adminErr != nil {
		return "", m.adminErr
	}
	return "Professor deleted successfully", nil
}

func (m *mockBackend) ListRegistrationRequests(_ context.Context, _ backend.Credentials) ([]model.RegistrationRequest, error) {
	return m.requests, m.adminErr
}

func (m *mockBackend) DecideRegistration(_ context.Context, _ backend.Credentials, id string, approve bool) (string, error) {
	if m.adminErr != nil {
		return "", m.adminErr
	}
	m.decisions[id] = approve
	if approve {
		return "Registration approved", nil
	}
	return "Registration rejected", nil
}

func (m *mockBackend) LogEmail(_ context.Context, email string) error {
	if m.emailErr != nil {
		return m.emailErr
	}
	m.emails = append(m.emails, email)
	return nil
}

// ── Fixtures ──

// minimal bytes that sniff as application/pdf
var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type testEnv struct {
	be       *mockBackend
	store    *session.Store
	catalogs *catalog.Registry
	svc      *Service
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-key-for-unit-tests",
			SessionTTL: time.Hour,
		},
		Upload: config.UploadConfig{MaxFileMB: 1, DraftTTL: time.Hour},
		Chat:   config.ChatConfig{MaxMessageLen: 200},
	}
}

func newTestEnv() *testEnv {
	cfg := testConfig()
	be := newMockBackend()
	store := session.NewStore(session.NewMemoryKV(), time.Hour)
	catalogs := catalog.NewRegistry(time.Hour, zap.NewNop())
	agg := &backend.Backend{Auth: be, Syllabus: be, Chat: be, Admin: be, Landing: be}
	svc := NewService(cfg, agg, store, catalogs, jwt.NewManager(&cfg.Auth), zap.NewNop())
	return &testEnv{be: be, store: store, catalogs: catalogs, svc: svc}
}

// signIn creates a session for role and returns its caller
func (e *testEnv) signIn(username string, role model.Role) *Caller {
	sid := "sid-" + username
	id := model.Identity{Username: username, Role: role}
	creds := backend.Credentials{{Name: "session", Value: "cookie-" + username}}
	if role.IsGuest() {
		creds = nil
	}
	if err := e.store.SignIn(context.Background(), sid, id, creds); err != nil {
		panic(err)
	}
	return &Caller{SessionID: sid, Identity: id}
}
