package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	"github.com/aakash-73/Se2-Project-v1/internal/catalog"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	"github.com/aakash-73/Se2-Project-v1/pkg/jwt"
)

var (
	ErrForbidden       = errors.New("permission denied")
	ErrFacultyViewOnly = errors.New("not available while viewing as student")
	ErrNoModal         = errors.New("no matching modal is open")
	ErrPreviewClosed   = errors.New("upload preview is not open")
	ErrNoChatSelection = errors.New("no PDF selected for chat")
	ErrNoChat          = errors.New("no chat is open")
)

// Caller session a request acts for
type Caller struct {
	SessionID string
	Identity  model.Identity
}

// Service aggregate of all services
type Service struct {
	Auth    AuthService
	Shell   ShellService
	Upload  UploadService
	Catalog CatalogService
	Modal   ModalService
	Chat    ChatService
	Admin   AdminService
	Landing LandingService
	Export  ExportService
}

// NewService wires every service
func NewService(
	cfg *config.Config,
	be *backend.Backend,
	store *session.Store,
	catalogs *catalog.Registry,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	ops := NewInflight()
	shell := NewShellService(store, logger)
	cat := NewCatalogService(be.Syllabus, store, catalogs, logger)

	return &Service{
		Auth:    NewAuthService(be.Auth, store, shell, catalogs, ops, jwtMgr, logger),
		Shell:   shell,
		Upload:  NewUploadService(cfg.Upload, be.Syllabus, store, cat, ops, logger),
		Catalog: cat,
		Modal:   NewModalService(cfg.Upload, be.Syllabus, store, cat, logger),
		Chat:    NewChatService(cfg.Chat, be.Syllabus, be.Chat, cat, store, ops, logger),
		Admin:   NewAdminService(be.Admin, store, logger),
		Landing: NewLandingService(be.Landing, logger),
		Export:  NewExportService(cat, logger),
	}
}
