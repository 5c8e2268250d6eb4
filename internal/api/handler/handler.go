package handler

import (
	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
)

// Handler aggregate of all handlers
type Handler struct {
	Auth    *AuthHandler
	Shell   *ShellHandler
	Upload  *UploadHandler
	Catalog *CatalogHandler
	Modal   *ModalHandler
	Chat    *ChatHandler
	Admin   *AdminHandler
	Landing *LandingHandler
}

// NewHandler creates the handler aggregate
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	maxFile := cfg.Upload.MaxFileBytes()
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth, svc.Shell, cfg.Auth.Cookie),
		Shell:   NewShellHandler(svc.Shell),
		Upload:  NewUploadHandler(svc.Upload, maxFile),
		Catalog: NewCatalogHandler(svc.Catalog, svc.Export),
		Modal:   NewModalHandler(svc.Modal, maxFile),
		Chat:    NewChatHandler(svc.Chat),
		Admin:   NewAdminHandler(svc.Admin),
		Landing: NewLandingHandler(svc.Landing),
	}
}
