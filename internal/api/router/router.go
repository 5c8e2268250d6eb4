package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/api/handler"
	"github.com/aakash-73/Se2-Project-v1/internal/api/middleware"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/pkg/jwt"
	"github.com/aakash-73/Se2-Project-v1/pkg/metrics"
)

// Deps what the router needs besides handlers
type Deps struct {
	JWT     *jwt.Manager
	Store   middleware.SessionStore
	Limiter middleware.RateLimiter // nil disables rate limiting
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Setup builds the Gin engine
func Setup(cfg *config.Config, h *handler.Handler, d Deps) *gin.Engine {
	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger, d.Metrics))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitMB << 20))

	// ── health and metrics ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	cookie := cfg.Auth.Cookie.Name
	authors := []model.Role{model.RoleProfessor, model.RoleProfessorAdmin}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// public
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(d.Limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow), h.Auth.Login)
			auth.POST("/guest", h.Auth.Guest)
			auth.POST("/register", middleware.RateLimit(d.Limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow), h.Auth.Register)
		}
		v1.POST("/landing/email", h.Landing.LogEmail)
		v1.GET("/session", middleware.OptionalSession(d.JWT, d.Store, cookie), h.Auth.Session)

		// signed in, guests included
		authorized := v1.Group("")
		authorized.Use(middleware.SessionAuth(d.JWT, d.Store, cookie))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			shell := authorized.Group("/shell")
			{
				shell.PUT("/mode", middleware.RoleAuth(model.RoleProfessorAdmin), h.Shell.SetMode)
				shell.POST("/return", h.Shell.Return)
				shell.POST("/drawer", middleware.RoleAuth(model.RoleProfessorAdmin), h.Shell.SetDrawer)
				shell.POST("/view-as-student", middleware.RoleAuth(authors...), h.Shell.ToggleViewAsStudent)
			}

			uploads := authorized.Group("/uploads/draft")
			uploads.Use(middleware.RoleAuth(authors...))
			{
				uploads.GET("", h.Upload.GetDraft)
				uploads.PUT("", h.Upload.SaveDraft)
				uploads.DELETE("", h.Upload.Discard)
				uploads.POST("/file", h.Upload.StageFile)
				uploads.GET("/file", h.Upload.GetStagedFile)
				uploads.POST("/preview", h.Upload.OpenPreview)
				uploads.DELETE("/preview", h.Upload.ClosePreview)
				uploads.POST("/confirm", h.Upload.Confirm)
			}

			syllabi := authorized.Group("/syllabi")
			{
				syllabi.GET("", h.Catalog.List)
				syllabi.POST("/refresh", h.Catalog.Refresh)
				syllabi.GET("/courses", h.Catalog.Courses)
				syllabi.GET("/courses/:name", h.Catalog.CourseSyllabi)
				syllabi.GET("/export", h.Catalog.Export)
			}

			// edit and delete are gated in the service, view is open to everyone
			modals := authorized.Group("/modals")
			{
				modals.POST("", h.Modal.Open)
				modals.GET("", h.Modal.Current)
				modals.DELETE("", h.Modal.Close)
				modals.GET("/pdf", h.Modal.PDF)
				modals.PUT("/edit", middleware.RoleAuth(authors...), h.Modal.Edit)
				modals.POST("/delete", middleware.RoleAuth(authors...), h.Modal.Delete)
			}

			chat := authorized.Group("/chat")
			{
				chat.GET("", h.Chat.Get)
				chat.DELETE("", h.Chat.Close)
				chat.GET("/courses", h.Chat.Courses)
				chat.GET("/courses/:name/syllabi", h.Chat.CourseSyllabi)
				chat.POST("/select", h.Chat.Select)
				chat.POST("/open", h.Chat.Open)
				chat.POST("/messages", h.Chat.Send)
			}

			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleProfessorAdmin))
			{
				admin.GET("/users", h.Admin.ListUsers)
				admin.PUT("/professors/:id", h.Admin.UpdateProfessor)
				admin.DELETE("/professors/:id", h.Admin.DeleteProfessor)
				admin.GET("/registration-requests", h.Admin.RegistrationRequests)
				admin.POST("/registration-requests/:id/approve", h.Admin.Approve)
				admin.POST("/registration-requests/:id/reject", h.Admin.Reject)
			}
		}
	}

	return r
}
