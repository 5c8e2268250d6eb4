package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

// AuthHandler login, guest bypass, registration, logout and the session probe
type AuthHandler struct {
	authSvc  service.AuthService
	shellSvc service.ShellService
	cookie   config.CookieConfig
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService, shellSvc service.ShellService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, shellSvc: shellSvc, cookie: cookie}
}

// Login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Username and password are required.")
		return
	}

	out, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, out.Token, out.ExpiresAt)
	response.OKWithMessage(c, out.Message, out.Response)
}

// Guest read-only session without credentials
// POST /api/v1/auth/guest
func (h *AuthHandler) Guest(c *gin.Context) {
	out, err := h.authSvc.Guest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, out.Token, out.ExpiresAt)
	response.OK(c, out.Response)
}

// Register
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid registration form.")
		return
	}

	out, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if out.Response.Pending {
		response.Accepted(c, out.Message, out.Response)
		return
	}
	response.Created(c, out.Message, out.Response)
}

// Logout
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	tokenID, expiresAt := tokenInfo(c)

	if err := h.authSvc.Logout(c.Request.Context(), caller, tokenID, expiresAt); err != nil {
		respondError(c, err)
		return
	}

	h.clearSessionCookie(c)
	response.OK(c, nil)
}

// Session current identity and shell; without a session the auth view
// GET /api/v1/session
func (h *AuthHandler) Session(c *gin.Context) {
	caller := callerFrom(c)

	shell, err := h.shellSvc.Render(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	out := dto.SessionResponse{Shell: shell}
	if caller != nil {
		out.Identity = &caller.Identity
	}
	response.OK(c, out)
}

// ── cookie ──

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(sameSite(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(sameSite(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
