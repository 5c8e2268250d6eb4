package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/pkg/jwt"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

// Context keys set by SessionAuth and OptionalSession
const (
	CtxSessionID = "session_id"
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxTokenID   = "token_id"
	CtxTokenExp  = "token_exp"
)

// SessionStore what the auth middleware needs from the session store
type SessionStore interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Identity(ctx context.Context, sessionID string) (*model.Identity, error)
}

// SessionAuth requires a valid, unrevoked session token whose session still has an identity.
// The token is read from cookieName, then from Authorization: Bearer <token>.
func SessionAuth(jwtMgr *jwt.Manager, store SessionStore, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !resolveSession(c, jwtMgr, store, cookieName) {
			response.Unauthorized(c, 10002, "Please log in to continue.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalSession resolves the session when one is presented and never rejects
func OptionalSession(jwtMgr *jwt.Manager, store SessionStore, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolveSession(c, jwtMgr, store, cookieName)
		c.Next()
	}
}

func resolveSession(c *gin.Context, jwtMgr *jwt.Manager, store SessionStore, cookieName string) bool {
	token := tokenFrom(c, cookieName)
	if token == "" {
		return false
	}

	claims, err := jwtMgr.ParseToken(token)
	if err != nil {
		return false
	}

	ctx := c.Request.Context()
	if revoked, err := store.IsRevoked(ctx, claims.ID); err != nil || revoked {
		return false
	}

	// role comes from the stored session, not from the token
	id, err := store.Identity(ctx, claims.SessionID)
	if err != nil {
		return false
	}

	c.Set(CtxSessionID, claims.SessionID)
	c.Set(CtxUsername, id.Username)
	c.Set(CtxRole, id.Role.String())
	c.Set(CtxTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(CtxTokenExp, claims.ExpiresAt.Time)
	}
	return true
}

func tokenFrom(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			return v
		}
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RoleAuth requires the session role to be one of allowedRoles
func RoleAuth(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			response.Unauthorized(c, 10002, "Please log in to continue.")
			c.Abort()
			return
		}

		userRole, _ := role.(string)
		for _, r := range allowedRoles {
			if userRole == r.String() {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "You do not have permission to do that.")
		c.Abort()
	}
}
