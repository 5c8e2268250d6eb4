package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/api/middleware"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

// MustGetCaller builds the caller from what SessionAuth put on the context.
// When the session is missing it writes a 401; callers return when ok is false.
func MustGetCaller(c *gin.Context) (*service.Caller, bool) {
	caller := callerFrom(c)
	if caller == nil {
		response.Unauthorized(c, 10002, "Please log in to continue.")
		return nil, false
	}
	return caller, true
}

// callerFrom nil when no session was resolved
func callerFrom(c *gin.Context) *service.Caller {
	sid := c.GetString(middleware.CtxSessionID)
	if sid == "" {
		return nil
	}
	return &service.Caller{
		SessionID: sid,
		Identity: model.Identity{
			Username: c.GetString(middleware.CtxUsername),
			Role:     model.Role(c.GetString(middleware.CtxRole)),
		},
	}
}

// tokenInfo jti and expiry of the presented session token
func tokenInfo(c *gin.Context) (string, time.Time) {
	return c.GetString(middleware.CtxTokenID), c.GetTime(middleware.CtxTokenExp)
}
