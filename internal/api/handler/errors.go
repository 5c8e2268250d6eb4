package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/api/middleware"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

// Error codes beyond the shared 1xxxx range
const (
	codeNoModal        = 20001
	codePreviewClosed  = 20002
	codeNoChatSelected = 20003
	codeNoChat         = 20004
	codeExportEmpty    = 20005
	codeCancelled      = 20006
	codeService        = 30001
	codeNetwork        = 30002
	codeContent        = 40001
)

const (
	msgLoginRequired   = "Please log in to continue."
	msgNoPermission    = "You do not have permission to do that."
	msgFacultyViewOnly = "Switch back to the faculty view to do that."
	msgServiceError    = "The syllabus service returned an error."
	msgServiceDown     = "The syllabus service is unreachable. Please try again later."
	msgCancelled       = "The request was cancelled."
)

// respondError maps a service-layer error onto the response envelope.
// The error is also recorded on the context for the request logger.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case middleware.IsBodyTooLarge(err):
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large.")
		return
	case errors.Is(err, session.ErrNoIdentity):
		response.Unauthorized(c, 10002, msgLoginRequired)
		return
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, msgNoPermission)
		return
	case errors.Is(err, service.ErrFacultyViewOnly):
		response.Forbidden(c, 10003, msgFacultyViewOnly)
		return
	case errors.Is(err, service.ErrNoModal):
		response.Conflict(c, codeNoModal, "No matching syllabus is open.")
		return
	case errors.Is(err, service.ErrPreviewClosed):
		response.Conflict(c, codePreviewClosed, "Open the preview before confirming the upload.")
		return
	case errors.Is(err, service.ErrNoChatSelection):
		response.Conflict(c, codeNoChatSelected, "Select a syllabus to chat with first.")
		return
	case errors.Is(err, service.ErrNoChat):
		response.Conflict(c, codeNoChat, "No chat is open.")
		return
	case errors.Is(err, service.ErrExportEmpty):
		response.NotFound(c, codeExportEmpty, "No syllabi match the search.")
		return
	case errors.Is(err, context.Canceled):
		response.Conflict(c, codeCancelled, msgCancelled)
		return
	}

	e, ok := errs.As(err)
	if !ok {
		response.InternalError(c)
		return
	}
	switch e.Kind {
	case errs.KindValidation:
		if e.Field != "" {
			response.ErrorWithDetails(c, http.StatusBadRequest, 10001, e.Message, e.Field)
			return
		}
		response.BadRequest(c, 10001, e.Message)
	case errs.KindService:
		status := e.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		response.Error(c, status, codeService, errs.UserMessage(e, msgServiceError))
	case errs.KindNetwork:
		response.Error(c, http.StatusServiceUnavailable, codeNetwork, msgServiceDown)
	case errs.KindContent:
		response.Error(c, http.StatusUnprocessableEntity, codeContent, e.Message)
	default:
		response.InternalError(c)
	}
}

// bindError 400 for a request body or query that failed to bind
func bindError(c *gin.Context, err error, message string) {
	if middleware.IsBodyTooLarge(err) {
		respondError(c, err)
		return
	}
	_ = c.Error(err)
	response.BadRequest(c, 10001, message)
}
