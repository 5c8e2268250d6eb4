package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

// ShellHandler dashboard mode, drawer and view-as-student
type ShellHandler struct {
	shellSvc service.ShellService
}

// NewShellHandler creates a ShellHandler
func NewShellHandler(shellSvc service.ShellService) *ShellHandler {
	return &ShellHandler{shellSvc: shellSvc}
}

// SetMode
// PUT /api/v1/shell/mode
func (h *ShellHandler) SetMode(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Mode must be one of: userList, registrationRequests.")
		return
	}

	view, err := h.shellSvc.SetMode(c.Request.Context(), caller, model.DashboardMode(req.Mode))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, view)
}

// Return back to the default dashboard
// POST /api/v1/shell/return
func (h *ShellHandler) Return(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	view, err := h.shellSvc.Return(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, view)
}

// SetDrawer
// POST /api/v1/shell/drawer
func (h *ShellHandler) SetDrawer(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.DrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Open is required.")
		return
	}

	view, err := h.shellSvc.SetDrawer(c.Request.Context(), caller, *req.Open)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, view)
}

// ToggleViewAsStudent
// POST /api/v1/shell/view-as-student
func (h *ShellHandler) ToggleViewAsStudent(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	view, err := h.shellSvc.ToggleViewAsStudent(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, view)
}
