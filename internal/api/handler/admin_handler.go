package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

// AdminHandler user list and registration requests
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// ListUsers
// GET /api/v1/admin/users?type=professor|student
func (h *AdminHandler) ListUsers(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var q dto.UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err, "Type must be one of: professor, student.")
		return
	}

	users, err := h.adminSvc.Users(c.Request.Context(), caller, q.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, users)
}

// UpdateProfessor
// PUT /api/v1/admin/professors/:id
func (h *AdminHandler) UpdateProfessor(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.UpdateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "First name, last name and a valid email are required.")
		return
	}

	msg, err := h.adminSvc.UpdateProfessor(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OKWithMessage(c, msg, nil)
}

// DeleteProfessor
// DELETE /api/v1/admin/professors/:id?confirm=true
func (h *AdminHandler) DeleteProfessor(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	confirm, _ := strconv.ParseBool(c.Query("confirm"))

	msg, err := h.adminSvc.DeleteProfessor(c.Request.Context(), caller, c.Param("id"), confirm)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OKWithMessage(c, msg, nil)
}

// RegistrationRequests
// GET /api/v1/admin/registration-requests
func (h *AdminHandler) RegistrationRequests(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	reqs, err := h.adminSvc.RegistrationRequests(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, reqs)
}

// Approve
// POST /api/v1/admin/registration-requests/:id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject
// POST /api/v1/admin/registration-requests/:id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *AdminHandler) decide(c *gin.Context, approve bool) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	msg, err := h.adminSvc.DecideRegistration(c.Request.Context(), caller, c.Param("id"), approve)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OKWithMessage(c, msg, nil)
}
