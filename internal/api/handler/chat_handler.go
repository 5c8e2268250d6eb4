package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

// ChatHandler chat-with-PDF
type ChatHandler struct {
	chatSvc service.ChatService
}

// NewChatHandler creates a ChatHandler
func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// Courses
// GET /api/v1/chat/courses
func (h *ChatHandler) Courses(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	out, err := h.chatSvc.Courses(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, out)
}

// CourseSyllabi
// GET /api/v1/chat/courses/:name/syllabi
func (h *ChatHandler) CourseSyllabi(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	out, err := h.chatSvc.CourseSyllabi(c.Request.Context(), caller, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, out)
}

// Select
// POST /api/v1/chat/select
func (h *ChatHandler) Select(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.ChatSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Please select a syllabus.")
		return
	}

	out, err := h.chatSvc.Select(c.Request.Context(), caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, out)
}

// Open
// POST /api/v1/chat/open
func (h *ChatHandler) Open(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	ex, err := h.chatSvc.Open(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, ex)
}

// Send backend failures come back as the exchange's inline error
// POST /api/v1/chat/messages
func (h *ChatHandler) Send(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid message.")
		return
	}

	ex, err := h.chatSvc.Send(c.Request.Context(), caller, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, ex)
}

// Get
// GET /api/v1/chat
func (h *ChatHandler) Get(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	ex, err := h.chatSvc.Exchange(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, ex)
}

// Close
// DELETE /api/v1/chat
func (h *ChatHandler) Close(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	if err := h.chatSvc.Close(c.Request.Context(), caller); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, nil)
}
