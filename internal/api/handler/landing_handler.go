package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

// LandingHandler public landing page
type LandingHandler struct {
	landingSvc service.LandingService
}

// NewLandingHandler creates a LandingHandler
func NewLandingHandler(landingSvc service.LandingService) *LandingHandler {
	return &LandingHandler{landingSvc: landingSvc}
}

// LogEmail
// POST /api/v1/landing/email
func (h *LandingHandler) LogEmail(c *gin.Context) {
	var req dto.LogEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Please enter a valid email address.")
		return
	}

	if err := h.landingSvc.LogEmail(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	response.OKWithMessage(c, "Email logged successfully.", nil)
}
