package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

// ModalHandler view, edit and delete modal
type ModalHandler struct {
	modalSvc service.ModalService
	maxFile  int64
}

// NewModalHandler creates a ModalHandler
func NewModalHandler(modalSvc service.ModalService, maxFile int64) *ModalHandler {
	return &ModalHandler{modalSvc: modalSvc, maxFile: maxFile}
}

// Open replaces any open modal
// POST /api/v1/modals
func (h *ModalHandler) Open(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.OpenModalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Action must be one of: view, edit, delete, and record_id is required.")
		return
	}

	res, err := h.modalSvc.Open(c.Request.Context(), caller, model.ModalAction(req.Action), req.RecordID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, res)
}

// Current
// GET /api/v1/modals
func (h *ModalHandler) Current(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	res, err := h.modalSvc.Current(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, res)
}

// PDF streams the selected record's PDF
// GET /api/v1/modals/pdf
func (h *ModalHandler) PDF(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	f, err := h.modalSvc.PDF(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	servePDF(c, f)
}

// Edit multipart metadata subset plus an optional replacement PDF
// PUT /api/v1/modals/edit
func (h *ModalHandler) Edit(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			response.BadRequest(c, 10001, "Edits must be sent as multipart/form-data.")
			return
		}
		bindError(c, err, "Invalid edit form.")
		return
	}

	in := &service.EditInput{Fields: make(map[string]string, len(form.Value))}
	for k, v := range form.Value {
		if len(v) > 0 {
			in.Fields[k] = v[0]
		}
	}
	name, data, present, err := readPDFPart(c, h.maxFile)
	if err != nil {
		respondError(c, err)
		return
	}
	if present {
		in.FileName, in.FileData = name, data
	}

	msg, cat, err := h.modalSvc.Edit(c.Request.Context(), caller, in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OKWithMessage(c, msg, dto.MutationResponse{Catalog: cat})
}

// Delete needs confirm: true
// POST /api/v1/modals/delete
func (h *ModalHandler) Delete(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.DeleteModalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid delete request.")
		return
	}

	msg, cat, err := h.modalSvc.Delete(c.Request.Context(), caller, req.Confirm)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OKWithMessage(c, msg, dto.MutationResponse{Catalog: cat})
}

// Close
// DELETE /api/v1/modals
func (h *ModalHandler) Close(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	if err := h.modalSvc.Close(c.Request.Context(), caller); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, nil)
}
