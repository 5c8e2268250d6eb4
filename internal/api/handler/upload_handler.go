package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

const pdfField = "syllabus_pdf"

// UploadHandler two-phase syllabus upload
type UploadHandler struct {
	uploadSvc service.UploadService
	maxFile   int64
}

// NewUploadHandler creates an UploadHandler; maxFile is the staged file limit in bytes
func NewUploadHandler(uploadSvc service.UploadService, maxFile int64) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc, maxFile: maxFile}
}

// GetDraft
// GET /api/v1/uploads/draft
func (h *UploadHandler) GetDraft(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	d, err := h.uploadSvc.Draft(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, d)
}

// SaveDraft metadata fields
// PUT /api/v1/uploads/draft
func (h *UploadHandler) SaveDraft(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.DraftMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid syllabus details.")
		return
	}

	d, err := h.uploadSvc.SaveMetadata(c.Request.Context(), caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, d)
}

// StageFile multipart field syllabus_pdf
// POST /api/v1/uploads/draft/file
func (h *UploadHandler) StageFile(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	name, data, present, err := readPDFPart(c, h.maxFile)
	if err != nil {
		respondError(c, err)
		return
	}
	if !present {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, service.MsgSelectPDF, pdfField)
		return
	}

	d, err := h.uploadSvc.StageFile(c.Request.Context(), caller, name, data)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, d)
}

// GetStagedFile streams the staged bytes for the preview pane
// GET /api/v1/uploads/draft/file
func (h *UploadHandler) GetStagedFile(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	f, err := h.uploadSvc.StagedFile(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	servePDF(c, f)
}

// OpenPreview
// POST /api/v1/uploads/draft/preview
func (h *UploadHandler) OpenPreview(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	p, err := h.uploadSvc.OpenPreview(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, p)
}

// ClosePreview
// DELETE /api/v1/uploads/draft/preview
func (h *UploadHandler) ClosePreview(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	d, err := h.uploadSvc.ClosePreview(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, d)
}

// Confirm submits the draft to the syllabus service
// POST /api/v1/uploads/draft/confirm
func (h *UploadHandler) Confirm(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	msg, cat, err := h.uploadSvc.Confirm(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, msg, dto.MutationResponse{Catalog: cat})
}

// Discard
// DELETE /api/v1/uploads/draft
func (h *UploadHandler) Discard(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	if err := h.uploadSvc.Discard(c.Request.Context(), caller); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── multipart helpers ──

// readPDFPart reads syllabus_pdf up to one byte past max so the service can reject oversize files
func readPDFPart(c *gin.Context, max int64) (name string, data []byte, present bool, err error) {
	fh, err := c.FormFile(pdfField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil, false, nil
		}
		return "", nil, false, err
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, false, err
	}
	defer f.Close()

	var r io.Reader = f
	if max > 0 {
		r = io.LimitReader(f, max+1)
	}
	data, err = io.ReadAll(r)
	if err != nil {
		return "", nil, false, err
	}
	return fh.Filename, data, true, nil
}

func servePDF(c *gin.Context, f *model.PDFFile) {
	name := f.Name
	if name == "" {
		name = "syllabus.pdf"
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename*=UTF-8''%s", url.PathEscape(name)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, f.Data)
}
