package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CatalogHandler catalog list, search, course lookups and export
type CatalogHandler struct {
	catalogSvc service.CatalogService
	exportSvc  service.ExportService
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService, exportSvc service.ExportService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc, exportSvc: exportSvc}
}

// List cached catalog filtered by the submitted query
// GET /api/v1/syllabi?q=
func (h *CatalogHandler) List(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var q dto.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err, "Invalid search query.")
		return
	}

	cat, err := h.catalogSvc.List(c.Request.Context(), caller, q.Q)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, cat)
}

// Refresh forces a refetch
// POST /api/v1/syllabi/refresh?q=
func (h *CatalogHandler) Refresh(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	cat, err := h.catalogSvc.Refresh(c.Request.Context(), caller, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, cat)
}

// Courses distinct course names
// GET /api/v1/syllabi/courses
func (h *CatalogHandler) Courses(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	out, err := h.catalogSvc.Courses(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, out)
}

// CourseSyllabi
// GET /api/v1/syllabi/courses/:name
func (h *CatalogHandler) CourseSyllabi(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	out, err := h.catalogSvc.CourseSyllabi(c.Request.Context(), caller, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, out)
}

// Export filtered catalog as an xlsx workbook
// GET /api/v1/syllabi/export?q=
func (h *CatalogHandler) Export(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCatalog(c.Request.Context(), caller, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
