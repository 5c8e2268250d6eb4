package dto

import "github.com/aakash-73/Se2-Project-v1/internal/model"

// ── catalog DTOs ──

// CatalogQuery explicitly submitted search
type CatalogQuery struct {
	Q string `form:"q"`
}

// CourseGroup records sharing a course name
type CourseGroup struct {
	CourseName string                 `json:"course_name"`
	Syllabi    []model.SyllabusRecord `json:"syllabi"`
}

// CatalogResponse filtered, grouped catalog
type CatalogResponse struct {
	Version  uint64        `json:"version"`
	Query    string        `json:"query"`
	Total    int           `json:"total"`
	Editable bool          `json:"editable"`
	Groups   []CourseGroup `json:"groups"`
}

// CoursesResponse distinct course names
type CoursesResponse struct {
	Courses []string `json:"courses"`
}

// CourseSyllabiResponse records of one course
type CourseSyllabiResponse struct {
	CourseName string                 `json:"course_name"`
	Syllabi    []model.SyllabusRecord `json:"syllabi"`
}
