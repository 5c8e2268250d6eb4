package dto

// ── upload DTOs ──

// DraftMetadataRequest upload form text fields
type DraftMetadataRequest struct {
	CourseID            string `json:"course_id"            validate:"required"`
	CourseName          string `json:"course_name"          validate:"required"`
	DepartmentID        string `json:"department_id"        validate:"required"`
	DepartmentName      string `json:"department_name"      validate:"required"`
	SyllabusDescription string `json:"syllabus_description" validate:"required"`
}

// StagedFileInfo staged PDF without its bytes
type StagedFileInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// DraftResponse current upload draft
type DraftResponse struct {
	CourseID            string          `json:"course_id"`
	CourseName          string          `json:"course_name"`
	DepartmentID        string          `json:"department_id"`
	DepartmentName      string          `json:"department_name"`
	SyllabusDescription string          `json:"syllabus_description"`
	File                *StagedFileInfo `json:"file,omitempty"`
	PreviewOpen         bool            `json:"preview_open"`
}

// PreviewResponse read-only summary shown before confirming
type PreviewResponse struct {
	Draft      DraftResponse `json:"draft"`
	PreviewURL string        `json:"preview_url"`
}

// MutationResponse result of a catalog mutation with the refreshed catalog
type MutationResponse struct {
	Catalog *CatalogResponse `json:"catalog,omitempty"`
}
