package dto

// ── chat DTOs ──

// ChatSelectRequest choose the PDF to chat with
type ChatSelectRequest struct {
	PDFID      string `json:"pdf_id"      binding:"required"`
	CourseName string `json:"course_name"`
}

// ChatSelectResponse selection with the extracted text size
type ChatSelectResponse struct {
	PDFID         string `json:"pdf_id"`
	CourseName    string `json:"course_name,omitempty"`
	ContentLength int    `json:"content_length"`
	PDFSize       int    `json:"pdf_size"`
	Ready         bool   `json:"ready"`
}

// ChatMessageRequest one user message; blank messages are ignored
type ChatMessageRequest struct {
	Message string `json:"message"`
}
