package dto

import "github.com/aakash-73/Se2-Project-v1/internal/model"

// ── modal DTOs ──

// OpenModalRequest select a record for view, edit or delete
type OpenModalRequest struct {
	Action   string `json:"action"    binding:"required,oneof=view edit delete"`
	RecordID string `json:"record_id" binding:"required"`
}

// ModalResponse open modal with the record detail
type ModalResponse struct {
	Selection *model.Selection      `json:"selection"`
	Record    *model.SyllabusRecord `json:"record,omitempty"`
}

// DeleteModalRequest delete needs an explicit confirmation
type DeleteModalRequest struct {
	Confirm bool `json:"confirm"`
}
