package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

const (
	msgLoadSyllabusFailed = "Failed to load syllabus"
	msgLoadPDFFailed      = "Failed to load PDF"
	msgUpdateFailed       = "Failed to update syllabus"
	msgDeleteFailed       = "Failed to delete syllabus"
	msgConfirmDelete      = "Please confirm the deletion."
	msgNothingToUpdate    = "Nothing to update."
)

// editableFields metadata keys accepted by the edit modal
var editableFields = []string{
	"course_id",
	"course_name",
	"department_id",
	"department_name",
	"syllabus_description",
}

// EditInput subset of metadata plus an optional replacement PDF
type EditInput struct {
	Fields   map[string]string
	FileName string
	FileData []byte
}

// ModalService single-slot view/edit/delete modal
type ModalService interface {
	Open(ctx context.Context, caller *Caller, action model.ModalAction, recordID string) (*dto.ModalResponse, error)
	Current(ctx context.Context, caller *Caller) (*dto.ModalResponse, error)
	PDF(ctx context.Context, caller *Caller) (*model.PDFFile, error)
	Edit(ctx context.Context, caller *Caller, in *EditInput) (string, *dto.CatalogResponse, error)
	Delete(ctx context.Context, caller *Caller, confirm bool) (string, *dto.CatalogResponse, error)
	Close(ctx context.Context, caller *Caller) error
}

type modalService struct {
	cfg     config.UploadConfig
	api     backend.SyllabusAPI
	store   *session.Store
	catalog CatalogService
	logger  *zap.Logger
}

// NewModalService creates a ModalService
func NewModalService(
	cfg config.UploadConfig,
	api backend.SyllabusAPI,
	store *session.Store,
	cat CatalogService,
	logger *zap.Logger,
) ModalService {
	return &modalService{cfg: cfg, api: api, store: store, catalog: cat, logger: logger}
}

// Open the most recent request wins and replaces any open modal
func (s *modalService) Open(ctx context.Context, caller *Caller, action model.ModalAction, recordID string) (*dto.ModalResponse, error) {
	if !action.Valid() {
		return nil, errs.Validation("action", "Action must be one of: view, edit, delete.")
	}
	if recordID == "" {
		return nil, errs.Validation("record_id", "Record id is required.")
	}
	if action.Mutating() {
		if err := requireAuthor(ctx, s.store, caller); err != nil {
			return nil, err
		}
	}

	// the selection is stored only once the record loaded
	creds, err := s.store.Credentials(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	rec, err := s.api.Get(ctx, creds, recordID)
	if err != nil {
		return nil, errs.WithFallback(err, msgLoadSyllabusFailed)
	}

	sel := &model.Selection{Action: action, RecordID: recordID}
	unlock := s.store.Lock(caller.SessionID)
	vs, err := s.store.ViewState(ctx, caller.SessionID)
	if err == nil {
		vs.Modal = sel
		err = s.store.SaveViewState(ctx, caller.SessionID, vs)
	}
	unlock()
	if err != nil {
		return nil, err
	}

	return &dto.ModalResponse{Selection: sel, Record: rec}, nil
}

func (s *modalService) selection(ctx context.Context, caller *Caller, want ...model.ModalAction) (*model.Selection, error) {
	vs, err := s.store.ViewState(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	if vs.Modal == nil {
		return nil, ErrNoModal
	}
	if len(want) > 0 {
		for _, a := range want {
			if vs.Modal.Action == a {
				return vs.Modal, nil
			}
		}
		return nil, ErrNoModal
	}
	return vs.Modal, nil
}

func (s *modalService) Current(ctx context.Context, caller *Caller) (*dto.ModalResponse, error) {
	sel, err := s.selection(ctx, caller)
	if err != nil {
		return nil, err
	}
	creds, err := s.store.Credentials(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	rec, err := s.api.Get(ctx, creds, sel.RecordID)
	if err != nil {
		return nil, errs.WithFallback(err, msgLoadSyllabusFailed)
	}
	return &dto.ModalResponse{Selection: sel, Record: rec}, nil
}

func (s *modalService) PDF(ctx context.Context, caller *Caller) (*model.PDFFile, error) {
	sel, err := s.selection(ctx, caller)
	if err != nil {
		return nil, err
	}
	creds, err := s.store.Credentials(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	f, err := s.api.PDF(ctx, creds, sel.RecordID)
	if err != nil {
		return nil, errs.WithFallback(err, msgLoadPDFFailed)
	}
	return f, nil
}

func (s *modalService) Edit(ctx context.Context, caller *Caller, in *EditInput) (string, *dto.CatalogResponse, error) {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return "", nil, err
	}
	sel, err := s.selection(ctx, caller, model.ModalEdit)
	if err != nil {
		return "", nil, err
	}

	fields := make([][2]string, 0, len(editableFields))
	for _, k := range editableFields {
		if v, ok := in.Fields[k]; ok {
			fields = append(fields, [2]string{k, v})
		}
	}
	var file *model.PDFFile
	if in.FileData != nil || in.FileName != "" {
		if file, err = checkPDF(in.FileName, in.FileData, s.cfg.MaxFileBytes()); err != nil {
			return "", nil, err
		}
	}
	if len(fields) == 0 && file == nil {
		return "", nil, errs.Validation("", msgNothingToUpdate)
	}

	creds, err := s.store.Credentials(ctx, caller.SessionID)
	if err != nil {
		return "", nil, err
	}
	msg, err := s.api.Update(ctx, creds, sel.RecordID, fields, file)
	if err != nil {
		s.logger.Warn("syllabus update failed", zap.String("record_id", sel.RecordID), zap.Error(err))
		return "", nil, errs.WithFallback(err, msgUpdateFailed)
	}
	return s.complete(ctx, caller, sel.RecordID, msg)
}

func (s *modalService) Delete(ctx context.Context, caller *Caller, confirm bool) (string, *dto.CatalogResponse, error) {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return "", nil, err
	}
	sel, err := s.selection(ctx, caller, model.ModalDelete)
	if err != nil {
		return "", nil, err
	}
	if !confirm {
		return "", nil, errs.Validation("confirm", msgConfirmDelete)
	}

	creds, err := s.store.Credentials(ctx, caller.SessionID)
	if err != nil {
		return "", nil, err
	}
	msg, err := s.api.Delete(ctx, creds, sel.RecordID)
	if err != nil {
		s.logger.Warn("syllabus delete failed", zap.String("record_id", sel.RecordID), zap.Error(err))
		return "", nil, errs.WithFallback(err, msgDeleteFailed)
	}
	return s.complete(ctx, caller, sel.RecordID, msg)
}

// complete clears the selection, bumps the catalog version and returns the refreshed catalog
func (s *modalService) complete(ctx context.Context, caller *Caller, recordID, msg string) (string, *dto.CatalogResponse, error) {
	if err := s.clear(ctx, caller, recordID); err != nil {
		return "", nil, err
	}
	s.catalog.Mutated(caller, recordID)

	cat, err := s.catalog.Refresh(ctx, caller, "")
	if err != nil {
		s.logger.Warn("catalog refresh after modal action failed", zap.Error(err))
		return msg, nil, nil
	}
	return msg, cat, nil
}

// clear drops the selection if it still points at recordID; a newer selection is kept
func (s *modalService) clear(ctx context.Context, caller *Caller, recordID string) error {
	unlock := s.store.Lock(caller.SessionID)
	defer unlock()

	vs, err := s.store.ViewState(ctx, caller.SessionID)
	if err != nil {
		return err
	}
	if vs.Modal == nil || (recordID != "" && vs.Modal.RecordID != recordID) {
		return nil
	}
	vs.Modal = nil
	return s.store.SaveViewState(ctx, caller.SessionID, vs)
}

func (s *modalService) Close(ctx context.Context, caller *Caller) error {
	return s.clear(ctx, caller, "")
}
