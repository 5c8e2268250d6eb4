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
	msgUploadFailed = "Failed to upload syllabus"
	previewFileURL  = "/api/v1/uploads/draft/file"
)

// uploadDraft staged metadata; the file bytes live under their own key
type uploadDraft struct {
	Metadata    model.SyllabusMetadata `json:"metadata"`
	File        *dto.StagedFileInfo    `json:"file,omitempty"`
	PreviewOpen bool                   `json:"preview_open"`
}

func (d *uploadDraft) response() *dto.DraftResponse {
	return &dto.DraftResponse{
		CourseID:            d.Metadata.CourseID,
		CourseName:          d.Metadata.CourseName,
		DepartmentID:        d.Metadata.DepartmentID,
		DepartmentName:      d.Metadata.DepartmentName,
		SyllabusDescription: d.Metadata.SyllabusDescription,
		File:                d.File,
		PreviewOpen:         d.PreviewOpen,
	}
}

// UploadService two-phase upload: stage, preview, confirm
type UploadService interface {
	Draft(ctx context.Context, caller *Caller) (*dto.DraftResponse, error)
	SaveMetadata(ctx context.Context, caller *Caller, req *dto.DraftMetadataRequest) (*dto.DraftResponse, error)
	StageFile(ctx context.Context, caller *Caller, name string, data []byte) (*dto.DraftResponse, error)
	StagedFile(ctx context.Context, caller *Caller) (*model.PDFFile, error)
	OpenPreview(ctx context.Context, caller *Caller) (*dto.PreviewResponse, error)
	ClosePreview(ctx context.Context, caller *Caller) (*dto.DraftResponse, error)
	Confirm(ctx context.Context, caller *Caller) (string, *dto.CatalogResponse, error)
	Discard(ctx context.Context, caller *Caller) error
}

type uploadService struct {
	cfg     config.UploadConfig
	api     backend.SyllabusAPI
	store   *session.Store
	catalog CatalogService
	ops     *Inflight
	logger  *zap.Logger
}

// NewUploadService creates an UploadService
func NewUploadService(
	cfg config.UploadConfig,
	api backend.SyllabusAPI,
	store *session.Store,
	cat CatalogService,
	ops *Inflight,
	logger *zap.Logger,
) UploadService {
	return &uploadService{cfg: cfg, api: api, store: store, catalog: cat, ops: ops, logger: logger}
}

func (s *uploadService) load(ctx context.Context, sid string) (*uploadDraft, error) {
	var d uploadDraft
	if _, err := s.store.Get(ctx, sid, session.FieldUploadDraft, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *uploadService) save(ctx context.Context, sid string, d *uploadDraft) error {
	return s.store.Put(ctx, sid, session.FieldUploadDraft, d, s.cfg.DraftTTL)
}

func (s *uploadService) Draft(ctx context.Context, caller *Caller) (*dto.DraftResponse, error) {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return nil, err
	}
	d, err := s.load(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	return d.response(), nil
}

func (s *uploadService) SaveMetadata(ctx context.Context, caller *Caller, req *dto.DraftMetadataRequest) (*dto.DraftResponse, error) {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return nil, err
	}
	unlock := s.store.Lock(caller.SessionID)
	defer unlock()

	d, err := s.load(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	d.Metadata = model.SyllabusMetadata{
		CourseID:            req.CourseID,
		CourseName:          req.CourseName,
		DepartmentID:        req.DepartmentID,
		DepartmentName:      req.DepartmentName,
		SyllabusDescription: req.SyllabusDescription,
	}
	d.PreviewOpen = false
	if err := s.save(ctx, caller.SessionID, d); err != nil {
		return nil, err
	}
	return d.response(), nil
}

// StageFile replaces the staged file; a rejected file also clears the previous one
func (s *uploadService) StageFile(ctx context.Context, caller *Caller, name string, data []byte) (*dto.DraftResponse, error) {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return nil, err
	}
	unlock := s.store.Lock(caller.SessionID)
	defer unlock()

	d, err := s.load(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	d.PreviewOpen = false

	file, verr := checkPDF(name, data, s.cfg.MaxFileBytes())
	if verr != nil {
		d.File = nil
		if err := s.store.Drop(ctx, caller.SessionID, session.FieldUploadFile); err != nil {
			return nil, err
		}
		if err := s.save(ctx, caller.SessionID, d); err != nil {
			return nil, err
		}
		return nil, verr
	}

	if err := s.store.Put(ctx, caller.SessionID, session.FieldUploadFile, file, s.cfg.DraftTTL); err != nil {
		return nil, err
	}
	d.File = &dto.StagedFileInfo{Name: file.Name, Size: file.Size()}
	if err := s.save(ctx, caller.SessionID, d); err != nil {
		return nil, err
	}
	return d.response(), nil
}

func (s *uploadService) stagedFile(ctx context.Context, sid string) (*model.PDFFile, error) {
	var f model.PDFFile
	ok, err := s.store.Get(ctx, sid, session.FieldUploadFile, &f)
	if err != nil {
		return nil, err
	}
	if !ok || len(f.Data) == 0 {
		return nil, errs.Validation("syllabus_pdf", MsgSelectPDF)
	}
	return &f, nil
}

func (s *uploadService) StagedFile(ctx context.Context, caller *Caller) (*model.PDFFile, error) {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return nil, err
	}
	return s.stagedFile(ctx, caller.SessionID)
}

// OpenPreview no backend call; the summary is built from the draft
func (s *uploadService) OpenPreview(ctx context.Context, caller *Caller) (*dto.PreviewResponse, error) {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return nil, err
	}
	unlock := s.store.Lock(caller.SessionID)
	defer unlock()

	d, err := s.load(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.stagedFile(ctx, caller.SessionID); err != nil {
		return nil, err
	}
	meta := dto.DraftMetadataRequest(d.Metadata)
	if err := validateStruct(&meta); err != nil {
		return nil, err
	}

	d.PreviewOpen = true
	if err := s.save(ctx, caller.SessionID, d); err != nil {
		return nil, err
	}
	return &dto.PreviewResponse{Draft: *d.response(), PreviewURL: previewFileURL}, nil
}

func (s *uploadService) ClosePreview(ctx context.Context, caller *Caller) (*dto.DraftResponse, error) {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return nil, err
	}
	unlock := s.store.Lock(caller.SessionID)
	defer unlock()

	d, err := s.load(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	d.PreviewOpen = false
	if err := s.save(ctx, caller.SessionID, d); err != nil {
		return nil, err
	}
	return d.response(), nil
}

// Confirm submits the draft; on failure the draft stays for a retry
func (s *uploadService) Confirm(ctx context.Context, caller *Caller) (string, *dto.CatalogResponse, error) {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return "", nil, err
	}

	d, err := s.load(ctx, caller.SessionID)
	if err != nil {
		return "", nil, err
	}
	if !d.PreviewOpen {
		return "", nil, ErrPreviewClosed
	}
	file, err := s.stagedFile(ctx, caller.SessionID)
	if err != nil {
		return "", nil, err
	}
	creds, err := s.store.Credentials(ctx, caller.SessionID)
	if err != nil {
		return "", nil, err
	}

	opCtx, done := s.ops.Begin(ctx, caller.SessionID, OpUpload)
	msg, err := s.api.Add(opCtx, creds, d.Metadata, file)
	done()
	if err != nil {
		s.logger.Warn("syllabus upload failed", zap.String("course_id", d.Metadata.CourseID), zap.Error(err))
		return "", nil, errs.WithFallback(err, msgUploadFailed)
	}

	if err := s.store.Drop(ctx, caller.SessionID, session.FieldUploadDraft, session.FieldUploadFile); err != nil {
		return "", nil, err
	}
	s.catalog.Mutated(caller, "")

	cat, err := s.catalog.Refresh(ctx, caller, "")
	if err != nil {
		s.logger.Warn("catalog refresh after upload failed", zap.Error(err))
		return msg, nil, nil
	}
	return msg, cat, nil
}

func (s *uploadService) Discard(ctx context.Context, caller *Caller) error {
	if err := requireAuthor(ctx, s.store, caller); err != nil {
		return err
	}
	return s.store.Drop(ctx, caller.SessionID, session.FieldUploadDraft, session.FieldUploadFile)
}
