package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	"github.com/aakash-73/Se2-Project-v1/internal/catalog"
	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

const msgCatalogFailed = "Failed to load syllabi"

// CatalogService cached, searchable syllabus catalog
type CatalogService interface {
	List(ctx context.Context, caller *Caller, query string) (*dto.CatalogResponse, error)
	Refresh(ctx context.Context, caller *Caller, query string) (*dto.CatalogResponse, error)
	Courses(ctx context.Context, caller *Caller) (*dto.CoursesResponse, error)
	CourseSyllabi(ctx context.Context, caller *Caller, courseName string) (*dto.CourseSyllabiResponse, error)
	// Records full result set, served from cache unless stale or force is set
	Records(ctx context.Context, caller *Caller, force bool) ([]model.SyllabusRecord, uint64, error)
	// Mutated records a mutation and drops recordID from the displayed list
	Mutated(caller *Caller, recordID string) uint64
}

type catalogService struct {
	api      backend.SyllabusAPI
	store    *session.Store
	catalogs *catalog.Registry
	logger   *zap.Logger
}

// NewCatalogService creates a CatalogService
func NewCatalogService(api backend.SyllabusAPI, store *session.Store, catalogs *catalog.Registry, logger *zap.Logger) CatalogService {
	return &catalogService{api: api, store: store, catalogs: catalogs, logger: logger}
}

func (s *catalogService) List(ctx context.Context, caller *Caller, query string) (*dto.CatalogResponse, error) {
	return s.list(ctx, caller, query, false)
}

func (s *catalogService) Refresh(ctx context.Context, caller *Caller, query string) (*dto.CatalogResponse, error) {
	return s.list(ctx, caller, query, true)
}

func (s *catalogService) list(ctx context.Context, caller *Caller, query string, force bool) (*dto.CatalogResponse, error) {
	records, version, err := s.Records(ctx, caller, force)
	if err != nil {
		return nil, err
	}
	editable, err := facultyView(ctx, s.store, caller)
	if err != nil {
		return nil, err
	}
	return buildCatalog(records, version, query, editable), nil
}

func buildCatalog(records []model.SyllabusRecord, version uint64, query string, editable bool) *dto.CatalogResponse {
	matched := catalog.Search(records, query)
	groups := catalog.GroupByCourse(matched)

	out := &dto.CatalogResponse{
		Version:  version,
		Query:    query,
		Total:    len(matched),
		Editable: editable,
		Groups:   make([]dto.CourseGroup, 0, len(groups)),
	}
	for _, g := range groups {
		out.Groups = append(out.Groups, dto.CourseGroup{CourseName: g.CourseName, Syllabi: g.Syllabi})
	}
	return out
}

func (s *catalogService) Records(ctx context.Context, caller *Caller, force bool) ([]model.SyllabusRecord, uint64, error) {
	cache := s.catalogs.For(caller.SessionID)
	if !force {
		if records, version, fresh := cache.Snapshot(); fresh {
			return records, version, nil
		}
	}

	stamp := cache.BeginFetch()
	fetched, err := s.fetch(ctx, caller, "")
	if err != nil {
		return nil, 0, errs.WithFallback(err, msgCatalogFailed)
	}
	if !cache.Apply(stamp, fetched) {
		s.logger.Debug("discarded out-of-order catalog fetch",
			zap.String("session_id", caller.SessionID),
			zap.Uint64("stamp", stamp),
		)
	}

	records, version, _ := cache.Snapshot()
	return records, version, nil
}

// fetch professor roles read their own records; everyone else reads the full catalog
func (s *catalogService) fetch(ctx context.Context, caller *Caller, username string) ([]model.SyllabusRecord, error) {
	if caller.Identity.Role.IsGuest() {
		return s.api.ListAll(ctx, nil)
	}
	creds, err := s.store.Credentials(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	if caller.Identity.Role.CanAuthor() {
		return s.api.ListOwn(ctx, creds, username)
	}
	return s.api.ListAll(ctx, creds)
}

func (s *catalogService) Courses(ctx context.Context, caller *Caller) (*dto.CoursesResponse, error) {
	records, _, err := s.Records(ctx, caller, false)
	if err != nil {
		return nil, err
	}
	return &dto.CoursesResponse{Courses: catalog.DistinctCourses(records)}, nil
}

// CourseSyllabi always hits the backend; professors scope the fetch to their username
func (s *catalogService) CourseSyllabi(ctx context.Context, caller *Caller, courseName string) (*dto.CourseSyllabiResponse, error) {
	username := ""
	if caller.Identity.Role.CanAuthor() {
		username = caller.Identity.Username
	}
	records, err := s.fetch(ctx, caller, username)
	if err != nil {
		return nil, errs.WithFallback(err, msgCatalogFailed)
	}
	return &dto.CourseSyllabiResponse{
		CourseName: courseName,
		Syllabi:    catalog.FilterByCourse(records, courseName),
	}, nil
}

func (s *catalogService) Mutated(caller *Caller, recordID string) uint64 {
	cache := s.catalogs.For(caller.SessionID)
	v := cache.Invalidate()
	if recordID != "" {
		cache.Remove(recordID)
	}
	return v
}
