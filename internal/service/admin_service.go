package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

const (
	msgLoadUsersFailed    = "Failed to load users"
	msgUpdateUserFailed   = "Failed to update professor"
	msgDeleteUserFailed   = "Failed to delete professor"
	msgLoadRequestsFailed = "Failed to load registration requests"
	msgDecisionFailed     = "Failed to process registration request"
	msgConfirmUserDelete  = "Please confirm the deletion."
)

// AdminService user list and registration request dashboards
type AdminService interface {
	Users(ctx context.Context, caller *Caller, userType string) ([]model.UserSummary, error)
	UpdateProfessor(ctx context.Context, caller *Caller, id string, req *dto.UpdateProfessorRequest) (string, error)
	DeleteProfessor(ctx context.Context, caller *Caller, id string, confirm bool) (string, error)
	RegistrationRequests(ctx context.Context, caller *Caller) ([]model.RegistrationRequest, error)
	DecideRegistration(ctx context.Context, caller *Caller, id string, approve bool) (string, error)
}

type adminService struct {
	api    backend.AdminAPI
	store  *session.Store
	logger *zap.Logger
}

// NewAdminService creates an AdminService
func NewAdminService(api backend.AdminAPI, store *session.Store, logger *zap.Logger) AdminService {
	return &adminService{api: api, store: store, logger: logger}
}

func (s *adminService) creds(ctx context.Context, caller *Caller) (backend.Credentials, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.store.Credentials(ctx, caller.SessionID)
}

// Users professors unless userType is "student"
func (s *adminService) Users(ctx context.Context, caller *Caller, userType string) ([]model.UserSummary, error) {
	creds, err := s.creds(ctx, caller)
	if err != nil {
		return nil, err
	}
	var users []model.UserSummary
	if userType == string(model.RoleStudent) {
		users, err = s.api.ListStudents(ctx, creds)
	} else {
		users, err = s.api.ListProfessors(ctx, creds)
	}
	if err != nil {
		return nil, errs.WithFallback(err, msgLoadUsersFailed)
	}
	if users == nil {
		users = []model.UserSummary{}
	}
	return users, nil
}

func (s *adminService) UpdateProfessor(ctx context.Context, caller *Caller, id string, req *dto.UpdateProfessorRequest) (string, error) {
	creds, err := s.creds(ctx, caller)
	if err != nil {
		return "", err
	}
	msg, err := s.api.UpdateProfessor(ctx, creds, id, &backend.ProfessorPayload{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return "", errs.WithFallback(err, msgUpdateUserFailed)
	}
	return msg, nil
}

func (s *adminService) DeleteProfessor(ctx context.Context, caller *Caller, id string, confirm bool) (string, error) {
	creds, err := s.creds(ctx, caller)
	if err != nil {
		return "", err
	}
	if !confirm {
		return "", errs.Validation("confirm", msgConfirmUserDelete)
	}
	msg, err := s.api.DeleteProfessor(ctx, creds, id)
	if err != nil {
		return "", errs.WithFallback(err, msgDeleteUserFailed)
	}
	s.logger.Info("professor deleted", zap.String("by", caller.Identity.Username), zap.String("professor_id", id))
	return msg, nil
}

func (s *adminService) RegistrationRequests(ctx context.Context, caller *Caller) ([]model.RegistrationRequest, error) {
	creds, err := s.creds(ctx, caller)
	if err != nil {
		return nil, err
	}
	reqs, err := s.api.ListRegistrationRequests(ctx, creds)
	if err != nil {
		return nil, errs.WithFallback(err, msgLoadRequestsFailed)
	}
	if reqs == nil {
		reqs = []model.RegistrationRequest{}
	}
	return reqs, nil
}

func (s *adminService) DecideRegistration(ctx context.Context, caller *Caller, id string, approve bool) (string, error) {
	creds, err := s.creds(ctx, caller)
	if err != nil {
		return "", err
	}
	msg, err := s.api.DecideRegistration(ctx, creds, id, approve)
	if err != nil {
		return "", errs.WithFallback(err, msgDecisionFailed)
	}
	s.logger.Info("registration request decided",
		zap.String("by", caller.Identity.Username),
		zap.String("request_id", id),
		zap.Bool("approved", approve),
	)
	return msg, nil
}
