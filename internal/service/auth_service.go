package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	"github.com/aakash-73/Se2-Project-v1/internal/catalog"
	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
	"github.com/aakash-73/Se2-Project-v1/pkg/jwt"
)

const (
	msgLoginFailed    = "Failed to login"
	msgRegisterFailed = "Failed to register"
)

// SignedIn result of a login or guest bypass
type SignedIn struct {
	SessionID string
	Token     string
	ExpiresAt time.Time
	Message   string
	Response  dto.LoginResponse
}

// RegisterOutcome backend message plus where the client goes next
type RegisterOutcome struct {
	Message  string
	Response dto.RegisterResponse
}

// AuthService login, guest bypass, registration and sign-out
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*SignedIn, error)
	Guest(ctx context.Context) (*SignedIn, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*RegisterOutcome, error)
	Logout(ctx context.Context, caller *Caller, tokenID string, expiresAt time.Time) error
}

type authService struct {
	api      backend.AuthAPI
	store    *session.Store
	shell    ShellService
	catalogs *catalog.Registry
	ops      *Inflight
	jwtMgr   *jwt.Manager
	logger   *zap.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(
	api backend.AuthAPI,
	store *session.Store,
	shell ShellService,
	catalogs *catalog.Registry,
	ops *Inflight,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		api:      api,
		store:    store,
		shell:    shell,
		catalogs: catalogs,
		ops:      ops,
		jwtMgr:   jwtMgr,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*SignedIn, error) {
	res, err := s.api.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, errs.WithFallback(err, msgLoginFailed)
	}

	id := model.Identity{Username: res.Username, Role: model.ParseRole(res.UserType)}
	out, err := s.signIn(ctx, id, res.Cookies)
	if err != nil {
		return nil, err
	}
	out.Message = res.Message
	s.logger.Info("user signed in", zap.String("username", id.Username), zap.String("role", id.Role.String()))
	return out, nil
}

func (s *authService) Guest(ctx context.Context) (*SignedIn, error) {
	return s.signIn(ctx, model.GuestIdentity(), nil)
}

func (s *authService) signIn(ctx context.Context, id model.Identity, creds backend.Credentials) (*SignedIn, error) {
	sid := uuid.NewString()
	if err := s.store.SignIn(ctx, sid, id, creds); err != nil {
		s.logger.Error("persist session failed", zap.Error(err))
		return nil, err
	}

	token, expiresAt, err := s.jwtMgr.GenerateSessionToken(sid, id.Username, id.Role.String())
	if err != nil {
		s.logger.Error("issue session token failed", zap.Error(err))
		return nil, err
	}

	caller := &Caller{SessionID: sid, Identity: id}
	shell, err := s.shell.Render(ctx, caller)
	if err != nil {
		return nil, err
	}

	return &SignedIn{
		SessionID: sid,
		Token:     token,
		ExpiresAt: expiresAt,
		Response:  dto.LoginResponse{Identity: id, Shell: shell},
	}, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*RegisterOutcome, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, errs.Validation("confirm_password", MsgPasswordMismatch)
	}

	res, err := s.api.Register(ctx, &backend.RegisterPayload{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		UserType:        req.UserType,
	})
	if err != nil {
		return nil, errs.WithFallback(err, msgRegisterFailed)
	}

	out := &RegisterOutcome{Message: res.Message}
	if res.Status == http.StatusAccepted {
		out.Response = dto.RegisterResponse{NextView: "register", Pending: true}
	} else {
		out.Response = dto.RegisterResponse{NextView: "login"}
	}
	return out, nil
}

func (s *authService) Logout(ctx context.Context, caller *Caller, tokenID string, expiresAt time.Time) error {
	if n := s.ops.Cancel(caller.SessionID); n > 0 {
		s.logger.Debug("cancelled in-flight operations on sign-out", zap.Int("count", n))
	}
	s.catalogs.Drop(caller.SessionID)

	if err := s.store.SignOut(ctx, caller.SessionID, tokenID, expiresAt); err != nil {
		s.logger.Error("sign-out failed", zap.String("session_id", caller.SessionID), zap.Error(err))
		return err
	}
	return nil
}
