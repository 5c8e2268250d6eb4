package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

// LandingService landing page email capture
type LandingService interface {
	LogEmail(ctx context.Context, email string) error
}

type landingService struct {
	api    backend.LandingAPI
	logger *zap.Logger
}

// NewLandingService creates a LandingService
func NewLandingService(api backend.LandingAPI, logger *zap.Logger) LandingService {
	return &landingService{api: api, logger: logger}
}

func (s *landingService) LogEmail(ctx context.Context, email string) error {
	if !ValidEmail(email) {
		return errs.Validation("email", msgInvalidEmail)
	}
	if err := s.api.LogEmail(ctx, strings.TrimSpace(email)); err != nil {
		s.logger.Warn("log email failed", zap.Error(err))
		return err
	}
	return nil
}
