package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/platform/config"
	"github.com/mizan-erp/mizan_backend/internal/utils"
)

// authService validates the configured admin credentials and issues access
// tokens. There is no user table; the backend serves a single operator whose
// bcrypt-hashed password lives in configuration.
type authService struct {
	BaseService
	cfg *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.cfg.AdminPasswordHash == "" {
		return "", time.Time{}, fmt.Errorf("%w: login is not configured", apperrors.ErrAuthenticationFailed)
	}
	if username != s.cfg.AdminUsername || !utils.CheckPasswordHash(password, s.cfg.AdminPasswordHash) {
		s.LogInfo(ctx, "login rejected", "username", username)
		return "", time.Time{}, fmt.Errorf("%w: invalid username or password", apperrors.ErrAuthenticationFailed)
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	s.LogInfo(ctx, "login succeeded", "username", username)
	return token, expiresAt, nil
}
