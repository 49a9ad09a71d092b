package auth

import (
	"context"
	"errors"
	"time"

	"prize_wheel/internal/config"
	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/service"
	"prize_wheel/pkg/token"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrSessionExpired      = errors.New("session expired")
)

type serv struct {
	txManager    trm.Manager
	adminRepo    repository.AdminRepository
	authRepo     repository.AuthRepository
	jwtConfig    config.JWTConfig
	newSessionID func() (string, error)
	now          func() time.Time
}

func NewService(
	txManager trm.Manager,
	adminRepo repository.AdminRepository,
	authRepo repository.AuthRepository,
	jwtConfig config.JWTConfig,
) service.AuthService {
	return &serv{
		txManager:    txManager,
		adminRepo:    adminRepo,
		authRepo:     authRepo,
		jwtConfig:    jwtConfig,
		newSessionID: func() (string, error) { return gonanoid.New() },
		now:          time.Now,
	}
}

// startSession stores a new session for adminID and issues both tokens.
func (s *serv) startSession(ctx context.Context, adminID int) (*model.AuthData, error) {
	sessionID, err := s.newSessionID()
	if err != nil {
		return nil, err
	}

	refreshToken, refreshHash, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	err = s.authRepo.CreateSession(ctx, &model.Session{
		ID:          sessionID,
		AdminID:     adminID,
		RefreshHash: refreshHash,
		ExpiresAt:   s.now().Add(s.jwtConfig.RefreshTokenDuration()),
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := token.GenerateAccessToken(
		adminID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}

func (s *serv) Logout(ctx context.Context, sessionID string) error {
	return s.authRepo.DeleteSession(ctx, sessionID)
}
