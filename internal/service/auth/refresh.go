package auth

import (
	"context"
	"errors"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/pkg/token"
)

// Refresh issues a new access token for a live session whose refresh token
// matches. Expired sessions are deleted.
func (s *serv) Refresh(ctx context.Context, data *model.AuthData) (string, error) {
	session, err := s.authRepo.GetSession(ctx, data.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	if !token.MatchRefreshToken(data.RefreshToken, session.RefreshHash) {
		return "", ErrInvalidRefreshToken
	}

	if !s.now().Before(session.ExpiresAt) {
		if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
			return "", err
		}
		return "", ErrSessionExpired
	}

	return token.GenerateAccessToken(
		session.AdminID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
}
