package auth

import (
	"context"
	"errors"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/pkg/pass"
)

func (s *serv) Login(ctx context.Context, login, password string) (*model.AuthData, error) {
	admin, err := s.adminRepo.GetAdminByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !pass.VerifyPassword(admin.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, admin.ID)
}
