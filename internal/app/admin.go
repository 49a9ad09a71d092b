package app

import (
	"context"

	"prize_wheel/internal/config"
	"prize_wheel/internal/model"
	"prize_wheel/pkg/logger"

	"go.uber.org/zap"
)

// CreateAdmin registers an admin account without starting the server.
func (s *App) CreateAdmin(ctx context.Context, name, login, password string) (int, error) {
	err := config.Load(".env")
	s.initLogger()
	defer func() { _ = logger.L().Sync() }()
	if err != nil {
		logger.L().Warn("error loading .env file", zap.Error(err))
	}
	s.initServiceProvider()
	defer s.ServiceProvider.DBClient(ctx).Close()

	admin := &model.Admin{Name: name, Login: login, Password: password}
	if _, err := s.ServiceProvider.AuthService(ctx).Register(ctx, admin); err != nil {
		return 0, err
	}
	return admin.ID, nil
}
