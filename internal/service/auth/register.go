package auth

import (
	"context"

	"prize_wheel/internal/model"
	"prize_wheel/pkg/pass"
)

// Register creates an admin account and its first session in one transaction.
func (s *serv) Register(ctx context.Context, admin *model.Admin) (*model.AuthData, error) {
	passwordHash, err := pass.HashPassword(admin.Password)
	if err != nil {
		return nil, err
	}
	admin.Password = passwordHash

	var data *model.AuthData
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		admin.ID, err = s.adminRepo.CreateAdmin(ctx, admin)
		if err != nil {
			return err
		}

		data, err = s.startSession(ctx, admin.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}
