package repository

import (
	"context"
	"errors"

	"prize_wheel/internal/model"
)

var (
	ErrPrizeNotFound   = errors.New("prize not found")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrSessionNotFound = errors.New("session not found")
)

// PrizeRepository is the remote prize catalog.
type PrizeRepository interface {
	GetAll(ctx context.Context) ([]model.Prize, error)
	GetSpinnable(ctx context.Context) ([]model.Prize, error)
	GetByID(ctx context.Context, id int) (*model.Prize, error)
	GetQuantity(ctx context.Context, id int) (int, error)
	UpdateQuantity(ctx context.Context, id int, quantity int) error
	UpdateActiveAndQuantity(ctx context.Context, id int, quantity int, active bool) error
}

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *model.Admin) (id int, err error)
	GetAdminByLogin(ctx context.Context, login string) (*model.Admin, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetAdminBySessionID(ctx context.Context, sessionID string) (*model.Admin, error)
}

// WheelStatsRepository keeps in-memory award statistics for the process.
type WheelStatsRepository interface {
	RecordAward(prize model.Prize)
	Snapshot() model.WheelStats
	Reset()
}
