package service

import (
	"context"
	"image"

	"prize_wheel/internal/model"
)

// CatalogService reads and writes the remote prize catalog. Read failures
// come back as *model.FetchError, write failures as *model.UpdateError.
type CatalogService interface {
	LoadPrizes(ctx context.Context) ([]model.Prize, error)
	ListPrizes(ctx context.Context) ([]model.Prize, error)
	GetPrize(ctx context.Context, id int) (*model.Prize, error)
	GetQuantity(ctx context.Context, id int) (int, error)
	UpdateQuantity(ctx context.Context, id int, quantity int) error
	UpdateActiveAndQuantity(ctx context.Context, id int, quantity int, active bool) error
}

type KioskService interface {
	Enter(ctx context.Context) (model.KioskState, error)
	Spin(ctx context.Context) (model.SpinStatus, error)
	Back(ctx context.Context) (model.KioskState, error)
	State() model.KioskState
	Result() (*model.Outcome, bool)
	Frame(ctx context.Context, rotation *float64) (*image.RGBA, error)
	Reload(ctx context.Context) error
	CachedPrize(id int) (model.Prize, bool)
	ApplyPrizeEdit(p model.Prize) bool
}

// OutcomeReporter persists finished spins without blocking the caller.
type OutcomeReporter interface {
	Report(outcome model.Outcome)
	Wait()
	Close()
}

// EventPublisher pushes kiosk events to connected displays.
type EventPublisher interface {
	Publish(event string, payload any)
}

type AdminService interface {
	ListPrizes(ctx context.Context) ([]model.Prize, error)
	UpdatePrize(ctx context.Context, id int, patch model.PrizePatch) (*model.Prize, error)
	UpdatePrizes(ctx context.Context, edits []model.PrizeEdit) ([]model.Prize, error)
	Stats() model.WheelStats
	Reload(ctx context.Context) error
}

type AuthService interface {
	Register(ctx context.Context, admin *model.Admin) (*model.AuthData, error)
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
