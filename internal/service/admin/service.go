package admin

import (
	"context"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

const DefaultMaxQuantity = 3999

type serv struct {
	txManager   trm.Manager
	catalog     service.CatalogService
	kiosk       service.KioskService
	stats       repository.WheelStatsRepository
	maxQuantity int
}

func NewService(
	txManager trm.Manager,
	catalog service.CatalogService,
	kiosk service.KioskService,
	stats repository.WheelStatsRepository,
	maxQuantity int,
) service.AdminService {
	if maxQuantity <= 0 {
		maxQuantity = DefaultMaxQuantity
	}
	return &serv{
		txManager:   txManager,
		catalog:     catalog,
		kiosk:       kiosk,
		stats:       stats,
		maxQuantity: maxQuantity,
	}
}

func (s *serv) ListPrizes(ctx context.Context) ([]model.Prize, error) {
	return s.catalog.ListPrizes(ctx)
}

func (s *serv) Stats() model.WheelStats {
	return s.stats.Snapshot()
}

func (s *serv) Reload(ctx context.Context) error {
	return s.kiosk.Reload(ctx)
}
