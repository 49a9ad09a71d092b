package catalog

import (
	"context"

	"prize_wheel/internal/metrics"
	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/service"
	"prize_wheel/internal/wheel"
	"prize_wheel/pkg/logger"

	"go.uber.org/zap"
)

const (
	opGetAll                  = "get_all"
	opGetSpinnable            = "get_spinnable"
	opGetByID                 = "get_by_id"
	opGetQuantity             = "get_quantity"
	opUpdateQuantity          = "update_quantity"
	opUpdateActiveAndQuantity = "update_active_and_quantity"
)

type serv struct {
	prizeRepo repository.PrizeRepository
	order     []string
	mode      wheel.SectorMode
}

func NewService(prizeRepo repository.PrizeRepository, order []string, mode wheel.SectorMode) service.CatalogService {
	return &serv{
		prizeRepo: prizeRepo,
		order:     order,
		mode:      mode,
	}
}

// LoadPrizes reads the prizes the wheel shows, in display order. In spinnable
// mode only winnable prizes are read.
func (s *serv) LoadPrizes(ctx context.Context) ([]model.Prize, error) {
	op, read := opGetAll, s.prizeRepo.GetAll
	if s.mode == wheel.SectorsSpinnable {
		op, read = opGetSpinnable, s.prizeRepo.GetSpinnable
	}

	prizes, err := read(ctx)
	if err != nil {
		return nil, fetchFailed(op, err)
	}

	for _, p := range prizes {
		metrics.SetStock(p.Name, p.Quantity)
	}
	return wheel.SortPrizes(prizes, s.order), nil
}

// ListPrizes reads every prize ordered by id.
func (s *serv) ListPrizes(ctx context.Context) ([]model.Prize, error) {
	prizes, err := s.prizeRepo.GetAll(ctx)
	if err != nil {
		return nil, fetchFailed(opGetAll, err)
	}
	return prizes, nil
}

func (s *serv) GetPrize(ctx context.Context, id int) (*model.Prize, error) {
	p, err := s.prizeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fetchFailed(opGetByID, err)
	}
	return p, nil
}

func (s *serv) GetQuantity(ctx context.Context, id int) (int, error) {
	q, err := s.prizeRepo.GetQuantity(ctx, id)
	if err != nil {
		return 0, fetchFailed(opGetQuantity, err)
	}
	return q, nil
}

func (s *serv) UpdateQuantity(ctx context.Context, id int, quantity int) error {
	if err := s.prizeRepo.UpdateQuantity(ctx, id, quantity); err != nil {
		return updateFailed(opUpdateQuantity, id, err)
	}
	return nil
}

func (s *serv) UpdateActiveAndQuantity(ctx context.Context, id int, quantity int, active bool) error {
	if err := s.prizeRepo.UpdateActiveAndQuantity(ctx, id, quantity, active); err != nil {
		return updateFailed(opUpdateActiveAndQuantity, id, err)
	}
	return nil
}

func fetchFailed(op string, err error) error {
	metrics.StoreError(op)
	logger.L().Error("prize store read failed", zap.String("op", op), zap.Error(err))
	return &model.FetchError{Op: op, Err: err}
}

func updateFailed(op string, id int, err error) error {
	metrics.StoreError(op)
	logger.L().Error("prize store write failed", zap.String("op", op), zap.Int("prize_id", id), zap.Error(err))
	return &model.UpdateError{Op: op, ID: id, Err: err}
}
