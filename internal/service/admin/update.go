package admin

import (
	"context"
	"fmt"

	"prize_wheel/internal/model"
	"prize_wheel/internal/service"
	"prize_wheel/pkg/logger"

	"go.uber.org/zap"
)

// prizeEdit is one optimistic change to the kiosk's loaded catalog, with the
// prize it replaced so it can be undone.
type prizeEdit struct {
	before  model.Prize
	after   model.Prize
	applied bool
}

func newPrizeEdit(kiosk service.KioskService, after model.Prize) *prizeEdit {
	before, ok := kiosk.CachedPrize(after.ID)
	if !ok {
		before = after
	}
	return &prizeEdit{before: before, after: after}
}

// apply changes the kiosk copy. It does nothing while the wheel is spinning.
func (e *prizeEdit) apply(kiosk service.KioskService) {
	e.applied = kiosk.ApplyPrizeEdit(e.after)
}

func (e *prizeEdit) revert(kiosk service.KioskService) {
	if !e.applied {
		return
	}
	if !kiosk.ApplyPrizeEdit(e.before) {
		logger.L().Warn("could not revert prize edit", zap.Int("prize_id", e.before.ID))
	}
	e.applied = false
}

func (s *serv) validate(patch model.PrizePatch) error {
	if patch.Empty() {
		return model.ErrEmptyPatch
	}
	if q := patch.Quantity; q != nil && (*q < 0 || *q > s.maxQuantity) {
		return fmt.Errorf("%w: %d not in [0, %d]", model.ErrInvalidQuantity, *q, s.maxQuantity)
	}
	return nil
}

// UpdatePrize shows the edit on the kiosk first, then writes it to the store.
// A failed write undoes the kiosk change.
func (s *serv) UpdatePrize(ctx context.Context, id int, patch model.PrizePatch) (*model.Prize, error) {
	if err := s.validate(patch); err != nil {
		return nil, err
	}

	current, err := s.catalog.GetPrize(ctx, id)
	if err != nil {
		return nil, err
	}
	after := patch.Apply(*current)

	edit := newPrizeEdit(s.kiosk, after)
	edit.apply(s.kiosk)

	if err := s.catalog.UpdateActiveAndQuantity(ctx, id, after.Quantity, after.IsActive); err != nil {
		edit.revert(s.kiosk)
		return nil, err
	}

	logger.L().Info("prize updated",
		zap.Int("prize_id", id),
		zap.Int("quantity", after.Quantity),
		zap.Bool("active", after.IsActive))
	return &after, nil
}

// UpdatePrizes writes every edit in one transaction. The kiosk copy changes
// only after the commit.
func (s *serv) UpdatePrizes(ctx context.Context, edits []model.PrizeEdit) ([]model.Prize, error) {
	for _, e := range edits {
		if err := s.validate(e.Patch); err != nil {
			return nil, fmt.Errorf("prize %d: %w", e.ID, err)
		}
	}

	updated := make([]model.Prize, 0, len(edits))
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, e := range edits {
			current, err := s.catalog.GetPrize(txCtx, e.ID)
			if err != nil {
				return err
			}
			after := e.Patch.Apply(*current)
			if err := s.catalog.UpdateActiveAndQuantity(txCtx, e.ID, after.Quantity, after.IsActive); err != nil {
				return err
			}
			updated = append(updated, after)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range updated {
		s.kiosk.ApplyPrizeEdit(p)
	}
	return updated, nil
}
