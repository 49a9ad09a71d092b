package outcome

import (
	"context"
	"fmt"
	"sync"
	"time"

	"prize_wheel/internal/metrics"
	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/service"
	"prize_wheel/pkg/logger"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

type reporter struct {
	catalog service.CatalogService
	stats   repository.WheelStatsRepository
	pool    *ants.Pool
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewReporter(
	catalog service.CatalogService,
	stats repository.WheelStatsRepository,
	workers int,
	timeout time.Duration,
) (service.OutcomeReporter, error) {
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("outcome pool: %w", err)
	}
	return &reporter{
		catalog: catalog,
		stats:   stats,
		pool:    pool,
		timeout: timeout,
	}, nil
}

// Report counts the award and schedules the stock decrement. It returns
// before the store is touched. Outcomes reported after Close are logged and
// dropped.
func (r *reporter) Report(o model.Outcome) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		logger.L().Warn("outcome reported after shutdown, stock not decremented",
			zap.String("spin_id", o.SpinID), zap.Int("prize_id", o.Prize.ID))
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	r.stats.RecordAward(o.Prize)
	metrics.SpinFinished(o.Prize.Name)

	if err := r.pool.Submit(func() {
		defer r.wg.Done()
		r.decrement(o)
	}); err != nil {
		r.wg.Done()
		logger.L().Error("outcome not submitted",
			zap.String("spin_id", o.SpinID), zap.Int("prize_id", o.Prize.ID), zap.Error(err))
	}
}

// decrement reads the current quantity and writes it back minus one. Two
// kiosks awarding the same prize at once can both read the same value; the
// store is not locked and the result is not floored at zero.
func (r *reporter) decrement(o model.Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	log := logger.L().With(zap.String("spin_id", o.SpinID), zap.Int("prize_id", o.Prize.ID))

	q, err := r.catalog.GetQuantity(ctx, o.Prize.ID)
	if err != nil {
		log.Error("read quantity for award", zap.Error(err))
		return
	}
	if err := r.catalog.UpdateQuantity(ctx, o.Prize.ID, q-1); err != nil {
		log.Error("write quantity for award", zap.Int("quantity", q-1), zap.Error(err))
		return
	}

	metrics.SetStock(o.Prize.Name, q-1)
	log.Info("prize awarded", zap.String("prize", o.Prize.Name), zap.Int("quantity", q-1))
}

// Wait blocks until every submitted decrement has finished.
func (r *reporter) Wait() {
	r.wg.Wait()
}

// Close refuses new outcomes, waits for pending decrements and releases the
// pool. Calling it again is a no-op.
func (r *reporter) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
	r.pool.Release()
}
