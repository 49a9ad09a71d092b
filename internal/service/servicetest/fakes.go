// Package servicetest holds in-memory fakes shared by service tests.
package servicetest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// PrizeRepo is an in-memory repository.PrizeRepository. Setting an Err field
// makes the matching call fail.
type PrizeRepo struct {
	mu     sync.Mutex
	prizes map[int]model.Prize

	GetAllErr      error
	GetQuantityErr error
	UpdateErr      error

	Updates int
}

func NewPrizeRepo(prizes ...model.Prize) *PrizeRepo {
	r := &PrizeRepo{prizes: make(map[int]model.Prize)}
	for _, p := range prizes {
		r.prizes[p.ID] = p
	}
	return r
}

func (r *PrizeRepo) sorted() []model.Prize {
	out := make([]model.Prize, 0, len(r.prizes))
	for _, p := range r.prizes {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b model.Prize) int { return a.ID - b.ID })
	return out
}

func (r *PrizeRepo) GetAll(_ context.Context) ([]model.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetAllErr != nil {
		return nil, r.GetAllErr
	}
	return r.sorted(), nil
}

func (r *PrizeRepo) GetSpinnable(_ context.Context) ([]model.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetAllErr != nil {
		return nil, r.GetAllErr
	}
	return slices.DeleteFunc(r.sorted(), func(p model.Prize) bool { return !p.Spinnable() }), nil
}

func (r *PrizeRepo) GetByID(_ context.Context, id int) (*model.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prizes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", repository.ErrPrizeNotFound, id)
	}
	return &p, nil
}

func (r *PrizeRepo) GetQuantity(_ context.Context, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetQuantityErr != nil {
		return 0, r.GetQuantityErr
	}
	p, ok := r.prizes[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", repository.ErrPrizeNotFound, id)
	}
	return p.Quantity, nil
}

func (r *PrizeRepo) UpdateQuantity(_ context.Context, id int, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	p, ok := r.prizes[id]
	if !ok {
		return fmt.Errorf("%w: %d", repository.ErrPrizeNotFound, id)
	}
	p.Quantity = quantity
	r.prizes[id] = p
	r.Updates++
	return nil
}

func (r *PrizeRepo) UpdateActiveAndQuantity(_ context.Context, id int, quantity int, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	p, ok := r.prizes[id]
	if !ok {
		return fmt.Errorf("%w: %d", repository.ErrPrizeNotFound, id)
	}
	p.Quantity = quantity
	p.IsActive = active
	r.prizes[id] = p
	r.Updates++
	return nil
}

// Prize returns the stored row.
func (r *PrizeRepo) Prize(id int) model.Prize {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prizes[id]
}

// Publisher records published events.
type Publisher struct {
	mu     sync.Mutex
	Events []Event
}

type Event struct {
	Name    string
	Payload any
}

func (p *Publisher) Publish(event string, payload any) {
	p.mu.Lock()
	p.Events = append(p.Events, Event{Name: event, Payload: payload})
	p.mu.Unlock()
}

// Count returns how many events named event were published.
func (p *Publisher) Count(event string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.Events {
		if e.Name == event {
			n++
		}
	}
	return n
}

// TxManager runs fn directly, without a transaction.
type TxManager struct {
	Calls int
}

var _ trm.Manager = (*TxManager)(nil)

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
