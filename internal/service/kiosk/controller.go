package kiosk

import (
	"context"
	"errors"
	"image"
	"slices"
	"sync"
	"time"

	"prize_wheel/internal/metrics"
	"prize_wheel/internal/model"
	"prize_wheel/internal/service"
	"prize_wheel/internal/wheel"
	"prize_wheel/pkg/logger"

	"go.uber.org/zap"
)

// Event names published to displays.
const (
	EventScreen  = "screen"
	EventFrame   = "frame"
	EventOutcome = "outcome"
)

const (
	reasonSpinning   = "spinning"
	reasonNoPrizes   = "no_prizes"
	reasonNotOnWheel = "not_on_wheel"
)

var (
	ErrSpinInProgress = errors.New("a spin is in progress")
	ErrNoOutcome      = errors.New("no outcome to show")
)

// Renderer draws the wheel for a given rotation.
type Renderer interface {
	Render(ctx context.Context, sectors []model.Prize, rotation float64) (*image.RGBA, error)
	TextColor(fill string) string
}

type FramePayload struct {
	Rotation float64 `json:"rotation"`
	Spinning bool    `json:"spinning"`
}

type ScreenPayload struct {
	Screen model.Screen `json:"screen"`
}

var _ service.KioskService = (*Controller)(nil)

type Controller struct {
	mu sync.Mutex

	catalog   service.CatalogService
	engine    *wheel.Engine
	mode      wheel.SectorMode
	scheduler wheel.FrameScheduler
	renderer  Renderer
	reporter  service.OutcomeReporter
	events    service.EventPublisher
	now       func() time.Time

	screen  model.Screen
	outcome *model.Outcome
}

type Option func(*Controller)

// WithClock replaces time.Now for spin start times.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func NewController(
	catalog service.CatalogService,
	engine *wheel.Engine,
	mode wheel.SectorMode,
	scheduler wheel.FrameScheduler,
	renderer Renderer,
	reporter service.OutcomeReporter,
	events service.EventPublisher,
	opts ...Option,
) *Controller {
	c := &Controller{
		catalog:   catalog,
		engine:    engine,
		mode:      mode,
		scheduler: scheduler,
		renderer:  renderer,
		reporter:  reporter,
		events:    events,
		now:       time.Now,
		screen:    model.ScreenStart,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enter shows the wheel with freshly loaded prizes. A failed load leaves an
// empty wheel that cannot be spun.
func (c *Controller) Enter(ctx context.Context) (model.KioskState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.engine.State() == wheel.Spinning {
		return c.snapshot(), ErrSpinInProgress
	}

	c.loadLocked(ctx)
	c.outcome = nil
	c.setScreen(model.ScreenWheel)
	return c.snapshot(), nil
}

func (c *Controller) loadLocked(ctx context.Context) {
	prizes, err := c.catalog.LoadPrizes(ctx)
	if err != nil {
		logger.L().Warn("showing empty wheel", zap.Error(err))
		prizes = nil
	}
	c.engine.Load(wheel.NewCatalog(prizes, c.mode))
}

// Spin starts a spin when the wheel screen is idle. Requests while spinning or
// with nothing to win are ignored.
func (c *Controller) Spin(ctx context.Context) (model.SpinStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.screen != model.ScreenWheel {
		return model.SpinStatus{Reason: reasonNotOnWheel}, nil
	}
	if c.engine.State() == wheel.Spinning {
		return model.SpinStatus{Reason: reasonSpinning}, nil
	}

	spin, started, err := c.engine.StartSpin(c.now())
	if err != nil {
		logger.L().Error("spin aborted", zap.Error(err))
		return model.SpinStatus{}, err
	}
	if !started {
		return model.SpinStatus{Reason: reasonNoPrizes}, nil
	}

	metrics.SetSpinning(true)
	logger.L().Debug("spin started",
		zap.String("spin_id", spin.ID),
		zap.Int("sector", spin.SectorIndex),
		zap.Int("spin_count", spin.SpinCount),
		zap.Float64("final_rotation", spin.FinalRotation))

	c.scheduler.ScheduleFrame(c.frame)

	return model.SpinStatus{
		Started:       true,
		SpinID:        spin.ID,
		SpinCount:     spin.SpinCount,
		FinalRotation: spin.FinalRotation,
		Duration:      spin.Duration,
	}, nil
}

// frame advances the animation one step. The chain reschedules itself until
// the spin completes, then moves to the result screen and reports the award.
func (c *Controller) frame(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rotation, done := c.engine.Tick(now)
	c.publish(EventFrame, FramePayload{Rotation: rotation, Spinning: done == nil})
	if done == nil {
		c.scheduler.ScheduleFrame(c.frame)
		return
	}

	metrics.SetSpinning(false)
	o := model.Outcome{
		SpinID:        done.ID,
		Prize:         done.Prize,
		SectorIndex:   done.SectorIndex,
		FinalRotation: done.FinalRotation,
		TextColor:     c.renderer.TextColor(done.Prize.Color),
		FinishedAt:    now,
	}
	c.outcome = &o
	c.setScreen(model.ScreenResult)
	c.publish(EventOutcome, o)

	c.reporter.Report(o)
}

// Back returns to the start screen and forgets the last outcome.
func (c *Controller) Back(_ context.Context) (model.KioskState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.engine.State() == wheel.Spinning {
		return c.snapshot(), ErrSpinInProgress
	}
	c.outcome = nil
	c.setScreen(model.ScreenStart)
	return c.snapshot(), nil
}

func (c *Controller) State() model.KioskState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) Result() (*model.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcome == nil {
		return nil, false
	}
	o := *c.outcome
	return &o, true
}

// Frame renders the wheel at rotation, or at the current rotation when nil.
func (c *Controller) Frame(ctx context.Context, rotation *float64) (*image.RGBA, error) {
	c.mu.Lock()
	sectors := slices.Clone(c.engine.Catalog().Sectors)
	rot := c.engine.Rotation()
	c.mu.Unlock()

	if rotation != nil {
		rot = *rotation
	}
	return c.renderer.Render(ctx, sectors, rot)
}

// Reload re-reads the catalog without changing screens.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.engine.State() == wheel.Spinning {
		return ErrSpinInProgress
	}
	if f, ok := c.renderer.(interface{ ForgetIcons() }); ok {
		f.ForgetIcons()
	}
	c.loadLocked(ctx)
	c.publish(EventFrame, FramePayload{Rotation: c.engine.Rotation()})
	return nil
}

// CachedPrize is the prize as last loaded by the kiosk.
func (c *Controller) CachedPrize(id int) (model.Prize, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Catalog().Find(id)
}

// ApplyPrizeEdit replaces a loaded prize. It is refused while spinning.
func (c *Controller) ApplyPrizeEdit(p model.Prize) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.UpdatePrize(p)
}

func (c *Controller) setScreen(s model.Screen) {
	if c.screen == s {
		return
	}
	c.screen = s
	c.publish(EventScreen, ScreenPayload{Screen: s})
}

func (c *Controller) publish(event string, payload any) {
	if c.events != nil {
		c.events.Publish(event, payload)
	}
}

func (c *Controller) snapshot() model.KioskState {
	cat := c.engine.Catalog()
	st := model.KioskState{
		Screen:         c.screen,
		Spinning:       c.engine.State() == wheel.Spinning,
		Rotation:       c.engine.Rotation(),
		Sectors:        slices.Clone(cat.Sectors),
		SpinnableCount: len(cat.Spinnable),
	}
	if c.outcome != nil {
		o := *c.outcome
		st.Outcome = &o
	}
	return st
}
