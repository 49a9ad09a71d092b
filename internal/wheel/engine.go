package wheel

import (
	"errors"
	"fmt"
	"time"

	"prize_wheel/internal/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrInconsistentState means the chosen prize is missing from the sector list.
var ErrInconsistentState = errors.New("chosen prize is not a wheel sector")

const (
	DefaultSpinDuration = 5000 * time.Millisecond
	DefaultMinSpins     = 5
	DefaultMaxSpins     = 9
)

type State int

const (
	Idle State = iota
	Spinning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Config struct {
	Duration time.Duration
	MinSpins int
	MaxSpins int
}

func DefaultConfig() Config {
	return Config{
		Duration: DefaultSpinDuration,
		MinSpins: DefaultMinSpins,
		MaxSpins: DefaultMaxSpins,
	}
}

func (c Config) withDefaults() Config {
	if c.Duration <= 0 {
		c.Duration = DefaultSpinDuration
	}
	if c.MinSpins <= 0 {
		c.MinSpins = DefaultMinSpins
	}
	if c.MaxSpins < c.MinSpins {
		c.MaxSpins = c.MinSpins
	}
	return c
}

// Spin is one animation from InitialRotation to FinalRotation whose outcome,
// Prize, was decided before the animation started.
type Spin struct {
	ID              string
	Prize           model.Prize
	SectorIndex     int
	SectorCount     int
	SpinCount       int
	InitialRotation float64
	FinalRotation   float64
	StartedAt       time.Time
	Duration        time.Duration
}

// RotationAt is the displayed rotation at now.
func (s *Spin) RotationAt(now time.Time) float64 {
	return RotationAt(now.Sub(s.StartedAt), s.InitialRotation, s.FinalRotation, s.Duration)
}

// Done reports whether the animation has completed at now.
func (s *Spin) Done(now time.Time) bool {
	return now.Sub(s.StartedAt) >= s.Duration
}

type Option func(*Engine)

// WithRandom replaces the random source used for selection and spin count.
func WithRandom(r RandomInt) Option {
	return func(e *Engine) { e.random = r }
}

// WithIDGenerator replaces the spin id generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(e *Engine) { e.newID = gen }
}

// Engine is the Idle -> Spinning -> Idle state machine. It is not safe for
// concurrent use; callers serialize access.
type Engine struct {
	cfg      Config
	random   RandomInt
	newID    func() (string, error)
	state    State
	rotation float64
	catalog  Catalog
	current  *Spin
}

func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg.withDefaults(),
		random: SecureRandomInt,
		newID:  func() (string, error) { return gonanoid.New() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Rotation() float64 { return e.rotation }

func (e *Engine) Catalog() Catalog { return e.catalog }

// Current is the running spin, nil when Idle.
func (e *Engine) Current() *Spin { return e.current }

// Load replaces the catalog. It is refused while Spinning so sector indexes of
// the running spin stay valid.
func (e *Engine) Load(c Catalog) bool {
	if e.state == Spinning {
		return false
	}
	e.catalog = c
	return true
}

// UpdatePrize replaces one loaded prize while Idle.
func (e *Engine) UpdatePrize(p model.Prize) bool {
	if e.state == Spinning {
		return false
	}
	next, ok := e.catalog.With(p)
	if !ok {
		return false
	}
	e.catalog = next
	return true
}

// StartSpin picks the winning prize uniformly from the spinnable set and plans
// the rotation that lands its sector under the pointer. It is a no-op
// (started=false, nil error) while Spinning or with nothing to win.
func (e *Engine) StartSpin(now time.Time) (*Spin, bool, error) {
	if e.state == Spinning || len(e.catalog.Spinnable) == 0 {
		return nil, false, nil
	}

	pick, err := e.random(len(e.catalog.Spinnable))
	if err != nil {
		return nil, false, fmt.Errorf("pick prize: %w", err)
	}
	chosen := e.catalog.Spinnable[pick]

	k := e.catalog.IndexOf(chosen.ID)
	if k < 0 {
		return nil, false, fmt.Errorf("%w: prize %d", ErrInconsistentState, chosen.ID)
	}

	extra, err := e.random(e.cfg.MaxSpins - e.cfg.MinSpins + 1)
	if err != nil {
		return nil, false, fmt.Errorf("pick spin count: %w", err)
	}
	spinCount := e.cfg.MinSpins + extra

	id, err := e.newID()
	if err != nil {
		return nil, false, fmt.Errorf("spin id: %w", err)
	}

	m := len(e.catalog.Sectors)
	spin := &Spin{
		ID:              id,
		Prize:           chosen,
		SectorIndex:     k,
		SectorCount:     m,
		SpinCount:       spinCount,
		InitialRotation: e.rotation,
		FinalRotation:   FinalRotation(e.rotation, spinCount, TargetAngle(k, m)),
		StartedAt:       now,
		Duration:        e.cfg.Duration,
	}
	e.state = Spinning
	e.current = spin
	return spin, true, nil
}

// Tick advances the displayed rotation to now. When the spin has run its full
// duration the engine snaps to the final rotation (mod 360), returns to Idle
// and returns the finished spin.
func (e *Engine) Tick(now time.Time) (float64, *Spin) {
	if e.state != Spinning || e.current == nil {
		return e.rotation, nil
	}
	spin := e.current
	if !spin.Done(now) {
		e.rotation = spin.RotationAt(now)
		return e.rotation, nil
	}
	e.finish()
	return e.rotation, spin
}

func (e *Engine) finish() {
	e.rotation = NormalizeAngle(e.current.FinalRotation)
	e.current = nil
	e.state = Idle
}
