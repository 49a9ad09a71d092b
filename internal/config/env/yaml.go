package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"prize_wheel/internal/config"

	"gopkg.in/yaml.v3"
)

const (
	defaultSpinDuration  = 5000 * time.Millisecond
	defaultMinSpins      = 5
	defaultMaxSpins      = 9
	defaultFrameInterval = 16 * time.Millisecond

	defaultRenderSize      = 500
	defaultFontSize        = 16
	defaultLabelColor      = "#172554"
	defaultLightLabelColor = "#ffffff"
	defaultRingColor       = "#000000"
	defaultHubColor        = "#292929"

	defaultMaxQuantity = 3999

	defaultReporterWorkers = 4
	defaultReporterTimeout = 10 * time.Second
)

var defaultPrizeOrder = []string{
	"Caderno",
	"Fone de ouvido",
	"Fone de ouvido",
	"Viseira",
	"Copo Térmico",
	"Cooler",
	"Lancheira",
}

type fileConfig struct {
	Wheel struct {
		PrizeOrder    []string `yaml:"prize_order"`
		SectorMode    string   `yaml:"sector_mode"`
		SpinDuration  string   `yaml:"spin_duration"`
		MinSpins      int      `yaml:"min_spins"`
		MaxSpins      int      `yaml:"max_spins"`
		FrameInterval string   `yaml:"frame_interval"`
	} `yaml:"wheel"`
	Render struct {
		Size            int     `yaml:"size"`
		FontSize        float64 `yaml:"font_size"`
		LabelColor      string  `yaml:"label_color"`
		LightLabelColor string  `yaml:"light_label_color"`
		RingColor       string  `yaml:"ring_color"`
		HubColor        string  `yaml:"hub_color"`
	} `yaml:"render"`
	Admin struct {
		MaxQuantity int `yaml:"max_quantity"`
	} `yaml:"admin"`
	Reporter struct {
		Workers int    `yaml:"workers"`
		Timeout string `yaml:"timeout"`
	} `yaml:"reporter"`
}

// readYAML parses path. A missing file yields all defaults.
func readYAML(path string) (*fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &fc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &fc, nil
}

func parseDuration(name, s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return d, nil
}

type wheelConfig struct {
	prizeOrder    []string
	sectorMode    string
	spinDuration  time.Duration
	minSpins      int
	maxSpins      int
	frameInterval time.Duration
}

func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	fc, err := readYAML(path)
	if err != nil {
		return nil, err
	}
	w := fc.Wheel

	cfg := &wheelConfig{
		prizeOrder: w.PrizeOrder,
		sectorMode: w.SectorMode,
		minSpins:   w.MinSpins,
		maxSpins:   w.MaxSpins,
	}
	if len(cfg.prizeOrder) == 0 {
		cfg.prizeOrder = defaultPrizeOrder
	}
	if cfg.minSpins == 0 {
		cfg.minSpins = defaultMinSpins
	}
	if cfg.maxSpins == 0 {
		cfg.maxSpins = defaultMaxSpins
	}
	if cfg.minSpins < 1 || cfg.maxSpins < cfg.minSpins {
		return nil, fmt.Errorf("invalid spin range [%d, %d]", cfg.minSpins, cfg.maxSpins)
	}
	if cfg.spinDuration, err = parseDuration("spin_duration", w.SpinDuration, defaultSpinDuration); err != nil {
		return nil, err
	}
	if cfg.frameInterval, err = parseDuration("frame_interval", w.FrameInterval, defaultFrameInterval); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *wheelConfig) PrizeOrder() []string         { return c.prizeOrder }
func (c *wheelConfig) SectorMode() string           { return c.sectorMode }
func (c *wheelConfig) SpinDuration() time.Duration  { return c.spinDuration }
func (c *wheelConfig) MinSpins() int                { return c.minSpins }
func (c *wheelConfig) MaxSpins() int                { return c.maxSpins }
func (c *wheelConfig) FrameInterval() time.Duration { return c.frameInterval }

type renderConfig struct {
	size            int
	fontSize        float64
	labelColor      string
	lightLabelColor string
	ringColor       string
	hubColor        string
}

func NewRenderConfigFromYAML(path string) (config.RenderConfig, error) {
	fc, err := readYAML(path)
	if err != nil {
		return nil, err
	}
	r := fc.Render
	if r.Size < 0 || r.FontSize < 0 {
		return nil, fmt.Errorf("invalid render size %d / font size %v", r.Size, r.FontSize)
	}
	return &renderConfig{
		size:            or(r.Size, defaultRenderSize),
		fontSize:        or(r.FontSize, defaultFontSize),
		labelColor:      or(r.LabelColor, defaultLabelColor),
		lightLabelColor: or(r.LightLabelColor, defaultLightLabelColor),
		ringColor:       or(r.RingColor, defaultRingColor),
		hubColor:        or(r.HubColor, defaultHubColor),
	}, nil
}

func (c *renderConfig) Size() int               { return c.size }
func (c *renderConfig) FontSize() float64       { return c.fontSize }
func (c *renderConfig) LabelColor() string      { return c.labelColor }
func (c *renderConfig) LightLabelColor() string { return c.lightLabelColor }
func (c *renderConfig) RingColor() string       { return c.ringColor }
func (c *renderConfig) HubColor() string        { return c.hubColor }

type adminConfig struct {
	maxQuantity int
}

func NewAdminConfigFromYAML(path string) (config.AdminConfig, error) {
	fc, err := readYAML(path)
	if err != nil {
		return nil, err
	}
	if fc.Admin.MaxQuantity < 0 {
		return nil, fmt.Errorf("invalid max_quantity %d", fc.Admin.MaxQuantity)
	}
	return &adminConfig{maxQuantity: or(fc.Admin.MaxQuantity, defaultMaxQuantity)}, nil
}

func (c *adminConfig) MaxQuantity() int { return c.maxQuantity }

type reporterConfig struct {
	workers int
	timeout time.Duration
}

func NewReporterConfigFromYAML(path string) (config.ReporterConfig, error) {
	fc, err := readYAML(path)
	if err != nil {
		return nil, err
	}
	timeout, err := parseDuration("reporter timeout", fc.Reporter.Timeout, defaultReporterTimeout)
	if err != nil {
		return nil, err
	}
	if fc.Reporter.Workers < 0 {
		return nil, fmt.Errorf("invalid reporter workers %d", fc.Reporter.Workers)
	}
	return &reporterConfig{
		workers: or(fc.Reporter.Workers, defaultReporterWorkers),
		timeout: timeout,
	}, nil
}

func (c *reporterConfig) Workers() int           { return c.workers }
func (c *reporterConfig) Timeout() time.Duration { return c.timeout }

func or[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
