package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	MaxConns() int32
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type LogConfig interface {
	Mode() string
	Level() string
	Dir() string
}

// IconConfig locates prize icons. An empty bucket disables the S3 source, an
// empty dir disables local files.
type IconConfig interface {
	Bucket() string
	Region() string
	Endpoint() string
	Dir() string
}

type WheelConfig interface {
	PrizeOrder() []string
	SectorMode() string
	SpinDuration() time.Duration
	MinSpins() int
	MaxSpins() int
	FrameInterval() time.Duration
}

type RenderConfig interface {
	Size() int
	FontSize() float64
	LabelColor() string
	LightLabelColor() string
	RingColor() string
	HubColor() string
}

type AdminConfig interface {
	MaxQuantity() int
}

type ReporterConfig interface {
	Workers() int
	Timeout() time.Duration
}
