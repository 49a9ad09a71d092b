package kiosk

import (
	"time"

	"prize_wheel/internal/api/dto/prize"
)

type StateResponse struct {
	Screen         string                `json:"screen"`
	Spinning       bool                  `json:"spinning"`
	Rotation       float64               `json:"rotation"`
	Sectors        []prize.PrizeResponse `json:"sectors"`
	SpinnableCount int                   `json:"spinnable_count"`
	Outcome        *OutcomeResponse      `json:"outcome,omitempty"`
}

type SpinResponse struct {
	Started       bool    `json:"started"`
	Reason        string  `json:"reason,omitempty"`
	SpinID        string  `json:"spin_id,omitempty"`
	SpinCount     int     `json:"spin_count,omitempty"`
	FinalRotation float64 `json:"final_rotation,omitempty"`
	DurationMs    int64   `json:"duration_ms,omitempty"`
}

// OutcomeResponse carries what the result screen shows.
type OutcomeResponse struct {
	SpinID        string    `json:"spin_id"`
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	TextColor     string    `json:"text_color"`
	SectorIndex   int       `json:"sector_index"`
	FinalRotation float64   `json:"final_rotation"`
	FinishedAt    time.Time `json:"finished_at"`
}
