package model

import "time"

type Screen string

const (
	ScreenStart  Screen = "start"
	ScreenWheel  Screen = "wheel"
	ScreenResult Screen = "result"
)

// KioskState is a snapshot of what the kiosk shows.
type KioskState struct {
	Screen         Screen
	Spinning       bool
	Rotation       float64
	Sectors        []Prize
	SpinnableCount int
	Outcome        *Outcome
}

// SpinStatus answers a spin request. When Started is false, Reason says why
// the request was ignored.
type SpinStatus struct {
	Started       bool
	Reason        string
	SpinID        string
	SpinCount     int
	FinalRotation float64
	Duration      time.Duration
}
