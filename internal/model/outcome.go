package model

import "time"

// Outcome is the result of a finished spin, carried to the result screen.
type Outcome struct {
	SpinID        string
	Prize         Prize
	SectorIndex   int
	FinalRotation float64
	TextColor     string
	FinishedAt    time.Time
}
