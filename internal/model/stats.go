package model

import "time"

// PrizeAward counts how often one prize was won since start.
type PrizeAward struct {
	PrizeID   int
	Name      string
	Count     int
	Frequency float64
}

type WheelStats struct {
	TotalSpins  int
	Awards      []PrizeAward
	LastAwardAt time.Time
}
