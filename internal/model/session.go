package model

import "time"

type Session struct {
	ID          string
	AdminID     int
	RefreshHash string
	ExpiresAt   time.Time
}
