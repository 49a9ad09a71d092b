package wheel

import (
	"math"
	"time"
)

// FullTurn is one revolution in degrees.
const FullTurn = 360.0

// AnglePerSector is the angular width of one of m equal sectors.
func AnglePerSector(m int) float64 {
	if m <= 0 {
		return 0
	}
	return FullTurn / float64(m)
}

// TargetAngle is the center of sector k measured clockwise from the top pointer.
func TargetAngle(k, m int) float64 {
	a := AnglePerSector(m)
	return float64(k)*a + a/2
}

// FinalRotation returns the rotation at which the wheel, spun spinCount extra
// revolutions from initial, stops with targetAngle under the top pointer.
// For initial = 0 it equals the plain initial + 360*spinCount + (360 - targetAngle).
// It differs from that formula whenever initial is not a multiple of 360: the
// plain form would land targetAngle - initial under the pointer, so the offset
// here is measured from NormalizeAngle(initial) to keep every spin landing on
// the chosen sector.
func FinalRotation(initial float64, spinCount int, targetAngle float64) float64 {
	offset := NormalizeAngle(FullTurn - targetAngle - NormalizeAngle(initial))
	return initial + FullTurn*float64(spinCount) + offset
}

// EaseOutCubic maps progress p in [0,1] to 1-(1-p)^3. p is clamped.
func EaseOutCubic(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	q := 1 - p
	return 1 - q*q*q
}

// RotationAt is the displayed rotation after elapsed time of a spin from initial
// to final lasting duration. It returns exactly final once elapsed >= duration.
func RotationAt(elapsed time.Duration, initial, final float64, duration time.Duration) float64 {
	if duration <= 0 || elapsed >= duration {
		return final
	}
	if elapsed <= 0 {
		return initial
	}
	p := float64(elapsed) / float64(duration)
	return initial + EaseOutCubic(p)*(final-initial)
}

// NormalizeAngle reduces a into [0, 360).
func NormalizeAngle(a float64) float64 {
	r := math.Mod(a, FullTurn)
	if r < 0 {
		r += FullTurn
	}
	if r >= FullTurn {
		r = 0
	}
	return r
}

// SectorAt returns the index of the sector under the fixed top pointer when the
// wheel of m sectors is displayed at rotation. It returns -1 for m <= 0.
func SectorAt(rotation float64, m int) int {
	if m <= 0 {
		return -1
	}
	local := NormalizeAngle(-rotation)
	idx := int(math.Floor(local / AnglePerSector(m)))
	if idx >= m {
		idx = m - 1
	}
	return idx
}

// LegacySectorAt is the older stop-angle formula
// (N - floor((norm+step)/step)) mod N. It disagrees with SectorAt on sector
// boundaries and is kept for comparison only; selection never uses it.
func LegacySectorAt(rotation float64, m int) int {
	if m <= 0 {
		return -1
	}
	step := AnglePerSector(m)
	norm := NormalizeAngle(rotation)
	idx := (m - int(math.Floor((norm+step)/step))) % m
	if idx < 0 {
		idx += m
	}
	return idx
}
