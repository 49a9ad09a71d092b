package wheel

import (
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func TestTargetAngle(t *testing.T) {
	for m := 1; m <= 12; m++ {
		a := 360.0 / float64(m)
		for k := 0; k < m; k++ {
			want := float64(k)*a + a/2
			if got := TargetAngle(k, m); math.Abs(got-want) > eps {
				t.Fatalf("unexpected target for k=%d m=%d: got=%v want=%v", k, m, got, want)
			}
		}
	}
}

func TestFinalRotation_Example(t *testing.T) {
	target := TargetAngle(2, 4)
	if target != 225 {
		t.Fatalf("unexpected target: got=%v want=225", target)
	}
	if got := FinalRotation(0, 5, target); got != 1935 {
		t.Fatalf("unexpected final rotation: got=%v want=1935", got)
	}
}

func TestFinalRotation_MatchesPlainFormulaFromWholeTurns(t *testing.T) {
	target := TargetAngle(2, 4)
	for _, initial := range []float64{0, 360, 1080, -720} {
		plain := initial + 360*5 + (360 - target)
		if got := FinalRotation(initial, 5, target); got != plain {
			t.Fatalf("unexpected final rotation: initial=%v got=%v want=%v", initial, got, plain)
		}
	}

	// From a start of 135 the plain formula stops on the sector under 225-135.
	plain := 135 + 360*5 + (360 - target)
	if got := SectorAt(plain, 4); got != 1 {
		t.Fatalf("unexpected plain landing: got=%d want=1", got)
	}
	if got := SectorAt(FinalRotation(135, 5, target), 4); got != 2 {
		t.Fatalf("unexpected landing: got=%d want=2", got)
	}
}

func TestFinalRotation_LandsOnTargetFromAnyStart(t *testing.T) {
	starts := []float64{0, 45, 135, 359.5, 1935, -90, 720.25}
	for _, initial := range starts {
		for m := 1; m <= 9; m++ {
			for k := 0; k < m; k++ {
				final := FinalRotation(initial, 5, TargetAngle(k, m))
				if final < initial+5*360 {
					t.Fatalf("final rotation must include the extra turns: initial=%v final=%v", initial, final)
				}
				if final >= initial+6*360 {
					t.Fatalf("final rotation overshoots by a turn: initial=%v final=%v", initial, final)
				}
				if got := SectorAt(final, m); got != k {
					t.Fatalf("landed on wrong sector: initial=%v m=%d got=%d want=%d", initial, m, got, k)
				}
			}
		}
	}
}

func TestRotationAt_MonotonicAndExact(t *testing.T) {
	const duration = 5000 * time.Millisecond
	initial, final := 30.0, 1935.0

	prev := RotationAt(0, initial, final, duration)
	if prev != initial {
		t.Fatalf("unexpected start rotation: got=%v want=%v", prev, initial)
	}
	for ms := 1; ms <= 5000; ms++ {
		cur := RotationAt(time.Duration(ms)*time.Millisecond, initial, final, duration)
		if cur < prev {
			t.Fatalf("rotation decreased at %dms: prev=%v cur=%v", ms, prev, cur)
		}
		prev = cur
	}
	if got := RotationAt(duration, initial, final, duration); got != final {
		t.Fatalf("rotation at duration must be exact: got=%v want=%v", got, final)
	}
	if got := RotationAt(duration+time.Second, initial, final, duration); got != final {
		t.Fatalf("rotation after duration must stay at final: got=%v", got)
	}
}

func TestRotationAt_Midpoint(t *testing.T) {
	// p = 0.5 -> 1 - 0.125 = 0.875
	got := RotationAt(2500*time.Millisecond, 0, 1000, 5000*time.Millisecond)
	if math.Abs(got-875) > eps {
		t.Fatalf("unexpected midpoint rotation: got=%v want=875", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		360:  0,
		1935: 135,
		-90:  270,
		-720: 0,
		359:  359,
	}
	for in, want := range cases {
		if got := NormalizeAngle(in); math.Abs(got-want) > eps {
			t.Fatalf("unexpected normalize(%v): got=%v want=%v", in, got, want)
		}
	}
}

func TestSectorAt(t *testing.T) {
	// Four sectors, rotation 0: the pointer sits on the boundary of sector 0.
	if got := SectorAt(0, 4); got != 0 {
		t.Fatalf("unexpected sector: got=%d want=0", got)
	}
	// Rotating clockwise by 10 degrees brings the end of the last sector under the pointer.
	if got := SectorAt(10, 4); got != 3 {
		t.Fatalf("unexpected sector: got=%d want=3", got)
	}
	if got := SectorAt(1935, 4); got != 2 {
		t.Fatalf("unexpected sector: got=%d want=2", got)
	}
	if got := SectorAt(10, 0); got != -1 {
		t.Fatalf("empty wheel must report -1, got=%d", got)
	}
}

func TestLegacySectorAt_AgreesAtCentersOnly(t *testing.T) {
	for m := 1; m <= 8; m++ {
		for k := 0; k < m; k++ {
			final := FinalRotation(0, 5, TargetAngle(k, m))
			if got := LegacySectorAt(final, m); got != k {
				t.Fatalf("legacy formula disagrees at sector center: m=%d k=%d got=%d", m, k, got)
			}
		}
	}
	// On an exact boundary the legacy formula is off by one.
	if SectorAt(90, 4) == LegacySectorAt(90, 4) {
		t.Fatalf("expected the two formulas to differ on a sector boundary")
	}
}
