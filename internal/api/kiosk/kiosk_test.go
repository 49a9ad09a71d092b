package kiosk

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dto "prize_wheel/internal/api/dto/kiosk"
	"prize_wheel/internal/model"
	kioskserv "prize_wheel/internal/service/kiosk"
)

type stubKiosk struct {
	state    model.KioskState
	status   model.SpinStatus
	spinErr  error
	outcome  *model.Outcome
	rotation *float64
}

func (s *stubKiosk) Enter(context.Context) (model.KioskState, error) {
	return s.state, nil
}

func (s *stubKiosk) Spin(context.Context) (model.SpinStatus, error) {
	return s.status, s.spinErr
}

func (s *stubKiosk) Back(context.Context) (model.KioskState, error) {
	return s.state, nil
}

func (s *stubKiosk) State() model.KioskState {
	return s.state
}

func (s *stubKiosk) Result() (*model.Outcome, bool) {
	return s.outcome, s.outcome != nil
}

func (s *stubKiosk) Frame(_ context.Context, rotation *float64) (*image.RGBA, error) {
	s.rotation = rotation
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (s *stubKiosk) Reload(context.Context) error {
	return nil
}

func (s *stubKiosk) CachedPrize(int) (model.Prize, bool) {
	return model.Prize{}, false
}

func (s *stubKiosk) ApplyPrizeEdit(model.Prize) bool {
	return false
}

func TestSpinStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		status model.SpinStatus
		err    error
		want   int
	}{
		{name: "started", status: model.SpinStatus{Started: true, SpinID: "s1", Duration: 5 * time.Second}, want: http.StatusAccepted},
		{name: "ignored", status: model.SpinStatus{Reason: "no_prizes"}, want: http.StatusOK},
		{name: "busy", err: kioskserv.ErrSpinInProgress, want: http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(HandlerDeps{Serv: &stubKiosk{status: tc.status, spinErr: tc.err}})
			rec := httptest.NewRecorder()
			h.Spin(rec, httptest.NewRequest(http.MethodPost, "/kiosk/spin", nil))
			if rec.Code != tc.want {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.want)
			}
		})
	}
}

func TestSpinBody(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &stubKiosk{status: model.SpinStatus{
		Started:       true,
		SpinID:        "s1",
		SpinCount:     5,
		FinalRotation: 1935,
		Duration:      5 * time.Second,
	}}})
	rec := httptest.NewRecorder()
	h.Spin(rec, httptest.NewRequest(http.MethodPost, "/kiosk/spin", nil))

	var got dto.SpinResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.FinalRotation != 1935 || got.DurationMs != 5000 || got.SpinID != "s1" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestResult(t *testing.T) {
	serv := &stubKiosk{}
	h := NewHandler(HandlerDeps{Serv: serv})

	rec := httptest.NewRecorder()
	h.Result(rec, httptest.NewRequest(http.MethodGet, "/kiosk/result", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status without outcome: got=%d want=%d", rec.Code, http.StatusNotFound)
	}

	serv.outcome = &model.Outcome{
		SpinID:    "s1",
		Prize:     model.Prize{ID: 7, Name: "Cooler", Color: "#1e3a8a"},
		TextColor: "#ffffff",
	}
	rec = httptest.NewRecorder()
	h.Result(rec, httptest.NewRequest(http.MethodGet, "/kiosk/result", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	var got dto.OutcomeResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 7 || got.Name != "Cooler" || got.TextColor != "#ffffff" {
		t.Fatalf("unexpected outcome: %+v", got)
	}
}

func TestWheelPNG(t *testing.T) {
	serv := &stubKiosk{}
	h := NewHandler(HandlerDeps{Serv: serv})

	rec := httptest.NewRecorder()
	h.WheelPNG(rec, httptest.NewRequest(http.MethodGet, "/kiosk/wheel.png?rotation=90", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type: got=%q", ct)
	}
	if serv.rotation == nil || *serv.rotation != 90 {
		t.Fatalf("unexpected rotation: got=%v want=90", serv.rotation)
	}

}

func TestWheelPNG_RejectsBadRotation(t *testing.T) {
	for _, q := range []string{"abc", "NaN", "nan", "Inf", "-Inf", "+Infinity"} {
		serv := &stubKiosk{}
		h := NewHandler(HandlerDeps{Serv: serv})

		rec := httptest.NewRecorder()
		h.WheelPNG(rec, httptest.NewRequest(http.MethodGet, "/kiosk/wheel.png?rotation="+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("unexpected status for %q: got=%d want=%d", q, rec.Code, http.StatusBadRequest)
		}
		if serv.rotation != nil {
			t.Fatalf("rotation %q reached the renderer", q)
		}
	}
}

func TestState(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &stubKiosk{state: model.KioskState{
		Screen:         model.ScreenWheel,
		Sectors:        []model.Prize{{ID: 1, Name: "Caderno"}},
		SpinnableCount: 1,
	}}})
	rec := httptest.NewRecorder()
	h.State(rec, httptest.NewRequest(http.MethodGet, "/kiosk/state", nil))

	var got dto.StateResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Screen != "wheel" || len(got.Sectors) != 1 || got.SpinnableCount != 1 {
		t.Fatalf("unexpected state: %+v", got)
	}
}
