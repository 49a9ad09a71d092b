package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "prize_wheel/internal/api/dto/prize"
	"prize_wheel/internal/model"

	"github.com/go-chi/chi/v5"
)

type stubAdmin struct {
	prizes    map[int]model.Prize
	err       error
	lastPatch model.PrizePatch
	lastEdits []model.PrizeEdit
	reloads   int
	stats     model.WheelStats
}

func (s *stubAdmin) ListPrizes(context.Context) ([]model.Prize, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.Prize, 0, len(s.prizes))
	for id := 1; id <= len(s.prizes); id++ {
		out = append(out, s.prizes[id])
	}
	return out, nil
}

func (s *stubAdmin) UpdatePrize(_ context.Context, id int, patch model.PrizePatch) (*model.Prize, error) {
	s.lastPatch = patch
	if s.err != nil {
		return nil, s.err
	}
	p := s.prizes[id]
	p = patch.Apply(p)
	return &p, nil
}

func (s *stubAdmin) UpdatePrizes(_ context.Context, edits []model.PrizeEdit) ([]model.Prize, error) {
	s.lastEdits = edits
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.Prize, 0, len(edits))
	for _, e := range edits {
		p := s.prizes[e.ID]
		p = e.Patch.Apply(p)
		out = append(out, p)
	}
	return out, nil
}

func (s *stubAdmin) Stats() model.WheelStats { return s.stats }

func (s *stubAdmin) Reload(context.Context) error {
	s.reloads++
	return s.err
}

func newRouter(serv *stubAdmin) chi.Router {
	h := NewHandler(HandlerDeps{Serv: serv})
	r := chi.NewRouter()
	r.Get("/admin/prizes", h.ListPrizes)
	r.Patch("/admin/prizes", h.UpdatePrizes)
	r.Patch("/admin/prizes/{id}", h.UpdatePrize)
	r.Get("/admin/stats", h.Stats)
	r.Post("/admin/reload", h.Reload)
	return r
}

func newStub() *stubAdmin {
	return &stubAdmin{prizes: map[int]model.Prize{
		1: {ID: 1, Name: "Caderno", Quantity: 3, IsActive: true},
		2: {ID: 2, Name: "Cooler", Quantity: 0, IsActive: false},
	}}
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestListPrizes(t *testing.T) {
	rec := do(newRouter(newStub()), http.MethodGet, "/admin/prizes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	var got []dto.PrizeResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[1].IsActive {
		t.Fatalf("unexpected prizes: %+v", got)
	}
}

func TestUpdatePrize(t *testing.T) {
	serv := newStub()
	rec := do(newRouter(serv), http.MethodPatch, "/admin/prizes/2", `{"quantity":5,"isActive":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body)
	}
	var got dto.PrizeResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Quantity != 5 || !got.IsActive {
		t.Fatalf("unexpected prize: %+v", got)
	}
}

func TestUpdatePrizeOnlyQuantity(t *testing.T) {
	serv := newStub()
	do(newRouter(serv), http.MethodPatch, "/admin/prizes/1", `{"quantity":2}`)
	if serv.lastPatch.Quantity == nil || *serv.lastPatch.Quantity != 2 {
		t.Fatalf("unexpected quantity patch: %+v", serv.lastPatch)
	}
	if serv.lastPatch.IsActive != nil {
		t.Fatalf("unexpected isActive patch: got=%v want=nil", *serv.lastPatch.IsActive)
	}
}

func TestUpdatePrizeErrors(t *testing.T) {
	cases := []struct {
		name string
		path string
		body string
		err  error
		want int
	}{
		{name: "bad id", path: "/admin/prizes/x", body: `{}`, want: http.StatusBadRequest},
		{name: "bad body", path: "/admin/prizes/1", body: `{`, want: http.StatusBadRequest},
		{name: "invalid quantity", path: "/admin/prizes/1", body: `{"quantity":-1}`, err: model.ErrInvalidQuantity, want: http.StatusBadRequest},
		{
			name: "store failure",
			path: "/admin/prizes/1",
			body: `{"quantity":1}`,
			err:  &model.UpdateError{Op: "update prize", ID: 1, Err: fmt.Errorf("timeout")},
			want: http.StatusBadGateway,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			serv := newStub()
			serv.err = tc.err
			rec := do(newRouter(serv), http.MethodPatch, tc.path, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.want)
			}
		})
	}
}

func TestUpdatePrizes(t *testing.T) {
	serv := newStub()
	rec := do(newRouter(serv), http.MethodPatch, "/admin/prizes",
		`{"prizes":[{"id":1,"quantity":0},{"id":2,"isActive":true}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if len(serv.lastEdits) != 2 || serv.lastEdits[1].ID != 2 {
		t.Fatalf("unexpected edits: %+v", serv.lastEdits)
	}

	rec = do(newRouter(serv), http.MethodPatch, "/admin/prizes", `{"prizes":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for empty batch: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestStatsAndReload(t *testing.T) {
	serv := newStub()
	serv.stats = model.WheelStats{
		TotalSpins:  4,
		Awards:      []model.PrizeAward{{PrizeID: 1, Name: "Caderno", Count: 4, Frequency: 1}},
		LastAwardAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	r := newRouter(serv)

	rec := do(r, http.MethodGet, "/admin/stats", "")
	var got dto.StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalSpins != 4 || len(got.Awards) != 1 || got.LastAwardAt == nil {
		t.Fatalf("unexpected stats: %+v", got)
	}

	rec = do(r, http.MethodPost, "/admin/reload", "")
	if rec.Code != http.StatusNoContent || serv.reloads != 1 {
		t.Fatalf("unexpected reload: code=%d reloads=%d", rec.Code, serv.reloads)
	}
}
