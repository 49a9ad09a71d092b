package outcome

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository/wheel_stats_repo"
	"prize_wheel/internal/service/catalog"
	"prize_wheel/internal/service/servicetest"
	"prize_wheel/internal/wheel"
)

func newReporter(t *testing.T, repo *servicetest.PrizeRepo) (*reporter, *servicetest.PrizeRepo) {
	t.Helper()
	cat := catalog.NewService(repo, nil, wheel.SectorsAll)
	r, err := NewReporter(cat, wheel_stats_repo.NewWheelStatsRepository(), 2, time.Second)
	if err != nil {
		t.Fatalf("NewReporter failed: %v", err)
	}
	t.Cleanup(r.Close)
	return r.(*reporter), repo
}

func TestReport_Decrements(t *testing.T) {
	prize := model.Prize{ID: 7, Name: "Cooler", Quantity: 3, IsActive: true}
	r, repo := newReporter(t, servicetest.NewPrizeRepo(prize))

	r.Report(model.Outcome{SpinID: "s1", Prize: prize})
	r.Wait()

	if got := repo.Prize(7).Quantity; got != 2 {
		t.Fatalf("unexpected quantity: got=%d want=2", got)
	}
	stats := r.stats.Snapshot()
	if stats.TotalSpins != 1 || stats.Awards[0].PrizeID != 7 {
		t.Fatalf("award not recorded: %+v", stats)
	}
}

func TestReport_SequentialAwards(t *testing.T) {
	prize := model.Prize{ID: 1, Name: "Caderno", Quantity: 5, IsActive: true}
	r, repo := newReporter(t, servicetest.NewPrizeRepo(prize))

	for i := 0; i < 3; i++ {
		r.Report(model.Outcome{Prize: prize})
		r.Wait()
	}
	if got := repo.Prize(1).Quantity; got != 2 {
		t.Fatalf("unexpected quantity: got=%d want=2", got)
	}
}

func TestReport_NoFloorAtZero(t *testing.T) {
	prize := model.Prize{ID: 1, Name: "Viseira", Quantity: 0, IsActive: true}
	r, repo := newReporter(t, servicetest.NewPrizeRepo(prize))

	r.Report(model.Outcome{Prize: prize})
	r.Wait()
	if got := repo.Prize(1).Quantity; got != -1 {
		t.Fatalf("unexpected quantity: got=%d want=-1", got)
	}
}

func TestReport_ReadFailureSkipsWrite(t *testing.T) {
	prize := model.Prize{ID: 1, Name: "Cooler", Quantity: 3, IsActive: true}
	repo := servicetest.NewPrizeRepo(prize)
	repo.GetQuantityErr = errors.New("timeout")
	r, _ := newReporter(t, repo)

	r.Report(model.Outcome{Prize: prize})
	r.Wait()
	if repo.Updates != 0 {
		t.Fatalf("write must not happen after a failed read")
	}
	if repo.Prize(1).Quantity != 3 {
		t.Fatalf("quantity must be unchanged")
	}
	if r.stats.Snapshot().TotalSpins != 1 {
		t.Fatalf("award should be counted even when the store fails")
	}
}

func TestReport_WriteFailureIsSwallowed(t *testing.T) {
	prize := model.Prize{ID: 1, Name: "Cooler", Quantity: 3, IsActive: true}
	repo := servicetest.NewPrizeRepo(prize)
	repo.UpdateErr = errors.New("read only")
	r, _ := newReporter(t, repo)

	r.Report(model.Outcome{Prize: prize})
	r.Wait()
	if q, _ := repo.GetQuantity(context.Background(), 1); q != 3 {
		t.Fatalf("unexpected quantity: %d", q)
	}
}

func TestReport_AfterCloseIsDropped(t *testing.T) {
	prize := model.Prize{ID: 1, Name: "Cooler", Quantity: 3, IsActive: true}
	r, repo := newReporter(t, servicetest.NewPrizeRepo(prize))

	r.Close()
	r.Report(model.Outcome{SpinID: "late", Prize: prize})
	r.Close()

	if got := repo.Prize(1).Quantity; got != 3 {
		t.Fatalf("unexpected quantity: got=%d want=3", got)
	}
	if got := r.stats.Snapshot().TotalSpins; got != 0 {
		t.Fatalf("late outcome should not be counted: got=%d", got)
	}
}

func TestReport_ConcurrentWithClose(t *testing.T) {
	prize := model.Prize{ID: 1, Name: "Caderno", Quantity: 100, IsActive: true}
	r, repo := newReporter(t, servicetest.NewPrizeRepo(prize))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Report(model.Outcome{Prize: prize})
		}()
	}
	r.Close()
	wg.Wait()

	// Every counted award was decremented before Close returned or not at all.
	counted := r.stats.Snapshot().TotalSpins
	if got := repo.Prize(1).Quantity; got < 100-counted || got > 100 {
		t.Fatalf("unexpected quantity: got=%d counted=%d", got, counted)
	}
}
