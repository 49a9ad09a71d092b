package wheel_stats_repo

import (
	"slices"
	"sync"
	"time"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"
)

type award struct {
	name  string
	count int
}

// StatsRepo keeps award counts in memory. Counts reset on restart.
type StatsRepo struct {
	mtx    sync.RWMutex
	total  int
	awards map[int]*award
	last   time.Time
	now    func() time.Time
}

func NewWheelStatsRepository() repository.WheelStatsRepository {
	return &StatsRepo{
		awards: make(map[int]*award),
		now:    time.Now,
	}
}

// RecordAward counts one finished spin for prize
func (r *StatsRepo) RecordAward(prize model.Prize) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	a, ok := r.awards[prize.ID]
	if !ok {
		a = &award{}
		r.awards[prize.ID] = a
	}
	a.name = prize.Name
	a.count++
	r.total++
	r.last = r.now()
}

// Snapshot returns a copy of the counters with the empirical frequency of each
// prize, ordered by prize id.
func (r *StatsRepo) Snapshot() model.WheelStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	stats := model.WheelStats{
		TotalSpins:  r.total,
		Awards:      make([]model.PrizeAward, 0, len(r.awards)),
		LastAwardAt: r.last,
	}
	for id, a := range r.awards {
		freq := 0.0
		if r.total > 0 {
			freq = float64(a.count) / float64(r.total)
		}
		stats.Awards = append(stats.Awards, model.PrizeAward{
			PrizeID:   id,
			Name:      a.name,
			Count:     a.count,
			Frequency: freq,
		})
	}
	slices.SortFunc(stats.Awards, func(a, b model.PrizeAward) int { return a.PrizeID - b.PrizeID })
	return stats
}

func (r *StatsRepo) Reset() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.total = 0
	r.awards = make(map[int]*award)
	r.last = time.Time{}
}
