// Package dashboard runs the query/render cycle behind the CLI dashboard.
//
// Every refresh is tagged with a sequence number. A completion is applied
// only if no later-issued refresh has already been applied, so the snapshot
// always reflects the most recent request and never an older one that
// happened to finish last.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscout/internal/leaderboard"
	"github.com/yourusername/pickscout/internal/logger"
	"github.com/yourusername/pickscout/internal/metrics"
	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/pickview"
)

const (
	viewLeaderboard = "leaderboard"
	viewToday       = "today"
)

// Source is the part of the query interface the dashboard reads.
type Source interface {
	GetLeaderboard(ctx context.Context, criteria models.FilterCriteria) ([]models.Capper, error)
	GetTodaysPicks(ctx context.Context, criteria models.FilterCriteria) ([]models.TodaysPick, error)
}

// LeaderboardSnapshot is the last applied leaderboard result. On a transport
// failure Cappers is empty and FetchFailed is set.
type LeaderboardSnapshot struct {
	Seq         uint64
	Criteria    models.FilterCriteria
	Cappers     []models.Capper
	FetchFailed bool
	Err         error
	FetchedAt   time.Time
}

// TodaySnapshot is the last applied today's-picks result.
type TodaySnapshot struct {
	Seq         uint64
	Criteria    models.FilterCriteria
	Picks       []models.TodaysPick
	FetchFailed bool
	Err         error
	FetchedAt   time.Time
}

// Board holds the latest dashboard data.
type Board struct {
	source Source
	query  *leaderboard.Query
	log    *logrus.Entry
	now    func() time.Time

	leaderboardIssued atomic.Uint64
	todayIssued       atomic.Uint64

	mu          sync.RWMutex
	leaderboard LeaderboardSnapshot
	today       TodaySnapshot
}

// NewBoard creates a board reading from source.
func NewBoard(source Source, log *logrus.Logger) *Board {
	if log == nil {
		log = logger.Discard()
	}
	return &Board{
		source:      source,
		query:       leaderboard.NewQuery(source),
		log:         log.WithField("component", "dashboard"),
		now:         time.Now,
		leaderboard: LeaderboardSnapshot{Cappers: []models.Capper{}},
		today:       TodaySnapshot{Picks: []models.TodaysPick{}},
	}
}

// RefreshLeaderboard fetches the leaderboard for criteria. It returns the
// snapshot now current and whether this call's result was the one applied.
func (b *Board) RefreshLeaderboard(ctx context.Context, criteria models.FilterCriteria) (LeaderboardSnapshot, bool) {
	seq := b.leaderboardIssued.Add(1)

	start := time.Now()
	cappers, err := b.query.Run(ctx, criteria)
	metrics.RecordFeedFetch(viewLeaderboard, time.Since(start).Seconds(), err != nil)

	next := LeaderboardSnapshot{
		Seq:       seq,
		Criteria:  criteria,
		Cappers:   cappers,
		FetchedAt: b.now(),
	}
	if err != nil {
		b.log.WithError(err).WithField("filter", criteria.Key()).Warn("Leaderboard fetch failed")
		next.Cappers = []models.Capper{}
		next.FetchFailed = true
		next.Err = err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq < b.leaderboard.Seq {
		metrics.RecordStaleResponse(viewLeaderboard)
		b.log.WithFields(logrus.Fields{
			"seq":     seq,
			"applied": b.leaderboard.Seq,
		}).Debug("Discarding stale leaderboard response")
		return b.leaderboard, false
	}
	b.leaderboard = next
	metrics.UpdateLeaderboardSize(len(next.Cappers))
	return next, true
}

// RefreshToday fetches today's picks for criteria with the same
// last-write-wins rule as RefreshLeaderboard.
func (b *Board) RefreshToday(ctx context.Context, criteria models.FilterCriteria) (TodaySnapshot, bool) {
	seq := b.todayIssued.Add(1)

	start := time.Now()
	picks, err := b.source.GetTodaysPicks(ctx, criteria)
	metrics.RecordFeedFetch(viewToday, time.Since(start).Seconds(), err != nil)

	next := TodaySnapshot{
		Seq:       seq,
		Criteria:  criteria,
		FetchedAt: b.now(),
	}
	if err != nil {
		b.log.WithError(err).WithField("filter", criteria.Key()).Warn("Today's picks fetch failed")
		next.Picks = []models.TodaysPick{}
		next.FetchFailed = true
		next.Err = err
	} else {
		next.Picks = leaderboard.FilterPicks(picks, criteria)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq < b.today.Seq {
		metrics.RecordStaleResponse(viewToday)
		return b.today, false
	}
	b.today = next
	metrics.UpdateTodaysPicks(len(next.Picks))
	return next, true
}

// Refresh updates both views concurrently.
func (b *Board) Refresh(ctx context.Context, criteria models.FilterCriteria) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		b.RefreshLeaderboard(ctx, criteria)
	}()
	go func() {
		defer wg.Done()
		b.RefreshToday(ctx, criteria)
	}()
	wg.Wait()
}

// Leaderboard returns the current leaderboard snapshot.
func (b *Board) Leaderboard() LeaderboardSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.leaderboard
}

// Today returns the current today's-picks snapshot.
func (b *Board) Today() TodaySnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.today
}

// Rendered is the dashboard as projected for one unit size.
type Rendered struct {
	UnitSize          float64
	Leaderboard       []pickview.CapperView
	Today             []pickview.TodaysView
	LeaderboardFailed bool
	TodayFailed       bool
}

// Render projects the current snapshots at unitSize. Nothing is cached, so a
// changed unit size is reflected on the next call.
func (b *Board) Render(unitSize float64) (Rendered, error) {
	projector, err := pickview.NewProjector(unitSize)
	if err != nil {
		return Rendered{}, err
	}

	lb := b.Leaderboard()
	today := b.Today()
	return Rendered{
		UnitSize:          unitSize,
		Leaderboard:       projector.ProjectLeaderboard(lb.Cappers),
		Today:             projector.ProjectTodays(today.Picks),
		LeaderboardFailed: lb.FetchFailed,
		TodayFailed:       today.FetchFailed,
	}, nil
}
