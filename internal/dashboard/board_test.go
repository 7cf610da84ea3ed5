package dashboard

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscout/internal/credibility"
	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/oddsmath"
)

type leaderboardReply struct {
	cappers []models.Capper
	err     error
}

// gatedSource blocks each leaderboard call until the test releases it, so
// completion order can be controlled independently of issue order.
type gatedSource struct {
	mu       sync.Mutex
	started  chan string
	gates    map[string]chan leaderboardReply
	today    []models.TodaysPick
	todayErr error
}

func newGatedSource() *gatedSource {
	return &gatedSource{
		started: make(chan string, 8),
		gates:   make(map[string]chan leaderboardReply),
	}
}

func (g *gatedSource) gate(key string) chan leaderboardReply {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[key]
	if !ok {
		ch = make(chan leaderboardReply, 1)
		g.gates[key] = ch
	}
	return ch
}

func (g *gatedSource) GetLeaderboard(ctx context.Context, criteria models.FilterCriteria) ([]models.Capper, error) {
	ch := g.gate(criteria.Key())
	g.started <- criteria.Key()
	reply := <-ch
	return reply.cappers, reply.err
}

func (g *gatedSource) GetTodaysPicks(ctx context.Context, criteria models.FilterCriteria) ([]models.TodaysPick, error) {
	return g.today, g.todayErr
}

func mkCapper(name string, tier credibility.Tier, units float64, picks ...models.Pick) models.Capper {
	return models.Capper{
		ID:            uuid.New(),
		Username:      name,
		Platform:      models.PlatformReddit,
		TotalWins:     7,
		TotalLosses:   3,
		TotalUnitsWon: units,
		Credibility:   tier,
		ActivePicks:   picks,
	}
}

func pending(sport string, odds int, risk float64) models.Pick {
	return models.Pick{ID: uuid.New(), Sport: sport, PickText: sport + " pick", Odds: odds, RiskUnits: risk, Status: models.PickStatusPending}
}

func criteriaFor(t *testing.T, sport, tier string) models.FilterCriteria {
	t.Helper()
	c, err := models.NewFilterCriteria(sport, tier)
	require.NoError(t, err)
	return c
}

func TestRefreshLeaderboardAppliesResult(t *testing.T) {
	src := newGatedSource()
	board := NewBoard(src, nil)
	all := criteriaFor(t, "", "")

	src.gate(all.Key()) <- leaderboardReply{cappers: []models.Capper{
		mkCapper("a", credibility.Verified, 10),
		mkCapper("b", credibility.Suspicious, 5),
	}}

	snap, applied := board.RefreshLeaderboard(context.Background(), all)
	assert.True(t, applied)
	assert.False(t, snap.FetchFailed)
	assert.Len(t, snap.Cappers, 2)
	assert.Equal(t, uint64(1), snap.Seq)
	assert.Equal(t, snap, board.Leaderboard())
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	src := newGatedSource()
	board := NewBoard(src, nil)
	first := criteriaFor(t, "Hockey", "")
	second := criteriaFor(t, "Basketball", "")

	results := make(chan bool, 2)
	go func() {
		_, applied := board.RefreshLeaderboard(context.Background(), first)
		results <- applied
	}()
	require.Equal(t, first.Key(), <-src.started)

	go func() {
		_, applied := board.RefreshLeaderboard(context.Background(), second)
		results <- applied
	}()
	require.Equal(t, second.Key(), <-src.started)

	// The later request completes first and is applied.
	src.gate(second.Key()) <- leaderboardReply{cappers: []models.Capper{
		mkCapper("hooper", credibility.Verified, 3, pending("Basketball", -110, 1)),
	}}
	require.True(t, <-results)

	// The earlier request completes last and must not overwrite it.
	src.gate(first.Key()) <- leaderboardReply{cappers: []models.Capper{
		mkCapper("skater", credibility.Verified, 9, pending("Hockey", 140, 1)),
	}}
	require.False(t, <-results)

	snap := board.Leaderboard()
	assert.Equal(t, uint64(2), snap.Seq)
	require.Len(t, snap.Cappers, 1)
	assert.Equal(t, "hooper", snap.Cappers[0].Username)
	assert.Equal(t, second, snap.Criteria)
}

func TestTransportFailureYieldsEmptyFlaggedSnapshot(t *testing.T) {
	src := newGatedSource()
	board := NewBoard(src, nil)
	all := criteriaFor(t, "", "")

	src.gate(all.Key()) <- leaderboardReply{cappers: []models.Capper{mkCapper("a", credibility.Verified, 1)}}
	board.RefreshLeaderboard(context.Background(), all)

	boom := errors.New("dial tcp: connection refused")
	src.gate(all.Key()) <- leaderboardReply{err: boom}
	snap, applied := board.RefreshLeaderboard(context.Background(), all)

	assert.True(t, applied)
	assert.True(t, snap.FetchFailed)
	assert.ErrorIs(t, snap.Err, boom)
	assert.NotNil(t, snap.Cappers)
	assert.Empty(t, snap.Cappers)
}

func TestRefreshLeaderboardReappliesFilter(t *testing.T) {
	src := newGatedSource()
	board := NewBoard(src, nil)
	criteria := criteriaFor(t, "Basketball", "verified")

	// A source that ignores the filter still yields conformant output.
	src.gate(criteria.Key()) <- leaderboardReply{cappers: []models.Capper{
		mkCapper("c1", credibility.Verified, 5, pending("Hockey", -110, 1)),
		mkCapper("c2", credibility.Unverified, 4, pending("Basketball", -110, 1)),
		mkCapper("c3", credibility.Verified, 3, pending("basketball", -110, 1)),
	}}

	snap, _ := board.RefreshLeaderboard(context.Background(), criteria)
	require.Len(t, snap.Cappers, 1)
	assert.Equal(t, "c3", snap.Cappers[0].Username)
}

func TestRefreshToday(t *testing.T) {
	verified := mkCapper("v", credibility.Verified, 1)
	src := newGatedSource()
	src.today = []models.TodaysPick{
		{Pick: pending("Esports", -145, 5), Capper: verified.Ref()},
		{Pick: pending("Esports", 120, 1)},
	}
	board := NewBoard(src, nil)

	snap, applied := board.RefreshToday(context.Background(), criteriaFor(t, "esports", "verified"))
	require.True(t, applied)
	require.Len(t, snap.Picks, 1, "picks without a capper never satisfy a credibility filter")

	src.todayErr = errors.New("timeout")
	snap, applied = board.RefreshToday(context.Background(), criteriaFor(t, "", ""))
	assert.True(t, applied)
	assert.True(t, snap.FetchFailed)
	assert.Empty(t, snap.Picks)
}

func TestRenderRecomputesForUnitSize(t *testing.T) {
	src := newGatedSource()
	board := NewBoard(src, nil)
	all := criteriaFor(t, "", "")

	src.gate(all.Key()) <- leaderboardReply{cappers: []models.Capper{
		mkCapper("a", credibility.Verified, -2.5, pending("Basketball", 150, 1), pending("Hockey", -110, 1)),
	}}
	src.today = []models.TodaysPick{{Pick: pending("Basketball", 150, 1)}}
	board.Refresh(context.Background(), all)

	five, err := board.Render(5)
	require.NoError(t, err)
	require.Len(t, five.Leaderboard, 1)
	assert.Equal(t, "7.5", five.Leaderboard[0].Picks[0].ProfitIfWon.String())
	assert.InDelta(t, -12.5, five.Leaderboard[0].Summary.ImpliedProfit, 1e-9)

	twenty, err := board.Render(20)
	require.NoError(t, err)
	assert.Equal(t, "30", twenty.Leaderboard[0].Picks[0].ProfitIfWon.String())
	assert.InDelta(t, -50, twenty.Leaderboard[0].Summary.ImpliedProfit, 1e-9)
	assert.Len(t, twenty.Today, 1)

	_, err = board.Render(0)
	assert.ErrorIs(t, err, oddsmath.ErrInvalidUnitSize)
}

func TestWriteLeaderboardAndToday(t *testing.T) {
	src := newGatedSource()
	board := NewBoard(src, nil)
	all := criteriaFor(t, "", "")

	zero := pending("Hockey", 0, 1)
	src.gate(all.Key()) <- leaderboardReply{cappers: []models.Capper{
		mkCapper("LolPropKing1", credibility.Verified, 105.84, pending("Basketball", 150, 1), zero),
	}}
	src.today = []models.TodaysPick{{Pick: pending("Basketball", -110, 1)}}
	board.Refresh(context.Background(), all)

	r, err := board.Render(10)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteLeaderboard(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "LolPropKing1")
	assert.Contains(t, out, "70.0%")
	assert.Contains(t, out, "+105.84u")
	assert.Contains(t, out, "$1058.40")
	assert.Contains(t, out, "$15.00")
	assert.Contains(t, out, "invalid odds")

	buf.Reset()
	require.NoError(t, WriteToday(&buf, r))
	assert.Contains(t, buf.String(), "-110")
	assert.Contains(t, buf.String(), "$9.09")
	assert.Contains(t, buf.String(), "Total if all win: $9.09")
}

func TestWriteFailedViews(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLeaderboard(&buf, Rendered{UnitSize: 5, LeaderboardFailed: true}))
	assert.Contains(t, buf.String(), "temporarily unavailable")

	buf.Reset()
	require.NoError(t, WritePicks(&buf, "Recent", nil))
	assert.Contains(t, buf.String(), "No picks.")
}
