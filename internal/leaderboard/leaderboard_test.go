package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscout/internal/credibility"
	"github.com/yourusername/pickscout/internal/models"
)

func ptr[T any](v T) *T { return &v }

func newCapper(n int, tier credibility.Tier, units float64, sports ...string) models.Capper {
	c := models.Capper{
		ID:            uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n)),
		Username:      fmt.Sprintf("capper%d", n),
		Platform:      models.PlatformReddit,
		Credibility:   tier,
		TotalUnitsWon: units,
	}
	for _, s := range sports {
		c.ActivePicks = append(c.ActivePicks, models.Pick{
			ID:       uuid.New(),
			CapperID: c.ID,
			Sport:    s,
			Odds:     -110,
			Status:   models.PickStatusPending,
		})
	}
	return c
}

// tenCappers has exactly two verified cappers with an active Basketball pick: #3 and #8.
func tenCappers() []models.Capper {
	return []models.Capper{
		newCapper(1, credibility.Verified, 50, "Hockey"),
		newCapper(2, credibility.Unverified, 40, "Basketball"),
		newCapper(3, credibility.Verified, 30, "Football", "Basketball"),
		newCapper(4, credibility.Suspicious, 25, "Basketball"),
		newCapper(5, credibility.Verified, 20),
		newCapper(6, credibility.Unverified, 10, "Soccer"),
		newCapper(7, credibility.Verified, 5, "Esports"),
		newCapper(8, credibility.Verified, -1, "basketball"),
		newCapper(9, credibility.Suspicious, -5, "Tennis"),
		newCapper(10, credibility.Unverified, -9, "Baseball"),
	}
}

func usernames(cappers []models.Capper) []string {
	out := make([]string, len(cappers))
	for i := range cappers {
		out[i] = cappers[i].Username
	}
	return out
}

func TestFilterSportAndCredibility(t *testing.T) {
	criteria := models.FilterCriteria{
		Sport:       ptr("Basketball"),
		Credibility: ptr(credibility.Verified),
	}

	got := Filter(tenCappers(), criteria)
	assert.Equal(t, []string{"capper3", "capper8"}, usernames(got))
}

func TestFilterNoCriteriaKeepsEverythingInOrder(t *testing.T) {
	in := tenCappers()
	got := Filter(in, models.FilterCriteria{})
	assert.Equal(t, usernames(in), usernames(got))
}

func TestFilterByEachTier(t *testing.T) {
	for _, tier := range credibility.All() {
		got := Filter(tenCappers(), models.FilterCriteria{Credibility: ptr(tier)})
		require.NotEmpty(t, got)
		for _, c := range got {
			assert.Equal(t, tier, c.Credibility)
		}
	}
}

func TestFilterIsIdempotentAndPure(t *testing.T) {
	in := tenCappers()
	before := usernames(in)
	criteria := models.FilterCriteria{Sport: ptr("Basketball")}

	first := Filter(in, criteria)
	second := Filter(in, criteria)
	again := Filter(first, criteria)

	assert.Equal(t, first, second)
	assert.Equal(t, first, again)
	assert.Equal(t, before, usernames(in))
}

func TestFilterSportWithoutActivePicks(t *testing.T) {
	got := Filter(tenCappers(), models.FilterCriteria{Sport: ptr("Curling")})
	assert.Empty(t, got)

	// Capper 5 has no picks, so any sport filter excludes it.
	for _, c := range Filter(tenCappers(), models.FilterCriteria{Sport: ptr("Hockey")}) {
		assert.NotEqual(t, "capper5", c.Username)
	}
}

func TestFilterPicks(t *testing.T) {
	verified := &models.CapperRef{Credibility: credibility.Verified}
	suspicious := &models.CapperRef{Credibility: credibility.Suspicious}

	picks := []models.TodaysPick{
		{Pick: models.Pick{PickText: "a", Sport: "Hockey"}, Capper: verified},
		{Pick: models.Pick{PickText: "b", Sport: "hockey"}, Capper: suspicious},
		{Pick: models.Pick{PickText: "c", Sport: "Soccer"}, Capper: verified},
		{Pick: models.Pick{PickText: "d", Sport: "Hockey"}},
	}

	texts := func(ps []models.TodaysPick) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.PickText)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "d"}, texts(FilterPicks(picks, models.FilterCriteria{Sport: ptr("HOCKEY")})))
	assert.Equal(t, []string{"a", "c"}, texts(FilterPicks(picks, models.FilterCriteria{Credibility: ptr(credibility.Verified)})))
	assert.Equal(t, []string{"a"}, texts(FilterPicks(picks, models.FilterCriteria{
		Sport:       ptr("Hockey"),
		Credibility: ptr(credibility.Verified),
	})))
	assert.Len(t, FilterPicks(picks, models.FilterCriteria{}), 4)
}

func TestSortCanonical(t *testing.T) {
	a := newCapper(1, credibility.Verified, 10)
	a.TotalWins, a.TotalLosses = 5, 5
	b := newCapper(2, credibility.Verified, 10)
	b.TotalWins, b.TotalLosses = 7, 3
	c := newCapper(3, credibility.Verified, 25)
	d := newCapper(4, credibility.Verified, 10)
	d.TotalWins, d.TotalLosses = 5, 5
	e := newCapper(5, credibility.Verified, 10)
	f := newCapper(6, credibility.Verified, -3)

	in := []models.Capper{f, e, d, a, c, b}
	got := SortCanonical(in, 10)

	assert.Equal(t, []string{"capper3", "capper2", "capper1", "capper4", "capper5", "capper6"}, usernames(got))
	assert.Equal(t, "capper6", in[0].Username, "input must not be reordered")
}

type fakeSource struct {
	cappers []models.Capper
	err     error
	calls   int
}

func (f *fakeSource) GetLeaderboard(ctx context.Context, criteria models.FilterCriteria) ([]models.Capper, error) {
	f.calls++
	return f.cappers, f.err
}

func TestQueryReappliesPredicateAndKeepsOrder(t *testing.T) {
	// Source ignores filters and returns a non-canonical order.
	in := tenCappers()
	in[2], in[7] = in[7], in[2]
	src := &fakeSource{cappers: in}

	q := NewQuery(src)
	criteria := models.FilterCriteria{Sport: ptr("Basketball"), Credibility: ptr(credibility.Verified)}

	got, err := q.Run(context.Background(), criteria)
	require.NoError(t, err)
	assert.Equal(t, []string{"capper8", "capper3"}, usernames(got))

	again, err := q.Run(context.Background(), criteria)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 2, src.calls)
}

func TestQueryPropagatesSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewQuery(&fakeSource{err: boom}).Run(context.Background(), models.FilterCriteria{})
	assert.ErrorIs(t, err, boom)
}

func TestNarrowPicks(t *testing.T) {
	cappers := tenCappers()
	criteria := models.FilterCriteria{Sport: ptr("Basketball")}

	narrowed := NarrowPicks(cappers, criteria)
	require.Len(t, narrowed, len(cappers))

	require.Len(t, narrowed[2].ActivePicks, 1)
	assert.Equal(t, "Basketball", narrowed[2].ActivePicks[0].Sport)
	assert.Empty(t, narrowed[0].ActivePicks)
	assert.Len(t, cappers[2].ActivePicks, 2, "input must not be modified")

	assert.Equal(t, []string{"capper2", "capper3", "capper4", "capper8"}, usernames(Filter(narrowed, criteria)))

	unchanged := NarrowPicks(cappers, models.FilterCriteria{})
	assert.Equal(t, cappers, unchanged)
}
