// Package leaderboard filters and orders capper collections for display.
//
// The predicate here is the single definition used by the API server and by
// any client-side filtering, so both sides return the same set.
package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/record"
)

// Matches reports whether c satisfies criteria.
func Matches(c *models.Capper, criteria models.FilterCriteria) bool {
	if criteria.Credibility != nil && !c.Credibility.Matches(*criteria.Credibility) {
		return false
	}
	if criteria.Sport == nil {
		return true
	}
	for i := range c.ActivePicks {
		if sportEqual(c.ActivePicks[i].Sport, *criteria.Sport) {
			return true
		}
	}
	return false
}

// Filter returns the matching cappers in their original order. The input is not modified.
func Filter(cappers []models.Capper, criteria models.FilterCriteria) []models.Capper {
	out := make([]models.Capper, 0, len(cappers))
	for i := range cappers {
		if Matches(&cappers[i], criteria) {
			out = append(out, cappers[i])
		}
	}
	return out
}

// NarrowPicks returns copies of cappers whose active picks are limited to the
// criteria's sport. Cappers left with no picks are kept; Filter drops them.
func NarrowPicks(cappers []models.Capper, criteria models.FilterCriteria) []models.Capper {
	out := make([]models.Capper, len(cappers))
	copy(out, cappers)
	if criteria.Sport == nil {
		return out
	}
	for i := range out {
		picks := make([]models.Pick, 0, len(out[i].ActivePicks))
		for _, p := range out[i].ActivePicks {
			if sportEqual(p.Sport, *criteria.Sport) {
				picks = append(picks, p)
			}
		}
		out[i].ActivePicks = picks
	}
	return out
}

// MatchesPick reports whether a today's-pick row satisfies criteria. A row
// without an embedded capper never satisfies a credibility filter.
func MatchesPick(p *models.TodaysPick, criteria models.FilterCriteria) bool {
	if criteria.Sport != nil && !sportEqual(p.Sport, *criteria.Sport) {
		return false
	}
	if criteria.Credibility != nil {
		if p.Capper == nil || !p.Capper.Credibility.Matches(*criteria.Credibility) {
			return false
		}
	}
	return true
}

// FilterPicks returns the matching picks in their original order.
func FilterPicks(picks []models.TodaysPick, criteria models.FilterCriteria) []models.TodaysPick {
	out := make([]models.TodaysPick, 0, len(picks))
	for i := range picks {
		if MatchesPick(&picks[i], criteria) {
			out = append(out, picks[i])
		}
	}
	return out
}

// SortCanonical returns a copy ordered by implied profit desc, then win rate
// desc, then ID asc. Use it only where no upstream order exists.
func SortCanonical(cappers []models.Capper, unitSize float64) []models.Capper {
	out := make([]models.Capper, len(cappers))
	copy(out, cappers)

	sort.SliceStable(out, func(i, j int) bool {
		pi := record.ImpliedProfit(&out[i], unitSize)
		pj := record.ImpliedProfit(&out[j], unitSize)
		if pi != pj {
			return pi > pj
		}
		ri := record.WinRate(out[i].TotalWins, out[i].TotalLosses)
		rj := record.WinRate(out[j].TotalWins, out[j].TotalLosses)
		if ri != rj {
			return rj.Less(ri)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func sportEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Source is the leaderboard half of the remote query interface.
type Source interface {
	GetLeaderboard(ctx context.Context, criteria models.FilterCriteria) ([]models.Capper, error)
}

// Query fetches from a Source and re-applies the predicate locally, keeping
// the source's order.
type Query struct {
	source Source
}

// NewQuery creates a leaderboard query over source.
func NewQuery(source Source) *Query {
	return &Query{source: source}
}

// Run executes the query.
func (q *Query) Run(ctx context.Context, criteria models.FilterCriteria) ([]models.Capper, error) {
	cappers, err := q.source.GetLeaderboard(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	return Filter(cappers, criteria), nil
}
