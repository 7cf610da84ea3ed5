package models

import (
	"net/url"
	"strings"

	"github.com/yourusername/pickscout/internal/credibility"
)

// FilterCriteria narrows a leaderboard or pick query. Nil fields do not filter.
type FilterCriteria struct {
	Sport       *string
	Credibility *credibility.Tier
}

// NewFilterCriteria builds criteria from optional raw values; empty strings mean absent.
func NewFilterCriteria(sport, tier string) (FilterCriteria, error) {
	var fc FilterCriteria
	if s := strings.TrimSpace(sport); s != "" {
		fc.Sport = &s
	}
	if tier != "" {
		t, err := credibility.Parse(tier)
		if err != nil {
			return FilterCriteria{}, err
		}
		fc.Credibility = &t
	}
	return fc, nil
}

// Values encodes the criteria as query parameters.
func (fc FilterCriteria) Values() url.Values {
	v := url.Values{}
	if fc.Sport != nil {
		v.Set("sport", *fc.Sport)
	}
	if fc.Credibility != nil {
		v.Set("credibility", fc.Credibility.String())
	}
	return v
}

// Key is a stable string form for cache keys and logs.
func (fc FilterCriteria) Key() string {
	sport, tier := "*", "*"
	if fc.Sport != nil {
		sport = strings.ToLower(*fc.Sport)
	}
	if fc.Credibility != nil {
		tier = fc.Credibility.String()
	}
	return sport + "|" + tier
}
