// Package credibility interprets the trust tier carried on every capper record.
//
// Tiers are assigned upstream by the ingestion pipeline. This package never
// derives a tier from raw signals; it only parses, orders and matches them.
package credibility

import (
	"errors"
	"fmt"
)

// Tier is the trust classification of a capper's track record.
type Tier string

const (
	Verified   Tier = "verified"
	Unverified Tier = "unverified"
	Suspicious Tier = "suspicious"
)

// ErrUnknownTier is returned when a value outside the closed tier set is parsed.
var ErrUnknownTier = errors.New("unknown credibility tier")

var ranks = map[Tier]int{
	Verified:   0,
	Unverified: 1,
	Suspicious: 2,
}

// All returns every tier in rank order.
func All() []Tier {
	return []Tier{Verified, Unverified, Suspicious}
}

// Parse converts s into a Tier. Matching is exact: no trimming or case folding.
func Parse(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

// Valid reports whether t is one of the three known tiers.
func (t Tier) Valid() bool {
	_, ok := ranks[t]
	return ok
}

// Rank returns the position of t in the ordered set, or -1 for unknown values.
func (t Tier) Rank() int {
	if r, ok := ranks[t]; ok {
		return r
	}
	return -1
}

// Matches reports whether t satisfies a filter for want.
func (t Tier) Matches(want Tier) bool {
	return t.Valid() && t == want
}

func (t Tier) String() string {
	return string(t)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, string(t))
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
