package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PickStatus represents the settlement state of a pick
type PickStatus string

const (
	PickStatusPending PickStatus = "pending"
	PickStatusWon     PickStatus = "won"
	PickStatusLost    PickStatus = "lost"
	PickStatusPushed  PickStatus = "pushed"
)

// GradedStatuses are the statuses a settled pick can carry.
var GradedStatuses = []PickStatus{PickStatusWon, PickStatusLost, PickStatusPushed}

// ParsePickStatus validates a status string.
func ParsePickStatus(s string) (PickStatus, error) {
	switch st := PickStatus(s); st {
	case PickStatusPending, PickStatusWon, PickStatusLost, PickStatusPushed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Pick is a single wager recommendation owned by exactly one capper.
type Pick struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	CapperID      uuid.UUID  `db:"capper_id" json:"capper_id"`
	Sport         string     `db:"sport" json:"sport"`
	Matchup       string     `db:"matchup" json:"matchup"`
	PickText      string     `db:"pick_text" json:"pick_text" validate:"required,max=255"`
	Odds          int        `db:"odds" json:"odds" validate:"required"`
	RiskUnits     float64    `db:"risk_units" json:"risk_units" validate:"gte=0"`
	Status        PickStatus `db:"status" json:"status" validate:"required,oneof=pending won lost pushed"`
	GameStartTime *time.Time `db:"game_start_time" json:"game_start_time"`
	SourceURL     *string    `db:"source_url" json:"source_url"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// IsPending reports whether the pick is still open.
func (p *Pick) IsPending() bool {
	return p.Status == PickStatusPending
}

// IsGraded reports whether settlement has assigned a result.
func (p *Pick) IsGraded() bool {
	return p.Status == PickStatusWon || p.Status == PickStatusLost || p.Status == PickStatusPushed
}

// TodaysPick is a pick with its owning capper optionally embedded.
type TodaysPick struct {
	Pick
	Capper *CapperRef `json:"cappers,omitempty"`
}
