package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/pickscout/internal/credibility"
)

// Platform is where a capper posts picks.
type Platform string

const (
	PlatformReddit  Platform = "Reddit"
	PlatformDiscord Platform = "Discord"
)

// ParsePlatform validates a platform name.
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(s); p {
	case PlatformReddit, PlatformDiscord:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
}

// Capper represents a tracked pick-maker together with the picks it currently has open.
//
// The win, loss and units counters are written by settlement only; nothing in
// this module mutates them.
type Capper struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	Username      string           `db:"username" json:"username" validate:"required"`
	DisplayName   string           `db:"display_name" json:"display_name"`
	Platform      Platform         `db:"platform" json:"platform" validate:"required,oneof=Reddit Discord"`
	ProfileURL    *string          `db:"profile_url" json:"profile_url"`
	TotalWins     int              `db:"total_wins" json:"total_wins" validate:"gte=0"`
	TotalLosses   int              `db:"total_losses" json:"total_losses" validate:"gte=0"`
	TotalUnitsWon float64          `db:"total_units_won" json:"total_units_won"`
	Credibility   credibility.Tier `db:"credibility" json:"credibility" validate:"required"`
	LastActive    time.Time        `db:"last_active" json:"last_active"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	ActivePicks   []Pick           `db:"-" json:"active_picks"`
}

// Name returns the display name, falling back to the username.
func (c *Capper) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Username
}

// Ref returns the non-owning summary embedded in pick responses.
func (c *Capper) Ref() *CapperRef {
	return &CapperRef{
		ID:            c.ID,
		Username:      c.Username,
		DisplayName:   c.DisplayName,
		Platform:      c.Platform,
		ProfileURL:    c.ProfileURL,
		TotalWins:     c.TotalWins,
		TotalLosses:   c.TotalLosses,
		TotalUnitsWon: c.TotalUnitsWon,
		Credibility:   c.Credibility,
	}
}

// CapperRef is a capper summary without picks. A pick carries one of these
// instead of a full Capper so the graph stays one-directional.
type CapperRef struct {
	ID            uuid.UUID        `json:"id"`
	Username      string           `json:"username"`
	DisplayName   string           `json:"display_name"`
	Platform      Platform         `json:"platform"`
	ProfileURL    *string          `json:"profile_url"`
	TotalWins     int              `json:"total_wins"`
	TotalLosses   int              `json:"total_losses"`
	TotalUnitsWon float64          `json:"total_units_won"`
	Credibility   credibility.Tier `json:"credibility"`
}
