package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RiskTolerance selects the bankroll percentage suggested as a unit.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// ParseRiskTolerance validates a tolerance string.
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch r := RiskTolerance(s); r {
	case RiskConservative, RiskModerate, RiskAggressive:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTolerance, s)
	}
}

// Profile is the onboarding result supplied by the user.
type Profile struct {
	ID            uuid.UUID     `db:"id" json:"id,omitempty"`
	Email         *string       `db:"email" json:"email" validate:"omitempty,email"`
	Bankroll      float64       `db:"bankroll" json:"bankroll" validate:"gt=0"`
	UnitSize      float64       `db:"unit_size" json:"unit_size" validate:"gt=0"`
	RiskTolerance RiskTolerance `db:"risk_tolerance" json:"risk_tolerance" validate:"required,oneof=conservative moderate aggressive"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at,omitempty"`
}
