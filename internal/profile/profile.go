// Package profile turns onboarding answers into a unit size suggestion.
package profile

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/oddsmath"
)

var tierPercentages = map[models.RiskTolerance]float64{
	models.RiskConservative: 0.01,
	models.RiskModerate:     0.02,
	models.RiskAggressive:   0.03,
}

var validate = validator.New()

// TierPercentage returns the share of bankroll suggested as one unit.
func TierPercentage(tolerance models.RiskTolerance) (float64, error) {
	pct, ok := tierPercentages[tolerance]
	if !ok {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownTolerance, tolerance)
	}
	return pct, nil
}

// SuggestUnitSize computes bankroll × tier percentage.
func SuggestUnitSize(bankroll float64, tolerance models.RiskTolerance) (float64, error) {
	if err := oddsmath.ValidateUnitSize(bankroll); err != nil {
		return 0, fmt.Errorf("bankroll must be a positive finite number: %w", err)
	}
	pct, err := TierPercentage(tolerance)
	if err != nil {
		return 0, err
	}
	return bankroll * pct, nil
}

// New builds a profile with the suggested unit size. The unit size is set
// once here; later edits go through WithUnitSize and are never recomputed.
func New(bankroll float64, tolerance models.RiskTolerance) (models.Profile, error) {
	unit, err := SuggestUnitSize(bankroll, tolerance)
	if err != nil {
		return models.Profile{}, err
	}
	p := models.Profile{
		Bankroll:      bankroll,
		UnitSize:      unit,
		RiskTolerance: tolerance,
	}
	if err := Validate(p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// WithUnitSize returns a copy of p carrying a user-edited unit size.
func WithUnitSize(p models.Profile, unitSize float64) (models.Profile, error) {
	if err := oddsmath.ValidateUnitSize(unitSize); err != nil {
		return p, err
	}
	p.UnitSize = unitSize
	return p, nil
}

// Validate checks the profile's struct tags.
func Validate(p models.Profile) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}
