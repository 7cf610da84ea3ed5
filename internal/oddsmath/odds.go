// Package oddsmath converts American odds and stakes into payout figures.
package oddsmath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrInvalidInput is the parent of every rejection in this package.
	ErrInvalidInput = errors.New("invalid input")

	ErrZeroOdds         = fmt.Errorf("%w: American odds cannot be 0", ErrInvalidInput)
	ErrInvalidUnitSize  = fmt.Errorf("%w: unit size must be a positive finite number", ErrInvalidInput)
	ErrInvalidRiskUnits = fmt.Errorf("%w: risk units must be a non-negative finite number", ErrInvalidInput)
)

// ProfitOnWin returns the profit of a winning bet risking unitSize*riskUnits at odds.
//
//	+150 risking 10 → 15
//	-150 risking 15 → 10
func ProfitOnWin(odds int, unitSize, riskUnits float64) (float64, error) {
	if odds == 0 {
		return 0, ErrZeroOdds
	}
	if err := ValidateUnitSize(unitSize); err != nil {
		return 0, err
	}
	if math.IsNaN(riskUnits) || math.IsInf(riskUnits, 0) || riskUnits < 0 {
		return 0, ErrInvalidRiskUnits
	}

	stake := unitSize * riskUnits
	if odds > 0 {
		return float64(odds) / 100.0 * stake, nil
	}
	return 100.0 / float64(-odds) * stake, nil
}

// ValidateUnitSize rejects zero, negative and non-finite unit sizes.
func ValidateUnitSize(unitSize float64) error {
	if math.IsNaN(unitSize) || math.IsInf(unitSize, 0) || unitSize <= 0 {
		return ErrInvalidUnitSize
	}
	return nil
}

// FormatOdds renders positive odds with a leading plus sign.
func FormatOdds(odds int) string {
	if odds > 0 {
		return "+" + strconv.Itoa(odds)
	}
	return strconv.Itoa(odds)
}

// HistoricalProfit converts odds-adjusted net units into dollars.
// totalUnitsWon is already net of odds, so it is only scaled.
func HistoricalProfit(totalUnitsWon, unitSize float64) float64 {
	return totalUnitsWon * unitSize
}

// AmericanToDecimal converts American odds to decimal odds.
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, ErrZeroOdds
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0, nil
	}
	return 100.0/float64(-american) + 1.0, nil
}

// ImpliedProbability returns the break-even win probability for American odds.
// -110 → 0.5238, +150 → 0.40
func ImpliedProbability(american int) (float64, error) {
	dec, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1.0 / dec, nil
}
