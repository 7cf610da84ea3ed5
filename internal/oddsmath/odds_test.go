package oddsmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestProfitOnWinExamples(t *testing.T) {
	tests := []struct {
		name      string
		odds      int
		unitSize  float64
		riskUnits float64
		want      float64
	}{
		{"plus money", 150, 5, 1, 7.50},
		{"minus money", -110, 10, 1, 100.0 / 110.0 * 10},
		{"even", 100, 20, 2, 40},
		{"heavy favourite", -145, 10, 5, 100.0 / 145.0 * 50},
		{"zero risk", 200, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProfitOnWin(tt.odds, tt.unitSize, tt.riskUnits)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}

	got, err := ProfitOnWin(-110, 10, 1)
	require.NoError(t, err)
	assert.InDelta(t, 9.0909, got, 1e-4)
}

func TestProfitOnWinFormula(t *testing.T) {
	for _, odds := range []int{101, 150, 250, 1000} {
		for _, u := range []float64{1, 5, 12.5} {
			for _, r := range []float64{0, 0.5, 1, 3} {
				got, err := ProfitOnWin(odds, u, r)
				require.NoError(t, err)
				assert.InDelta(t, float64(odds)/100*u*r, got, tolerance)

				got, err = ProfitOnWin(-odds, u, r)
				require.NoError(t, err)
				assert.InDelta(t, 100/float64(odds)*u*r, got, tolerance)
			}
		}
	}
}

func TestProfitOnWinIsLinear(t *testing.T) {
	base, err := ProfitOnWin(-120, 10, 1)
	require.NoError(t, err)

	doubledUnit, err := ProfitOnWin(-120, 20, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2*base, doubledUnit, tolerance)

	tripledRisk, err := ProfitOnWin(-120, 10, 3)
	require.NoError(t, err)
	assert.InDelta(t, 3*base, tripledRisk, tolerance)
}

func TestProfitOnWinRejectsInvalidInput(t *testing.T) {
	_, err := ProfitOnWin(0, 10, 1)
	assert.ErrorIs(t, err, ErrZeroOdds)
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, u := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err = ProfitOnWin(150, u, 1)
		assert.ErrorIs(t, err, ErrInvalidUnitSize, "unit size %v", u)
	}

	for _, r := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = ProfitOnWin(150, 10, r)
		assert.ErrorIs(t, err, ErrInvalidRiskUnits, "risk units %v", r)
	}
}

func TestFormatOdds(t *testing.T) {
	assert.Equal(t, "+150", FormatOdds(150))
	assert.Equal(t, "-110", FormatOdds(-110))
	assert.Equal(t, "+10000", FormatOdds(10000))
	assert.Equal(t, "0", FormatOdds(0))
}

func TestHistoricalProfit(t *testing.T) {
	assert.InDelta(t, -50.0, HistoricalProfit(-2.5, 20), tolerance)
	assert.InDelta(t, 1058.4, HistoricalProfit(105.84, 10), 1e-6)
	assert.Equal(t, 0.0, HistoricalProfit(0, 50))

	// Linear in unit size, sign preserved.
	assert.InDelta(t, 2*HistoricalProfit(-3.3, 7), HistoricalProfit(-3.3, 14), tolerance)
	assert.Less(t, HistoricalProfit(-0.01, 1000), 0.0)
}

func TestAmericanToDecimal(t *testing.T) {
	dec, err := AmericanToDecimal(150)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, dec, tolerance)

	dec, err = AmericanToDecimal(-150)
	require.NoError(t, err)
	assert.InDelta(t, 1.6667, dec, 1e-4)

	_, err = AmericanToDecimal(0)
	assert.ErrorIs(t, err, ErrZeroOdds)
}

func TestImpliedProbability(t *testing.T) {
	p, err := ImpliedProbability(-110)
	require.NoError(t, err)
	assert.InDelta(t, 0.5238, p, 1e-4)

	p, err = ImpliedProbability(150)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, p, tolerance)
}
