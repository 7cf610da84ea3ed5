package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/oddsmath"
)

func TestSuggestUnitSize(t *testing.T) {
	tests := []struct {
		tolerance models.RiskTolerance
		want      float64
	}{
		{models.RiskConservative, 10},
		{models.RiskModerate, 20},
		{models.RiskAggressive, 30},
	}
	for _, tt := range tests {
		got, err := SuggestUnitSize(1000, tt.tolerance)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, string(tt.tolerance))
	}

	_, err := SuggestUnitSize(1000, "reckless")
	assert.ErrorIs(t, err, models.ErrUnknownTolerance)

	_, err = SuggestUnitSize(0, models.RiskModerate)
	assert.ErrorIs(t, err, oddsmath.ErrInvalidUnitSize)
}

func TestNewAndEditUnitSize(t *testing.T) {
	p, err := New(500, models.RiskModerate)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, p.UnitSize, 1e-9)

	edited, err := WithUnitSize(p, 25)
	require.NoError(t, err)
	assert.Equal(t, 25.0, edited.UnitSize)
	assert.Equal(t, 500.0, edited.Bankroll)
	assert.InDelta(t, 10.0, p.UnitSize, 1e-9, "original is a value copy")

	_, err = WithUnitSize(p, -2)
	assert.ErrorIs(t, err, oddsmath.ErrInvalidUnitSize)
}

func TestNewRejectsUnitSizeThatRoundsToZero(t *testing.T) {
	// Smallest positive float passes the bankroll check but the unit underflows.
	p, err := New(5e-324, models.RiskConservative)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profile")
	assert.Equal(t, models.Profile{}, p)

	p, err = New(-1, models.RiskModerate)
	require.Error(t, err)
	assert.Equal(t, models.Profile{}, p)
}

func TestValidate(t *testing.T) {
	bad := "not-an-email"
	err := Validate(models.Profile{Email: &bad, Bankroll: 100, UnitSize: 2, RiskTolerance: models.RiskModerate})
	assert.Error(t, err)

	err = Validate(models.Profile{Bankroll: 100, UnitSize: 2, RiskTolerance: "wild"})
	assert.Error(t, err)

	good := "bettor@example.com"
	assert.NoError(t, Validate(models.Profile{Email: &good, Bankroll: 100, UnitSize: 2, RiskTolerance: models.RiskModerate}))
}
