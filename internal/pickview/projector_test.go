package pickview

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscout/internal/credibility"
	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/oddsmath"
)

func pending(odds int, risk float64) models.Pick {
	return models.Pick{ID: uuid.New(), Odds: odds, RiskUnits: risk, Status: models.PickStatusPending}
}

func TestNewProjectorRejectsBadUnitSize(t *testing.T) {
	for _, u := range []float64{0, -1, math.NaN(), math.Inf(-1)} {
		_, err := NewProjector(u)
		assert.ErrorIs(t, err, oddsmath.ErrInvalidUnitSize)
	}
	p, err := NewProjector(5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.UnitSize())
}

func TestProject(t *testing.T) {
	p, err := NewProjector(5)
	require.NoError(t, err)

	v := p.Project(pending(150, 1))
	require.True(t, v.Valid())
	assert.Equal(t, "+150", v.OddsText)
	assert.True(t, decimal.RequireFromString("7.50").Equal(v.ProfitIfWon))
	assert.True(t, decimal.RequireFromString("5").Equal(v.Stake))
	assert.InDelta(t, 0.4, v.ImpliedProbability, 1e-9)
	assert.False(t, v.Anomaly)

	p10, err := NewProjector(10)
	require.NoError(t, err)
	v = p10.Project(pending(-110, 1))
	assert.Equal(t, "-110", v.OddsText)
	assert.Equal(t, "9.09", v.ProfitIfWon.StringFixed(2))
}

func TestProjectRecomputesForNewUnitSize(t *testing.T) {
	pick := pending(-145, 5)

	small, err := NewProjector(5)
	require.NoError(t, err)
	large, err := NewProjector(50)
	require.NoError(t, err)

	assert.Equal(t, "17.24", small.Project(pick).ProfitIfWon.StringFixed(2))
	assert.Equal(t, "172.41", large.Project(pick).ProfitIfWon.StringFixed(2))
}

func TestProjectZeroOddsIsFlaggedNotComputed(t *testing.T) {
	p, err := NewProjector(10)
	require.NoError(t, err)

	v := p.Project(pending(0, 1))
	assert.False(t, v.Valid())
	assert.ErrorIs(t, v.Err, oddsmath.ErrZeroOdds)
	assert.True(t, v.ProfitIfWon.IsZero())
	assert.Equal(t, "0", v.OddsText)
}

func TestProjectNonPendingIsAnomaly(t *testing.T) {
	p, err := NewProjector(10)
	require.NoError(t, err)

	settled := pending(120, 1)
	settled.Status = models.PickStatusWon

	v := p.Project(settled)
	assert.True(t, v.Anomaly)
	assert.True(t, v.Valid())
	assert.Equal(t, "12.00", v.ProfitIfWon.StringFixed(2))
}

func TestProjectLeaderboard(t *testing.T) {
	p, err := NewProjector(20)
	require.NoError(t, err)

	cappers := []models.Capper{
		{Username: "a", TotalWins: 7, TotalLosses: 3, TotalUnitsWon: 4, Credibility: credibility.Verified,
			ActivePicks: []models.Pick{pending(150, 1), pending(0, 1)}},
		{Username: "b", TotalUnitsWon: -2.5, Credibility: credibility.Unverified},
	}

	rows := p.ProjectLeaderboard(cappers)
	require.Len(t, rows, 2)

	assert.Equal(t, "a", rows[0].Capper.Username)
	assert.Equal(t, "70.0%", rows[0].Summary.WinRate.String())
	assert.InDelta(t, 80.0, rows[0].Summary.ImpliedProfit, 1e-9)
	require.Len(t, rows[0].Picks, 2)
	assert.Equal(t, "30.00", TotalProfitIfAllWin(rows[0].Picks).StringFixed(2))

	assert.Equal(t, "N/A", rows[1].Summary.WinRate.String())
	assert.InDelta(t, -50.0, rows[1].Summary.ImpliedProfit, 1e-9)
	assert.Empty(t, rows[1].Picks)
}

func TestProjectTodays(t *testing.T) {
	p, err := NewProjector(10)
	require.NoError(t, err)

	ref := &models.CapperRef{Username: "lordestros", Credibility: credibility.Verified}
	rows := p.ProjectTodays([]models.TodaysPick{
		{Pick: pending(-115, 1), Capper: ref},
		{Pick: pending(140, 2)},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, ref, rows[0].Capper)
	assert.Equal(t, "8.70", rows[0].ProfitIfWon.StringFixed(2))
	assert.Nil(t, rows[1].Capper)
	assert.Equal(t, "28.00", rows[1].ProfitIfWon.StringFixed(2))
}
