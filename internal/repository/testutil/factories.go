package testutil

import (
	"time"

	"github.com/yourusername/pickscout/internal/credibility"
	"github.com/yourusername/pickscout/internal/models"
)

// CreateTestCapper creates a recently active Reddit capper with the given tier
func CreateTestCapper(username string, tier credibility.Tier) *models.Capper {
	return &models.Capper{
		Username:      username,
		DisplayName:   username,
		Platform:      models.PlatformReddit,
		TotalWins:     10,
		TotalLosses:   5,
		TotalUnitsWon: 4.5,
		Credibility:   tier,
		LastActive:    time.Now().UTC(),
	}
}

// CreateTestCapperWithUnits creates a capper with a specific units-won total
func CreateTestCapperWithUnits(username string, tier credibility.Tier, units float64) *models.Capper {
	capper := CreateTestCapper(username, tier)
	capper.TotalUnitsWon = units
	return capper
}

// CreateTestPick creates a pending one-unit pick for capper
func CreateTestPick(capper *models.Capper, sport string, odds int) *models.Pick {
	return &models.Pick{
		CapperID:  capper.ID,
		Sport:     sport,
		Matchup:   "Home vs Away",
		PickText:  sport + " pick",
		Odds:      odds,
		RiskUnits: 1,
		Status:    models.PickStatusPending,
	}
}
