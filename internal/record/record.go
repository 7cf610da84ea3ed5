// Package record derives display figures from a capper's settled counters.
package record

import (
	"fmt"
	"math"

	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/oddsmath"
)

// NotApplicable is the text shown when a capper has no settled picks.
const NotApplicable = "N/A"

// Rate is a win percentage rounded to one decimal. Applicable is false when
// no games have been settled.
type Rate struct {
	Value      float64
	Applicable bool
}

// WinRate returns wins/(wins+losses) as a percentage. Zero games yields the
// not-applicable sentinel rather than a division by zero.
func WinRate(wins, losses int) Rate {
	total := wins + losses
	if total <= 0 {
		return Rate{}
	}
	pct := float64(wins) / float64(total) * 100
	return Rate{Value: math.Round(pct*10) / 10, Applicable: true}
}

func (r Rate) String() string {
	if !r.Applicable {
		return NotApplicable
	}
	return fmt.Sprintf("%.1f%%", r.Value)
}

// Less orders rates with not-applicable below every real rate.
func (r Rate) Less(other Rate) bool {
	if r.Applicable != other.Applicable {
		return !r.Applicable
	}
	return r.Value < other.Value
}

// ImpliedProfit is what tailing every historical pick at unitSize would have returned.
func ImpliedProfit(c *models.Capper, unitSize float64) float64 {
	return oddsmath.HistoricalProfit(c.TotalUnitsWon, unitSize)
}

// Summary is the display-ready record of one capper.
type Summary struct {
	Record        string
	WinRate       Rate
	UnitsWon      float64
	ImpliedProfit float64
}

// Summarize builds a Summary without touching the capper.
func Summarize(c *models.Capper, unitSize float64) Summary {
	return Summary{
		Record:        fmt.Sprintf("%d-%d", c.TotalWins, c.TotalLosses),
		WinRate:       WinRate(c.TotalWins, c.TotalLosses),
		UnitsWon:      c.TotalUnitsWon,
		ImpliedProfit: ImpliedProfit(c, unitSize),
	}
}
