// Package pickview projects picks into what a user would win tailing them at
// their current unit size.
//
// Nothing here is cached. The unit size can change at any moment and every
// call recomputes from the pick and the projector's unit size.
package pickview

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/oddsmath"
	"github.com/yourusername/pickscout/internal/record"
)

// View is a single pick as shown to the user.
type View struct {
	Pick               models.Pick
	OddsText           string
	Stake              decimal.Decimal
	ProfitIfWon        decimal.Decimal
	ImpliedProbability float64
	// Anomaly is set when a non-pending pick shows up among active picks.
	Anomaly bool
	// Err holds the rejection for picks whose numbers cannot be projected,
	// for example zero odds. Stake and ProfitIfWon are zero in that case.
	Err error
}

// Valid reports whether the profit figures can be displayed.
func (v View) Valid() bool {
	return v.Err == nil
}

// CapperView is one leaderboard row.
type CapperView struct {
	Capper  models.Capper
	Summary record.Summary
	Picks   []View
}

// Projector computes views for a fixed unit size.
type Projector struct {
	unitSize float64
}

// NewProjector rejects a non-positive or non-finite unit size.
func NewProjector(unitSize float64) (*Projector, error) {
	if err := oddsmath.ValidateUnitSize(unitSize); err != nil {
		return nil, err
	}
	return &Projector{unitSize: unitSize}, nil
}

// UnitSize returns the dollars-per-unit this projector uses.
func (p *Projector) UnitSize() float64 {
	return p.unitSize
}

// Project computes the view for one pick.
func (p *Projector) Project(pick models.Pick) View {
	v := View{
		Pick:     pick,
		OddsText: oddsmath.FormatOdds(pick.Odds),
		Anomaly:  !pick.IsPending(),
	}

	profit, err := oddsmath.ProfitOnWin(pick.Odds, p.unitSize, pick.RiskUnits)
	if err != nil {
		v.Err = err
		return v
	}
	prob, err := oddsmath.ImpliedProbability(pick.Odds)
	if err != nil {
		v.Err = err
		return v
	}

	v.Stake = decimal.NewFromFloat(p.unitSize * pick.RiskUnits).Round(2)
	v.ProfitIfWon = decimal.NewFromFloat(profit).Round(2)
	v.ImpliedProbability = prob
	return v
}

// ProjectPicks projects a slice of picks, preserving order.
func (p *Projector) ProjectPicks(picks []models.Pick) []View {
	views := make([]View, len(picks))
	for i := range picks {
		views[i] = p.Project(picks[i])
	}
	return views
}

// ProjectCapper builds a leaderboard row.
func (p *Projector) ProjectCapper(c models.Capper) CapperView {
	return CapperView{
		Capper:  c,
		Summary: record.Summarize(&c, p.unitSize),
		Picks:   p.ProjectPicks(c.ActivePicks),
	}
}

// ProjectLeaderboard builds rows for every capper, preserving order.
func (p *Projector) ProjectLeaderboard(cappers []models.Capper) []CapperView {
	rows := make([]CapperView, len(cappers))
	for i := range cappers {
		rows[i] = p.ProjectCapper(cappers[i])
	}
	return rows
}

// TodaysView is a today's-pick row with its optional capper summary.
type TodaysView struct {
	View
	Capper *models.CapperRef
}

// ProjectTodays projects today's picks, preserving order.
func (p *Projector) ProjectTodays(picks []models.TodaysPick) []TodaysView {
	rows := make([]TodaysView, len(picks))
	for i := range picks {
		rows[i] = TodaysView{View: p.Project(picks[i].Pick), Capper: picks[i].Capper}
	}
	return rows
}

// TotalProfitIfAllWin sums the valid profits across views.
func TotalProfitIfAllWin(views []View) decimal.Decimal {
	total := decimal.Zero
	for _, v := range views {
		if v.Valid() {
			total = total.Add(v.ProfitIfWon)
		}
	}
	return total
}
