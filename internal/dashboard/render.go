package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/yourusername/pickscout/internal/pickview"
)

const unavailable = "Data temporarily unavailable."

var (
	colorBorder  = lipgloss.Color("#4D4C57")
	colorMuted   = lipgloss.Color("#858392")
	colorPrimary = lipgloss.Color("#6B50FF")
	colorSuccess = lipgloss.Color("#00FFB2")
	colorError   = lipgloss.Color("#E94090")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	pickRowStyle = cellStyle.Foreground(colorMuted)
	gainStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	lossStyle    = lipgloss.NewStyle().Foreground(colorError)
)

// WriteLeaderboard prints one row per capper followed by its active picks.
func WriteLeaderboard(w io.Writer, r Rendered) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Leaderboard (unit $%s)", money(decimal.NewFromFloat(r.UnitSize)))))
	b.WriteString("\n")

	if r.LeaderboardFailed {
		b.WriteString(mutedStyle.Render(unavailable) + "\n")
	}
	if len(r.Leaderboard) == 0 {
		if !r.LeaderboardFailed {
			b.WriteString(mutedStyle.Render("No cappers match the current filters.") + "\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	// Pick sub-rows are tracked so they can be dimmed.
	pickRows := make(map[int]bool)
	var rows [][]string
	for i, row := range r.Leaderboard {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			row.Capper.Name(),
			row.Capper.Credibility.String(),
			row.Summary.Record,
			row.Summary.WinRate.String(),
			signed(signedUnits(row.Summary.UnitsWon), row.Summary.UnitsWon),
			signed("$"+money(decimal.NewFromFloat(row.Summary.ImpliedProfit)), row.Summary.ImpliedProfit),
		})
		for _, v := range row.Picks {
			pickRows[len(rows)] = true
			rows = append(rows, []string{
				"", "  " + v.Pick.Sport, v.OddsText, truncate(v.Pick.PickText, 40), "", stakeText(v), profitText(v),
			})
		}
	}

	t := newTable("#", "CAPPER", "TIER", "RECORD", "WIN%", "UNITS", "IMPLIED PROFIT").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case pickRows[row]:
				return pickRowStyle
			default:
				return cellStyle
			}
		}).
		Rows(rows...)

	b.WriteString(t.Render())
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteToday prints today's picks with the owning capper when known.
func WriteToday(w io.Writer, r Rendered) error {
	return writePicks(w, fmt.Sprintf("Today's picks (unit $%s)", money(decimal.NewFromFloat(r.UnitSize))), r.Today, r.TodayFailed)
}

// WritePicks prints an arbitrary list of projected picks under title.
func WritePicks(w io.Writer, title string, rows []pickview.TodaysView) error {
	return writePicks(w, title, rows, false)
}

func writePicks(w io.Writer, title string, rows []pickview.TodaysView, failed bool) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if failed {
		b.WriteString(mutedStyle.Render(unavailable) + "\n")
	}
	if len(rows) == 0 {
		if !failed {
			b.WriteString(mutedStyle.Render("No picks.") + "\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	cells := make([][]string, 0, len(rows))
	total := make([]pickview.View, 0, len(rows))
	for _, row := range rows {
		name, tier := "-", "-"
		if row.Capper != nil {
			name = row.Capper.Username
			if row.Capper.DisplayName != "" {
				name = row.Capper.DisplayName
			}
			tier = row.Capper.Credibility.String()
		}
		cells = append(cells, []string{
			name, tier, row.Pick.Sport, truncate(row.Pick.PickText, 40), row.OddsText,
			string(row.Pick.Status), stakeText(row.View), profitText(row.View),
		})
		total = append(total, row.View)
	}

	t := newTable("CAPPER", "TIER", "SPORT", "PICK", "ODDS", "STATUS", "STAKE", "TO WIN").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(cells...)

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total if all win: $%s\n", money(pickview.TotalProfitIfAllWin(total))))

	_, err := io.WriteString(w, b.String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...)
}

func stakeText(v pickview.View) string {
	if !v.Valid() {
		return "-"
	}
	return "$" + money(v.Stake)
}

func profitText(v pickview.View) string {
	if !v.Valid() {
		return lossStyle.Render("invalid odds")
	}
	text := "$" + money(v.ProfitIfWon)
	if v.Anomaly {
		text += " *"
	}
	return text
}

// signed colours text by the sign of value.
func signed(text string, value float64) string {
	switch {
	case value > 0:
		return gainStyle.Render(text)
	case value < 0:
		return lossStyle.Render(text)
	default:
		return text
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func signedUnits(u float64) string {
	d := decimal.NewFromFloat(u).Round(2)
	if d.IsPositive() {
		return "+" + d.StringFixed(2) + "u"
	}
	return d.StringFixed(2) + "u"
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
