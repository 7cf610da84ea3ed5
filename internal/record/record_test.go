package record

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/pickscout/internal/models"
)

func TestWinRate(t *testing.T) {
	assert.Equal(t, "70.0%", WinRate(7, 3).String())
	assert.Equal(t, "N/A", WinRate(0, 0).String())
	assert.False(t, WinRate(0, 0).Applicable)

	assert.Equal(t, "56.6%", WinRate(228, 175).String())
	assert.Equal(t, "47.1%", WinRate(41, 46).String())
	assert.Equal(t, "0.0%", WinRate(0, 12).String())
	assert.Equal(t, "100.0%", WinRate(9, 0).String())
	assert.Equal(t, 33.3, WinRate(1, 2).Value)
	assert.Equal(t, 66.7, WinRate(2, 1).Value)
}

func TestWinRateBounds(t *testing.T) {
	for w := 0; w <= 20; w++ {
		for l := 0; l <= 20; l++ {
			r := WinRate(w, l)
			if w+l == 0 {
				assert.False(t, r.Applicable)
				continue
			}
			assert.True(t, r.Applicable)
			assert.GreaterOrEqual(t, r.Value, 0.0)
			assert.LessOrEqual(t, r.Value, 100.0)
		}
	}
}

func TestRateLess(t *testing.T) {
	na := WinRate(0, 0)
	low := WinRate(1, 9)
	high := WinRate(9, 1)

	assert.True(t, na.Less(low))
	assert.False(t, low.Less(na))
	assert.True(t, low.Less(high))
	assert.False(t, high.Less(high))
	assert.False(t, na.Less(na))
}

func TestImpliedProfitKeepsSign(t *testing.T) {
	c := &models.Capper{TotalWins: 3, TotalLosses: 9, TotalUnitsWon: -2.5}
	assert.InDelta(t, -50.0, ImpliedProfit(c, 20), 1e-9)

	s := Summarize(c, 20)
	assert.Equal(t, "3-9", s.Record)
	assert.Equal(t, "25.0%", s.WinRate.String())
	assert.InDelta(t, -50.0, s.ImpliedProfit, 1e-9)
	assert.Equal(t, -2.5, c.TotalUnitsWon)
}
