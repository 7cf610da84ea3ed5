package credibility

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, tier := range All() {
		parsed, err := Parse(string(tier))
		require.NoError(t, err)
		assert.Equal(t, tier, parsed)
	}

	for _, bad := range []string{"", "Verified", " verified", "verif", "trusted"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrUnknownTier, "input %q", bad)
	}
}

func TestRankOrder(t *testing.T) {
	assert.Equal(t, 0, Verified.Rank())
	assert.Equal(t, 1, Unverified.Rank())
	assert.Equal(t, 2, Suspicious.Rank())
	assert.Equal(t, -1, Tier("gold").Rank())
}

func TestMatches(t *testing.T) {
	for _, have := range All() {
		for _, want := range All() {
			assert.Equal(t, have == want, have.Matches(want))
		}
	}
	assert.False(t, Tier("gold").Matches(Tier("gold")))
}

func TestJSONRoundTripRejectsUnknown(t *testing.T) {
	var payload struct {
		Credibility Tier `json:"credibility"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"credibility":"suspicious"}`), &payload))
	assert.Equal(t, Suspicious, payload.Credibility)

	err := json.Unmarshal([]byte(`{"credibility":"legendary"}`), &payload)
	assert.ErrorIs(t, err, ErrUnknownTier)

	_, err = json.Marshal(struct {
		T Tier `json:"t"`
	}{T: "nope"})
	assert.Error(t, err)
}
