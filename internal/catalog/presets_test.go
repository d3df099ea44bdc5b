package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetTableInvariants(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 13)
	for i := 1; i < len(presets); i++ {
		prev, cur := presets[i-1], presets[i]
		assert.Greater(t, cur.Hours, prev.Hours)
		assert.Greater(t, cur.CostUSD, prev.CostUSD)
		assert.GreaterOrEqual(t, cur.MaxWinners, prev.MaxWinners)
	}
}

func TestPresetsReturnsCopy(t *testing.T) {
	presets := Presets()
	presets[0].CostUSD = 999999
	fresh, ok := PresetByHours(1)
	require.True(t, ok)
	assert.EqualValues(t, 15, fresh.CostUSD)
}

func TestPresetByHours(t *testing.T) {
	preset, ok := PresetByHours(24)
	require.True(t, ok)
	assert.EqualValues(t, 400, preset.CostUSD)
	assert.Equal(t, 10, preset.MaxWinners)

	preset, ok = PresetByHours(336)
	require.True(t, ok)
	assert.EqualValues(t, 5000, preset.CostUSD)
	assert.Equal(t, 100, preset.MaxWinners)

	// no nearest-match resolution
	_, ok = PresetByHours(25)
	assert.False(t, ok)
	_, ok = PresetByHours(0)
	assert.False(t, ok)
}

func TestHoursForAudience(t *testing.T) {
	for label, wantHours := range map[string]int{
		"niche": 6, "focused": 12, "standard": 24,
		"wide": 48, "broad": 96, "mass": 168, "viral": 336,
	} {
		hours, ok := HoursForAudience(label)
		require.True(t, ok, label)
		assert.Equal(t, wantHours, hours, label)
		// every alias resolves to a real preset
		_, ok = PresetByHours(hours)
		assert.True(t, ok, label)
	}
	_, ok := HoursForAudience("galactic")
	assert.False(t, ok)
}

func TestAudienceLabelsSorted(t *testing.T) {
	labels := AudienceLabels()
	assert.Equal(t, []string{"broad", "focused", "mass", "niche", "standard", "viral", "wide"}, labels)
}

func TestHonorsConversion(t *testing.T) {
	assert.EqualValues(t, 450, UsdToHonors(1))
	assert.EqualValues(t, 180000, UsdToHonors(400))
	assert.EqualValues(t, 225, UsdToHonors(0.5))
	assert.InDelta(t, 142.22, HonorsToUsd(64000), 0.01)
	assert.InDelta(t, 1, HonorsToUsd(450), 1e-9)
}
