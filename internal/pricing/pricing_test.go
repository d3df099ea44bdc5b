package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ensei.io/mission-engine/internal/catalog"
)

func TestComputeFixedAllProfiles(t *testing.T) {
	// like(20) + retweet(300) for 100 participants
	quote := ComputeFixed(320, 100, catalog.TargetProfileAll)
	assert.EqualValues(t, 640, quote.PerUserHonors)
	assert.EqualValues(t, 64000, quote.TotalHonors)
	assert.InDelta(t, 142.22, quote.TotalUsd, 0.01)
}

func TestComputeFixedPremiumUplift(t *testing.T) {
	// a single like for 100 premium accounts
	quote := ComputeFixed(20, 100, catalog.TargetProfilePremium)
	assert.EqualValues(t, 200, quote.PerUserHonors)
	assert.EqualValues(t, 20000, quote.TotalHonors)
	assert.InDelta(t, 44.44, quote.TotalUsd, 0.01)
}

func TestComputeFixedTotalIsExactMultiple(t *testing.T) {
	quote := ComputeFixed(470, 777, catalog.TargetProfileAll)
	assert.EqualValues(t, quote.PerUserHonors*777, quote.TotalHonors)
}

func TestComputeDegen(t *testing.T) {
	// 24h preset ($400) with two tasks, three winners
	quote, err := ComputeDegen(24, 3, catalog.TargetProfileAll, 2)
	require.NoError(t, err)
	assert.InDelta(t, 800, quote.TotalCostUsd, 1e-9)
	assert.EqualValues(t, 180000, quote.UserPoolHonors)
	assert.EqualValues(t, 60000, quote.PerWinnerHonors)
}

func TestComputeDegenPremium(t *testing.T) {
	// 24h preset ($400), premium ×5, single task, five winners
	quote, err := ComputeDegen(24, 5, catalog.TargetProfilePremium, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2000, quote.TotalCostUsd, 1e-9)
	assert.EqualValues(t, 450000, quote.UserPoolHonors)
	assert.EqualValues(t, 90000, quote.PerWinnerHonors)
}

func TestComputeDegenZeroTasksPricesAsOne(t *testing.T) {
	one, err := ComputeDegen(24, 3, catalog.TargetProfileAll, 1)
	require.NoError(t, err)
	zero, err := ComputeDegen(24, 3, catalog.TargetProfileAll, 0)
	require.NoError(t, err)
	assert.Equal(t, one, zero)
}

func TestComputeDegenSplitFloors(t *testing.T) {
	// pool 180000 does not divide evenly by 7
	quote, err := ComputeDegen(24, 7, catalog.TargetProfileAll, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 25714, quote.PerWinnerHonors)
	assert.LessOrEqual(t, quote.PerWinnerHonors*7, quote.UserPoolHonors)
}

func TestComputeDegenUnknownDuration(t *testing.T) {
	_, err := ComputeDegen(25, 3, catalog.TargetProfileAll, 1)
	assert.Error(t, err)
}

func TestComputeIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t,
			ComputeFixed(320, 100, catalog.TargetProfileAll),
			ComputeFixed(320, 100, catalog.TargetProfileAll))
		first, err := ComputeDegen(72, 20, catalog.TargetProfilePremium, 3)
		require.NoError(t, err)
		second, err := ComputeDegen(72, 20, catalog.TargetProfilePremium, 3)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestComputeDegenWinnerCapAtPresetLimit(t *testing.T) {
	for _, preset := range catalog.Presets() {
		quote, err := ComputeDegen(preset.Hours, preset.MaxWinners, catalog.TargetProfileAll, 1)
		require.NoError(t, err, preset.Label)
		assert.Positive(t, quote.PerWinnerHonors, preset.Label)
	}
}
