package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ensei.io/mission-engine/internal/catalog"
)

func TestQuoteFixed(t *testing.T) {
	quote, err := Quote(validFixedRequest())
	require.NoError(t, err)
	assert.Equal(t, catalog.MissionModelFixed, quote.Model)
	assert.EqualValues(t, 640, quote.PerUserHonors)
	assert.EqualValues(t, 64000, quote.TotalCostHonors)
	assert.InDelta(t, 142.22, quote.TotalCostUsd, 0.01)
	assert.EqualValues(t, 320, quote.Breakdown.TasksHonors)
	assert.EqualValues(t, 320, quote.Breakdown.PlatformFee)
	assert.Zero(t, quote.UserPoolHonors)
}

func TestQuoteDegen(t *testing.T) {
	req := validDegenRequest()
	req.Tasks = []string{"like", "retweet"}
	quote, err := Quote(req)
	require.NoError(t, err)
	assert.Equal(t, catalog.MissionModelDegen, quote.Model)
	assert.InDelta(t, 800, quote.TotalCostUsd, 1e-9)
	assert.EqualValues(t, 360000, quote.TotalCostHonors)
	assert.EqualValues(t, 180000, quote.UserPoolHonors)
	assert.EqualValues(t, 60000, quote.PerWinnerHonors)
	// the fee is the half of the spend that does not fund the pool
	assert.EqualValues(t, 180000, quote.Breakdown.PlatformFee)
	assert.Zero(t, quote.PerUserHonors)
}

func TestQuoteRejectsInvalidRequest(t *testing.T) {
	req := validFixedRequest()
	req.Cap = 1
	_, err := Quote(req)
	require.Error(t, err)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestQuoteIsDeterministic(t *testing.T) {
	first, err := Quote(validDegenRequest())
	require.NoError(t, err)
	second, err := Quote(validDegenRequest())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
