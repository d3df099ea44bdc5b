package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ensei.io/mission-engine/internal/catalog"
)

func validFixedRequest() *MissionRequest {
	return &MissionRequest{
		Platform: catalog.PlatformTwitter,
		Type:     catalog.MissionTypeEngage,
		Model:    catalog.MissionModelFixed,
		Target:   catalog.TargetProfileAll,
		Tasks:    []string{"like", "retweet"},
		Cap:      100,
	}
}

func validDegenRequest() *MissionRequest {
	return &MissionRequest{
		Platform:      catalog.PlatformTwitter,
		Type:          catalog.MissionTypeEngage,
		Model:         catalog.MissionModelDegen,
		Target:        catalog.TargetProfileAll,
		Tasks:         []string{"like"},
		DurationHours: 24,
		WinnersCap:    3,
	}
}

func violationFields(err error) []string {
	validationErr, ok := err.(*ValidationError)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(validationErr.Violations))
	for _, v := range validationErr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestValidateAcceptsWellFormed(t *testing.T) {
	assert.NoError(t, Validate(validFixedRequest()))
	assert.NoError(t, Validate(validDegenRequest()))
}

func TestValidateClosedSets(t *testing.T) {
	req := validFixedRequest()
	req.Platform = "myspace"
	req.Type = "raid"
	req.Model = "hybrid"
	req.Target = "vip"
	err := Validate(req)
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"platform", "type", "model", "target"}, violationFields(err))
}

func TestValidateTaskMembership(t *testing.T) {
	req := validFixedRequest()
	req.Tasks = []string{"like", "duet"}
	err := Validate(req)
	require.Error(t, err)
	assert.Contains(t, violationFields(err), "tasks")
}

func TestValidateFixedCapBounds(t *testing.T) {
	for _, cap := range []int{0, 59, 10001} {
		req := validFixedRequest()
		req.Cap = cap
		err := Validate(req)
		require.Error(t, err, cap)
		assert.Contains(t, violationFields(err), "cap")
	}
	for _, cap := range []int{60, 10000} {
		req := validFixedRequest()
		req.Cap = cap
		assert.NoError(t, Validate(req), cap)
	}
}

func TestValidateFixedRequiresTasks(t *testing.T) {
	req := validFixedRequest()
	req.Tasks = nil
	err := Validate(req)
	require.Error(t, err)
	assert.Contains(t, violationFields(err), "tasks")
}

func TestValidateDegenPresetMembership(t *testing.T) {
	req := validDegenRequest()
	req.DurationHours = 25
	err := Validate(req)
	require.Error(t, err)
	assert.Contains(t, violationFields(err), "duration_hours")
}

func TestValidateDegenWinnersCap(t *testing.T) {
	req := validDegenRequest()
	req.WinnersCap = 0
	err := Validate(req)
	require.Error(t, err)
	assert.Contains(t, violationFields(err), "winners_cap")

	// the 24h preset allows at most 10 winners
	req = validDegenRequest()
	req.WinnersCap = 11
	err = Validate(req)
	require.Error(t, err)
	assert.Contains(t, violationFields(err), "winners_cap")

	req = validDegenRequest()
	req.WinnersCap = 10
	assert.NoError(t, Validate(req))

	// every preset accepts its own winner limit and rejects one past it
	for _, preset := range catalog.Presets() {
		req := validDegenRequest()
		req.DurationHours = preset.Hours
		req.WinnersCap = preset.MaxWinners
		assert.NoError(t, Validate(req), preset.Label)

		req.WinnersCap = preset.MaxWinners + 1
		err := Validate(req)
		require.Error(t, err, preset.Label)
		assert.Contains(t, violationFields(err), "winners_cap", preset.Label)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	req := validFixedRequest()
	req.Cap = 0
	req.Tasks = []string{"duet"}
	err := Validate(req)
	require.Error(t, err)
	assert.Len(t, violationFields(err), 2)
	assert.NotEmpty(t, err.Error())
}
