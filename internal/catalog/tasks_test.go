package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformValidity(t *testing.T) {
	for _, p := range []Platform{PlatformTwitter, PlatformInstagram, PlatformTiktok,
		PlatformFacebook, PlatformWhatsapp, PlatformSnapchat, PlatformTelegram} {
		assert.True(t, p.IsValid(), p)
	}
	assert.False(t, Platform("myspace").IsValid())
	assert.False(t, Platform("").IsValid())
}

func TestMissionEnumValidity(t *testing.T) {
	assert.True(t, MissionTypeEngage.IsValid())
	assert.True(t, MissionTypeContent.IsValid())
	assert.True(t, MissionTypeAmbassador.IsValid())
	assert.False(t, MissionType("raid").IsValid())

	assert.True(t, MissionModelFixed.IsValid())
	assert.True(t, MissionModelDegen.IsValid())
	assert.False(t, MissionModel("hybrid").IsValid())
	assert.True(t, MissionModelDegen.Is(MissionModelDegen))
	assert.False(t, MissionModelDegen.Is(MissionModelFixed))

	assert.True(t, TargetProfileAll.IsValid())
	assert.True(t, TargetProfilePremium.IsValid())
	assert.False(t, TargetProfile("vip").IsValid())
}

func TestHonorsFor(t *testing.T) {
	assert.EqualValues(t, 20, HonorsFor(PlatformTwitter, MissionTypeEngage, "like"))
	assert.EqualValues(t, 300, HonorsFor(PlatformTwitter, MissionTypeEngage, "retweet"))
	assert.EqualValues(t, 150, HonorsFor(PlatformTwitter, MissionTypeEngage, "comment"))
	assert.EqualValues(t, 200, HonorsFor(PlatformTwitter, MissionTypeEngage, "quote"))
	assert.EqualValues(t, 250, HonorsFor(PlatformTwitter, MissionTypeEngage, "follow"))

	// unrecognized combinations price as zero
	assert.EqualValues(t, 0, HonorsFor(PlatformTwitter, MissionTypeEngage, "duet"))
	assert.EqualValues(t, 0, HonorsFor(PlatformTiktok, MissionTypeEngage, "retweet"))
	assert.EqualValues(t, 0, HonorsFor(Platform("myspace"), MissionTypeEngage, "like"))
}

func TestSumHonors(t *testing.T) {
	sum := SumHonors(PlatformTwitter, MissionTypeEngage, []string{"like", "retweet"})
	assert.EqualValues(t, 320, sum)

	// unknown tasks contribute zero, they do not fail the sum
	sum = SumHonors(PlatformTwitter, MissionTypeEngage, []string{"like", "nonexistent"})
	assert.EqualValues(t, 20, sum)

	assert.EqualValues(t, 0, SumHonors(PlatformTwitter, MissionTypeEngage, nil))
}

func TestTasksForSortedAndComplete(t *testing.T) {
	tasks := TasksFor(PlatformTwitter, MissionTypeEngage)
	require.Equal(t, []string{"comment", "follow", "like", "quote", "retweet"}, tasks)

	assert.Nil(t, TasksFor(Platform("myspace"), MissionTypeEngage))

	// every platform carries a catalog for every mission type
	for _, p := range []Platform{PlatformTwitter, PlatformInstagram, PlatformTiktok,
		PlatformFacebook, PlatformWhatsapp, PlatformSnapchat, PlatformTelegram} {
		for _, mt := range []MissionType{MissionTypeEngage, MissionTypeContent, MissionTypeAmbassador} {
			assert.NotEmpty(t, TasksFor(p, mt), "%v %v", p, mt)
		}
	}
}
