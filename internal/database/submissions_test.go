package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionStatus(t *testing.T) {
	for _, s := range []SubmissionStatus{SubmissionStatusPending, SubmissionStatusApproved,
		SubmissionStatusRejected, SubmissionStatusExpired} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, SubmissionStatus("archived").IsValid())
	assert.False(t, SubmissionStatus("").IsValid())

	assert.False(t, SubmissionStatusPending.IsTerminal())
	assert.True(t, SubmissionStatusApproved.IsTerminal())
	assert.True(t, SubmissionStatusRejected.IsTerminal())
	assert.True(t, SubmissionStatusExpired.IsTerminal())
}

func TestSubmissionIsExpired(t *testing.T) {
	now := time.Now()
	submission := Submissions{ExpiresAt: now.Add(24 * time.Hour)}
	assert.False(t, submission.IsExpired(now))
	assert.False(t, submission.IsExpired(now.Add(24*time.Hour-time.Second)))
	assert.True(t, submission.IsExpired(now.Add(24*time.Hour+time.Second)))
}

func TestReviewerLevelValidity(t *testing.T) {
	for _, l := range []ReviewerLevel{ReviewerLevelBeginner, ReviewerLevelIntermediate,
		ReviewerLevelAdvanced, ReviewerLevelExpert} {
		assert.True(t, l.IsValid(), l)
	}
	assert.False(t, ReviewerLevel("legendary").IsValid())
}
