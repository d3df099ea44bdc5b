package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ensei.io/mission-engine/internal/config"
	"ensei.io/mission-engine/internal/database"
)

func TestMeanRating(t *testing.T) {
	assert.InDelta(t, 4.0, MeanRating([]int{4, 4, 3, 5, 4}), 1e-9)
	assert.InDelta(t, 1.4, MeanRating([]int{1, 1, 2, 2, 1}), 1e-9)
	// one decimal, rounded half up
	assert.InDelta(t, 3.7, MeanRating([]int{4, 4, 3}), 1e-9)
	assert.InDelta(t, 2.3, MeanRating([]int{2, 2, 3}), 1e-9)
	assert.Zero(t, MeanRating(nil))
}

func TestPolicyDecide(t *testing.T) {
	policy := DefaultPolicy()

	// below quorum the submission stays pending whatever the average
	assert.Equal(t, database.SubmissionStatusPending, policy.Decide(4, 5.0))
	assert.Equal(t, database.SubmissionStatusPending, policy.Decide(0, 0))

	assert.Equal(t, database.SubmissionStatusApproved, policy.Decide(5, 4.0))
	assert.Equal(t, database.SubmissionStatusApproved, policy.Decide(5, 3.0))
	assert.Equal(t, database.SubmissionStatusRejected, policy.Decide(5, 2.9))
	assert.Equal(t, database.SubmissionStatusRejected, policy.Decide(5, 1.4))
}

func TestPolicyShouldApprove(t *testing.T) {
	policy := DefaultPolicy()
	assert.True(t, policy.ShouldApprove(5, 3.0))
	assert.True(t, policy.ShouldApprove(5, 4.0))
	assert.False(t, policy.ShouldApprove(5, 2.9))
	assert.False(t, policy.ShouldApprove(4, 5.0))
}

func TestPolicyFromConfig(t *testing.T) {
	policy := PolicyFromConfig(&config.ReviewPolicy{
		ReviewersPerSubmission: 7,
		ApprovalThreshold:      3.5,
		ReviewWindowHours:      48,
	})
	assert.Equal(t, 7, policy.RequiredReviews)
	assert.InDelta(t, 3.5, policy.ApprovalThreshold, 1e-9)
	assert.Equal(t, 48*time.Hour, policy.ReviewWindow)
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()
	assert.Equal(t, 5, policy.RequiredReviews)
	assert.InDelta(t, 3.0, policy.ApprovalThreshold, 1e-9)
	assert.Equal(t, 24*time.Hour, policy.ReviewWindow)
}

func pendingSubmission(now time.Time) *database.Submissions {
	return &database.Submissions{
		SubmissionID: "sub_1",
		SubmitterID:  "author",
		Status:       database.SubmissionStatusPending,
		CreatedAt:    now,
		ExpiresAt:    now.Add(24 * time.Hour),
	}
}

func TestCheckReviewableAccepts(t *testing.T) {
	now := time.Now()
	policy := DefaultPolicy()
	assert.NoError(t, policy.checkReviewable(pendingSubmission(now), "reviewer_1", 0, now))
}

func TestCheckReviewableRejectsSelfReview(t *testing.T) {
	now := time.Now()
	err := DefaultPolicy().checkReviewable(pendingSubmission(now), "author", 0, now)
	var requestErr *RequestError
	assert.ErrorAs(t, err, &requestErr)
}

func TestCheckReviewableRejectsAfterWindow(t *testing.T) {
	now := time.Now()
	policy := DefaultPolicy()
	submission := pendingSubmission(now)
	// the window closes on wall time regardless of review progress
	submission.ReviewCount = 4
	err := policy.checkReviewable(submission, "reviewer_1", 0, now.Add(24*time.Hour+time.Second))
	var expiredErr *ExpiredError
	assert.ErrorAs(t, err, &expiredErr)

	submission = pendingSubmission(now)
	submission.Status = database.SubmissionStatusExpired
	err = policy.checkReviewable(submission, "reviewer_1", 0, now)
	assert.ErrorAs(t, err, &expiredErr)
}

func TestCheckReviewableRejectsFullSubmission(t *testing.T) {
	now := time.Now()
	policy := DefaultPolicy()
	submission := pendingSubmission(now)
	submission.ReviewCount = policy.RequiredReviews
	err := policy.checkReviewable(submission, "reviewer_6", 0, now)
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestCheckReviewableRejectsDuplicateReviewer(t *testing.T) {
	now := time.Now()
	policy := DefaultPolicy()
	err := policy.checkReviewable(pendingSubmission(now), "reviewer_1", 1, now)
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestCheckReviewableRejectsDecidedSubmission(t *testing.T) {
	now := time.Now()
	policy := DefaultPolicy()
	for _, status := range []database.SubmissionStatus{
		database.SubmissionStatusApproved, database.SubmissionStatusRejected,
	} {
		submission := pendingSubmission(now)
		submission.Status = status
		err := policy.checkReviewable(submission, "reviewer_1", 0, now)
		var conflictErr *ConflictError
		assert.ErrorAs(t, err, &conflictErr, status)
	}
}

func TestApplyReviewsBelowQuorumStaysPending(t *testing.T) {
	now := time.Now()
	submission := pendingSubmission(now)
	aggregateDue := DefaultPolicy().applyReviews(submission, []int{4, 4, 3}, now)
	assert.False(t, aggregateDue)
	assert.Equal(t, database.SubmissionStatusPending, submission.Status)
	assert.Equal(t, 3, submission.ReviewCount)
	assert.InDelta(t, 3.7, submission.AverageRating, 1e-9)
	assert.Nil(t, submission.DecidedAt)
}

func TestApplyReviewsApprovesAtQuorum(t *testing.T) {
	now := time.Now()
	submission := pendingSubmission(now)
	aggregateDue := DefaultPolicy().applyReviews(submission, []int{4, 4, 3, 5, 4}, now)
	assert.True(t, aggregateDue)
	assert.Equal(t, database.SubmissionStatusApproved, submission.Status)
	assert.InDelta(t, 4.0, submission.AverageRating, 1e-9)
	require.NotNil(t, submission.DecidedAt)
	assert.Equal(t, now, *submission.DecidedAt)
}

func TestApplyReviewsRejectsAtQuorum(t *testing.T) {
	now := time.Now()
	submission := pendingSubmission(now)
	aggregateDue := DefaultPolicy().applyReviews(submission, []int{1, 1, 2, 2, 1}, now)
	assert.True(t, aggregateDue)
	assert.Equal(t, database.SubmissionStatusRejected, submission.Status)
	assert.InDelta(t, 1.4, submission.AverageRating, 1e-9)
	assert.Equal(t, 5, submission.ReviewCount)
}

func TestApplyReviewsAggregateDueOnlyOnce(t *testing.T) {
	now := time.Now()
	submission := pendingSubmission(now)
	submission.AggregateApplied = true
	aggregateDue := DefaultPolicy().applyReviews(submission, []int{4, 4, 3, 5, 4}, now)
	assert.False(t, aggregateDue)
	assert.Equal(t, database.SubmissionStatusApproved, submission.Status)
}

func TestConsensusDecidesOnRoundedMean(t *testing.T) {
	policy := DefaultPolicy()
	mean := MeanRating([]int{3, 3, 3, 3, 3})
	assert.Equal(t, database.SubmissionStatusApproved, policy.Decide(5, mean))

	mean = MeanRating([]int{1, 1, 2, 2, 1})
	assert.InDelta(t, 1.4, mean, 1e-9)
	assert.Equal(t, database.SubmissionStatusRejected, policy.Decide(5, mean))
}
