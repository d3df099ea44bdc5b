package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ensei.io/mission-engine/internal/cache"
	"ensei.io/mission-engine/internal/database"
)

func TestAuditExportRows(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	submission := &database.Submissions{
		SubmissionID:  "sub_1",
		SubmitterID:   "author",
		Status:        database.SubmissionStatusApproved,
		ReviewCount:   5,
		AverageRating: 4.0,
	}

	assignmentRow := auditAssignmentRow(submission, &database.ReviewAssignments{
		ReviewerID:        "reviewer_1",
		Priority:          105,
		MatchedDimensions: database.JSONBStringArray{"platform", "mission_type"},
		Status:            database.AssignmentStatusCompleted,
		CreatedAt:         now,
	})
	require.Len(t, assignmentRow, len(auditExportHeader))
	assert.Equal(t, "assignment", assignmentRow[5])
	assert.Equal(t, "reviewer_1", assignmentRow[6])
	assert.Equal(t, "105", assignmentRow[7])
	assert.Equal(t, "platform|mission_type", assignmentRow[8])
	assert.Equal(t, "completed", assignmentRow[9])

	reviewRow := auditReviewRow(submission, &database.Reviews{
		ReviewerID:  "reviewer_1",
		Rating:      4,
		CommentLink: "https://twitter.com/reviewer_1/status/1",
		CreatedAt:   now,
	})
	require.Len(t, reviewRow, len(auditExportHeader))
	assert.Equal(t, "review", reviewRow[5])
	assert.Equal(t, "4", reviewRow[10])
	assert.Equal(t, "https://twitter.com/reviewer_1/status/1", reviewRow[11])
	assert.Equal(t, now.Format(time.RFC3339), reviewRow[12])

	// both row kinds carry the submission context in the same columns
	assert.Equal(t, assignmentRow[:5], reviewRow[:5])
}

func TestResetPricingCacheRedisDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cache.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer func() { cache.Redis = nil }()

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest("POST", "/v1/admin/pricing_cache/reset", nil)
	ResetPricingCache(ctx)
	assert.Equal(t, 500, recorder.Code)
}
