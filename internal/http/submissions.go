package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ensei.io/mission-engine/internal/database"
	"ensei.io/mission-engine/internal/review"
)

// CreateSubmission records a participant submission and assigns reviewers by
// expertise, at most once, at submission time.
func CreateSubmission(ctx *gin.Context) {
	var req review.CreateSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "malformed submission request"})
		return
	}
	submission, err := engine.CreateSubmission(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{"submission": submission})
}

func ListSubmissions(ctx *gin.Context) {
	status := database.SubmissionStatus(ctx.Query("status"))
	if status != "" && !status.IsValid() {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "unknown submission status"})
		return
	}
	limit, offset := pageParams(ctx)
	submissions, err := database.Submissions{}.Query(ctx.Query("user_id"), status, limit, offset)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{
		"submissions": submissions,
		"limit":       limit,
		"offset":      offset,
	})
}

// GetUserRating reports a submitter's running mean across consensus-completed
// submissions.
func GetUserRating(ctx *gin.Context) {
	rating, err := database.UserReviewRatings{}.SelectOne(ctx.Param("user_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if rating == nil {
		ctx.JSON(http.StatusOK, map[string]interface{}{
			"user_id":           ctx.Param("user_id"),
			"total_rating":      0,
			"total_submissions": 0,
		})
		return
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{
		"user_id":           rating.UserID,
		"total_rating":      rating.TotalRating,
		"total_submissions": rating.TotalSubmissions,
	})
}
