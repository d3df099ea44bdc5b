package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ensei.io/mission-engine/internal/aws"
	"ensei.io/mission-engine/internal/cache"
	"ensei.io/mission-engine/internal/csv"
	"ensei.io/mission-engine/internal/database"
	"ensei.io/mission-engine/internal/review"
)

var auditExportHeader = []string{
	"submission_id", "submitter_id", "submission_status", "review_count", "average_rating",
	"record_type", "reviewer_id", "assignment_priority", "matched_dimensions",
	"assignment_status", "rating", "comment_link", "recorded_at",
}

// ExportMissionAudit dumps a mission's full review trail to csv on S3 and
// returns the public access url. Every submission contributes one row per
// reviewer assignment (with its computed priority and matched dimensions)
// and one row per recorded review.
func ExportMissionAudit(ctx *gin.Context) {
	missionID := ctx.Param("mission_id")
	mission, err := database.Missions{}.SelectOne(missionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if mission == nil {
		respondError(ctx, &review.NotFoundError{Reason: "mission not found"})
		return
	}
	submissions, err := database.Submissions{}.QueryByMission(missionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	records := [][]string{auditExportHeader}
	for _, submission := range submissions {
		assignments, err := database.ReviewAssignments{}.SelectBySubmission(submission.SubmissionID)
		if err != nil {
			respondError(ctx, err)
			return
		}
		for _, a := range assignments {
			records = append(records, auditAssignmentRow(submission, a))
		}
		reviews, err := database.Reviews{}.SelectBySubmission(database.MissionPostgres, submission.SubmissionID)
		if err != nil {
			respondError(ctx, err)
			return
		}
		for _, r := range reviews {
			records = append(records, auditReviewRow(submission, r))
		}
	}
	objectKey := fmt.Sprintf("mission-audit/%v_%v.csv", missionID, time.Now().Unix())
	if err := csv.WriteCsvAndUploadToS3(objectKey, records); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{
		"mission_id": missionID,
		"export_url": aws.Client.PublicS3AccessURLFrom(objectKey),
	})
}

func auditAssignmentRow(s *database.Submissions, a *database.ReviewAssignments) []string {
	return []string{
		s.SubmissionID, s.SubmitterID, string(s.Status),
		fmt.Sprint(s.ReviewCount), fmt.Sprint(s.AverageRating),
		"assignment", a.ReviewerID, fmt.Sprint(a.Priority),
		strings.Join(a.MatchedDimensions, "|"), string(a.Status),
		"", "", a.CreatedAt.Format(time.RFC3339),
	}
}

func auditReviewRow(s *database.Submissions, r *database.Reviews) []string {
	return []string{
		s.SubmissionID, s.SubmitterID, string(s.Status),
		fmt.Sprint(s.ReviewCount), fmt.Sprint(s.AverageRating),
		"review", r.ReviewerID, "", "", "",
		fmt.Sprint(r.Rating), r.CommentLink, r.CreatedAt.Format(time.RFC3339),
	}
}

// ResetPricingCache drops every cached pricing quote, used after a task
// catalog or preset table deploy changes the prices behind cached hashes.
func ResetPricingCache(ctx *gin.Context) {
	if err := cache.DeletePricingQuotes(); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{"reset": true})
}
