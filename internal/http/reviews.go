package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ensei.io/mission-engine/internal/cache"
	"ensei.io/mission-engine/internal/config"
	"ensei.io/mission-engine/internal/review"
	"ensei.io/mission-engine/pkg/log"
)

// SubmitReview records a reviewer's rating and, when the review quorum is
// reached, settles the submission in the same transaction.
func SubmitReview(ctx *gin.Context) {
	var req review.AddReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "malformed review request"})
		return
	}
	allowed, err := cache.AllowReviewSubmit(ctx, req.ReviewerID, config.Global.Review.ReviewRatePerMinute)
	if err != nil {
		// 限流器故障时放行，评审本身仍受数据库唯一索引保护
		log.Error(err)
	} else if !allowed {
		ctx.JSON(http.StatusTooManyRequests, map[string]interface{}{"error": "review rate limit exceeded"})
		return
	}
	recorded, err := engine.AddReview(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{"review": recorded})
}
