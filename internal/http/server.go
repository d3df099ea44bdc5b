package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ensei.io/mission-engine/internal/config"
	"ensei.io/mission-engine/internal/review"
	"ensei.io/mission-engine/pkg/errors"
	"ensei.io/mission-engine/pkg/log"
	"ensei.io/mission-engine/pkg/log/middleware"
)

var engine *review.Engine

func NewServer() {
	engine = review.NewEngine(review.PolicyFromConfig(&config.Global.Review))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TimeoutHTTP(), middleware.RecoveredHTTPLog())
	router.GET("/hello", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, map[string]interface{}{
			"hello": "world",
		})
	})

	v1 := router.Group("/v1")
	v1.GET("/catalog", GetCatalog)
	v1.POST("/missions/price", PriceMission)
	v1.POST("/missions", CreateMission)
	v1.GET("/missions", ListMissions)
	v1.GET("/missions/:mission_id", GetMission)
	v1.POST("/submissions", CreateSubmission)
	v1.GET("/submissions", ListSubmissions)
	v1.POST("/reviews", SubmitReview)
	v1.PUT("/reviewers", UpsertReviewer)
	v1.GET("/users/:user_id/rating", GetUserRating)
	v1.POST("/admin/missions/:mission_id/audit_export", ExportMissionAudit)
	v1.POST("/admin/pricing_cache/reset", ResetPricingCache)

	if err := router.Run(config.Global.HTTPListen); err != nil {
		log.Fatal(err)
	}
}

// respondError maps the engine error taxonomy to protocol statuses. Expected
// business failures carry display-ready reasons; anything else surfaces as a
// generic internal error.
func respondError(ctx *gin.Context, err error) {
	var (
		requestErr  *review.RequestError
		conflictErr *review.ConflictError
		expiredErr  *review.ExpiredError
		notFoundErr *review.NotFoundError
	)
	switch {
	case errors.As(err, &requestErr):
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": requestErr.Reason})
	case errors.As(err, &conflictErr):
		ctx.JSON(http.StatusConflict, map[string]interface{}{"error": conflictErr.Reason})
	case errors.As(err, &expiredErr):
		ctx.JSON(http.StatusGone, map[string]interface{}{"error": expiredErr.Reason})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, map[string]interface{}{"error": notFoundErr.Reason})
	default:
		log.Error(err)
		ctx.JSON(http.StatusInternalServerError, map[string]interface{}{"error": "internal server error"})
	}
}
