package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ensei.io/mission-engine/internal/catalog"
	"ensei.io/mission-engine/internal/database"
)

type upsertReviewerRequest struct {
	ReviewerID    string                 `json:"reviewer_id"`
	Platform      catalog.Platform       `json:"platform"`
	Specialties   []string               `json:"specialties"`
	Level         database.ReviewerLevel `json:"level"`
	AverageRating float64                `json:"average_rating"`
}

// UpsertReviewer registers or refreshes a reviewer's expertise profile.
// Profiles only feed assignment scoring, so the write is a plain upsert.
func UpsertReviewer(ctx *gin.Context) {
	var req upsertReviewerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "malformed reviewer profile"})
		return
	}
	if req.ReviewerID == "" {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "reviewer is required"})
		return
	}
	if !req.Platform.IsValid() {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "unknown platform"})
		return
	}
	if req.Level == "" {
		req.Level = database.ReviewerLevelBeginner
	}
	if !req.Level.IsValid() {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "unknown reviewer level"})
		return
	}
	profile := database.ReviewerProfiles{
		ReviewerID:    req.ReviewerID,
		Platform:      req.Platform,
		Specialties:   req.Specialties,
		Level:         req.Level,
		AverageRating: req.AverageRating,
		UpdatedAt:     time.Now(),
	}
	if err := profile.Save(); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{"reviewer": profile})
}
