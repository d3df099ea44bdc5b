package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ensei.io/mission-engine/internal/cache"
	"ensei.io/mission-engine/internal/catalog"
	"ensei.io/mission-engine/internal/database"
	"ensei.io/mission-engine/internal/databus"
	"ensei.io/mission-engine/internal/pricing"
	"ensei.io/mission-engine/pkg/common"
	"ensei.io/mission-engine/pkg/errors"
	"ensei.io/mission-engine/pkg/log"
)

// PriceMission validates and prices a mission request without persisting
// anything. Identical requests hit the redis quote cache.
func PriceMission(ctx *gin.Context) {
	var req pricing.MissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "malformed pricing request"})
		return
	}

	requestHash := common.SHA256HexString([]byte(common.MustGetJSONString(req)))
	if cached, err := cache.GetPricingQuote(ctx.Request.Context(), requestHash); err == nil && cached != "" {
		ctx.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	quote, err := pricing.Quote(&req)
	if err != nil {
		var validationErr *pricing.ValidationError
		if errors.As(err, &validationErr) {
			ctx.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":      validationErr.Error(),
				"violations": validationErr.Violations,
			})
			return
		}
		respondError(ctx, err)
		return
	}
	body := common.MustGetJSONString(quote)
	if err := cache.SetPricingQuote(ctx.Request.Context(), requestHash, body); err != nil {
		log.Error(err)
	}
	ctx.Data(http.StatusOK, "application/json", []byte(body))
}

type createMissionRequest struct {
	pricing.MissionRequest
	CreatorID string `json:"creator_id"`
}

// CreateMission validates, prices and persists a mission, then announces it
// on the bus. Priced fields are immutable once the row lands.
func CreateMission(ctx *gin.Context) {
	var req createMissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "malformed mission request"})
		return
	}
	if req.CreatorID == "" {
		ctx.JSON(http.StatusBadRequest, map[string]interface{}{"error": "creator is required"})
		return
	}
	quote, err := pricing.Quote(&req.MissionRequest)
	if err != nil {
		var validationErr *pricing.ValidationError
		if errors.As(err, &validationErr) {
			ctx.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":      validationErr.Error(),
				"violations": validationErr.Violations,
			})
			return
		}
		respondError(ctx, err)
		return
	}

	now := time.Now()
	mission := database.Missions{
		MissionID: common.NewCutUUIDString(),
		CreatorID: req.CreatorID,
		Platform:  req.Platform,
		Type:      req.Type,
		Model:     req.Model,
		Target:    req.Target,
		Tasks:     req.Tasks,
		CreatedAt: now,
	}
	switch req.Model {
	case catalog.MissionModelDegen:
		mission.Degen = &database.MissionDegenSpec{
			DurationHours:   req.DurationHours,
			WinnersCap:      req.WinnersCap,
			TotalCostUsd:    quote.TotalCostUsd,
			UserPoolHonors:  quote.UserPoolHonors,
			PerWinnerHonors: quote.PerWinnerHonors,
		}
		endsAt := now.Add(time.Duration(req.DurationHours) * time.Hour)
		mission.EndsAt = &endsAt
	default:
		mission.Fixed = &database.MissionFixedSpec{
			Cap:           req.Cap,
			PerUserHonors: quote.PerUserHonors,
			TotalHonors:   quote.TotalCostHonors,
			TotalUsd:      quote.TotalCostUsd,
		}
	}
	if err := mission.Insert(); err != nil {
		respondError(ctx, err)
		return
	}
	if bus := databus.GetDataBus(); bus != nil {
		if err := bus.Publish(databus.NewMissionCreatedEvent(&mission)); err != nil {
			log.Error(err)
		}
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{
		"mission": mission,
		"quote":   quote,
	})
}

func GetMission(ctx *gin.Context) {
	mission, err := database.Missions{}.SelectOne(ctx.Param("mission_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if mission == nil {
		ctx.JSON(http.StatusNotFound, map[string]interface{}{"error": "mission not found"})
		return
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{"mission": mission})
}

func ListMissions(ctx *gin.Context) {
	limit, offset := pageParams(ctx)
	var (
		missions []*database.Missions
		err      error
	)
	if creatorID := ctx.Query("creator_id"); creatorID != "" {
		missions, err = database.Missions{}.QueryByCreator(creatorID, limit, offset)
	} else {
		missions, err = database.Missions{}.QueryOngoing(limit, offset)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, map[string]interface{}{
		"missions": missions,
		"limit":    limit,
		"offset":   offset,
	})
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func pageParams(ctx *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(ctx.Query("limit"))
	offset, _ = strconv.Atoi(ctx.Query("offset"))
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
