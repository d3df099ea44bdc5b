package pricing

import (
	"math"

	"ensei.io/mission-engine/internal/catalog"
	"ensei.io/mission-engine/pkg/errors"
)

const (
	// platformFeeMultiplier doubles the raw task value: pricing is
	// fee-inclusive, half of every fixed reward is the platform fee.
	platformFeeMultiplier = 2
	// premiumMultiplier is the uplift applied when a mission targets
	// premium accounts only.
	premiumMultiplier = 5
	// degenPoolShare is the fraction of degen spend that funds the
	// winner prize pool.
	degenPoolShare = 0.5
)

// FixedQuote is the cost breakdown for a fixed-model mission.
type FixedQuote struct {
	PerUserHonors int64   `json:"per_user_honors"`
	TotalHonors   int64   `json:"total_honors"`
	TotalUsd      float64 `json:"total_usd"`
}

// DegenQuote is the cost breakdown for a degen-model mission.
type DegenQuote struct {
	TotalCostUsd    float64 `json:"total_cost_usd"`
	UserPoolHonors  int64   `json:"user_pool_honors"`
	PerWinnerHonors int64   `json:"per_winner_honors"`
}

// ComputeFixed prices a fixed mission from the summed task honors, the
// participant capacity and the target profile. Per-user honors round up so a
// participant is never underpaid on a fractional honor; the total is an exact
// multiple of the rounded per-user value.
func ComputeFixed(tasksHonorsSum int64, cap int, target catalog.TargetProfile) FixedQuote {
	withPlatformFee := float64(tasksHonorsSum) * platformFeeMultiplier
	withPremium := withPlatformFee
	if target == catalog.TargetProfilePremium {
		withPremium = withPlatformFee * premiumMultiplier
	}
	perUser := int64(math.Ceil(withPremium))
	total := perUser * int64(cap)
	return FixedQuote{
		PerUserHonors: perUser,
		TotalHonors:   total,
		TotalUsd:      catalog.HonorsToUsd(total),
	}
}

// ComputeDegen prices a degen mission from its duration preset, winner cap,
// target profile and task count. An empty task list prices as a single task.
// Callers must validate the request first: an unknown duration is fatal to the
// call and a zero winner cap is rejected by the validator.
func ComputeDegen(hours, winnersCap int, target catalog.TargetProfile, taskCount int) (DegenQuote, error) {
	preset, ok := catalog.PresetByHours(hours)
	if !ok {
		return DegenQuote{}, errors.Errorf("no degen preset for duration %v hours", hours)
	}
	effectiveTasks := taskCount
	if effectiveTasks < 1 {
		effectiveTasks = 1
	}
	totalCost := preset.CostUSD * float64(effectiveTasks)
	if target == catalog.TargetProfilePremium {
		totalCost *= premiumMultiplier
	}
	pool := int64(math.Round(totalCost * catalog.HonorsPerUSD * degenPoolShare))
	// floor on the split: the pool is never overpaid
	perWinner := pool / int64(winnersCap)
	return DegenQuote{
		TotalCostUsd:    totalCost,
		UserPoolHonors:  pool,
		PerWinnerHonors: perWinner,
	}, nil
}
