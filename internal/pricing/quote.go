package pricing

import "ensei.io/mission-engine/internal/catalog"

// QuoteBreakdown splits a quote into the raw task value and the platform's
// share, both in honors.
type QuoteBreakdown struct {
	TasksHonors int64 `json:"tasks_honors"`
	PlatformFee int64 `json:"platform_fee"`
}

// QuoteResponse is the common pricing response shape exposed by every caller
// of the engine. Fixed and degen quotes populate their model-specific fields.
type QuoteResponse struct {
	Model           catalog.MissionModel `json:"model"`
	TotalCostUsd    float64              `json:"total_cost_usd"`
	TotalCostHonors int64                `json:"total_cost_honors"`
	PerUserHonors   int64                `json:"per_user_honors,omitempty"`
	UserPoolHonors  int64                `json:"user_pool_honors,omitempty"`
	PerWinnerHonors int64                `json:"per_winner_honors,omitempty"`
	Breakdown       QuoteBreakdown       `json:"breakdown"`
}

// Quote validates a mission request and prices it. The computation is pure:
// identical requests always produce identical quotes.
func Quote(req *MissionRequest) (*QuoteResponse, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	tasksHonors := catalog.SumHonors(req.Platform, req.Type, req.Tasks)
	switch req.Model {
	case catalog.MissionModelDegen:
		quote, err := ComputeDegen(req.DurationHours, req.WinnersCap, req.Target, len(req.Tasks))
		if err != nil {
			return nil, err
		}
		totalHonors := catalog.UsdToHonors(quote.TotalCostUsd)
		return &QuoteResponse{
			Model:           catalog.MissionModelDegen,
			TotalCostUsd:    quote.TotalCostUsd,
			TotalCostHonors: totalHonors,
			UserPoolHonors:  quote.UserPoolHonors,
			PerWinnerHonors: quote.PerWinnerHonors,
			Breakdown: QuoteBreakdown{
				TasksHonors: tasksHonors,
				PlatformFee: totalHonors - quote.UserPoolHonors,
			},
		}, nil
	default:
		quote := ComputeFixed(tasksHonors, req.Cap, req.Target)
		return &QuoteResponse{
			Model:           catalog.MissionModelFixed,
			TotalCostUsd:    quote.TotalUsd,
			TotalCostHonors: quote.TotalHonors,
			PerUserHonors:   quote.PerUserHonors,
			Breakdown: QuoteBreakdown{
				TasksHonors: tasksHonors,
				PlatformFee: tasksHonors * (platformFeeMultiplier - 1),
			},
		}, nil
	}
}
