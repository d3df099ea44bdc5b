package pricing

import (
	"fmt"
	"strings"

	"ensei.io/mission-engine/internal/catalog"
)

const (
	FixedCapMin = 60
	FixedCapMax = 10000
)

// MissionRequest is a candidate mission as submitted by a creator. The same
// shape backs the pricing preview and the mission creation endpoints.
type MissionRequest struct {
	Platform      catalog.Platform      `json:"platform"`
	Type          catalog.MissionType   `json:"type"`
	Model         catalog.MissionModel  `json:"model"`
	Target        catalog.TargetProfile `json:"target"`
	Tasks         []string              `json:"tasks"`
	Cap           int                   `json:"cap,omitempty"`
	DurationHours int                   `json:"duration_hours,omitempty"`
	WinnersCap    int                   `json:"winners_cap,omitempty"`
}

// Violation is a single business-rule failure, with a reason string suitable
// for direct display to the creator.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violation found in a request. A request is
// never partially applied: one violation fails the whole request.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		reasons = append(reasons, v.Reason)
	}
	return strings.Join(reasons, "; ")
}

// Validate checks a mission request against the closed sets, the task catalog
// and the model-specific bounds. It is pure and returns either nil or a
// *ValidationError listing every violation.
func Validate(req *MissionRequest) error {
	var violations []Violation
	add := func(field, format string, args ...interface{}) {
		violations = append(violations, Violation{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if !req.Platform.IsValid() {
		add("platform", "unknown platform %q", req.Platform)
	}
	if !req.Type.IsValid() {
		add("type", "unknown mission type %q", req.Type)
	}
	if !req.Model.IsValid() {
		add("model", "unknown mission model %q", req.Model)
	}
	if !req.Target.IsValid() {
		add("target", "unknown target profile %q", req.Target)
	}
	if req.Platform.IsValid() && req.Type.IsValid() {
		for _, task := range req.Tasks {
			if catalog.HonorsFor(req.Platform, req.Type, task) == 0 {
				add("tasks", "task %q is not available for %v %v missions", task, req.Platform, req.Type)
			}
		}
	}

	switch req.Model {
	case catalog.MissionModelFixed:
		if len(req.Tasks) == 0 {
			add("tasks", "fixed missions require at least one task")
		}
		if req.Cap < FixedCapMin || req.Cap > FixedCapMax {
			add("cap", "participant cap must be between %v and %v, got %v", FixedCapMin, FixedCapMax, req.Cap)
		}
	case catalog.MissionModelDegen:
		preset, ok := catalog.PresetByHours(req.DurationHours)
		if !ok {
			add("duration_hours", "duration %v hours does not match any degen preset", req.DurationHours)
		} else {
			if req.WinnersCap < 1 {
				add("winners_cap", "winners cap must be at least 1, got %v", req.WinnersCap)
			} else if req.WinnersCap > preset.MaxWinners {
				add("winners_cap", "winners cap %v exceeds the %v preset limit of %v",
					req.WinnersCap, preset.Label, preset.MaxWinners)
			}
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
