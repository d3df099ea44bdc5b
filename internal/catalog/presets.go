package catalog

import "sort"

// DegenDurationPreset is one of the fixed duration tiers that govern degen
// mission pricing and winner limits. The table is immutable after process
// start: strictly increasing in hours and cost, non-decreasing in winners.
type DegenDurationPreset struct {
	Hours      int     `json:"hours"`
	CostUSD    float64 `json:"cost_usd"`
	MaxWinners int     `json:"max_winners"`
	Label      string  `json:"label"`
}

var degenPresets = []DegenDurationPreset{
	{Hours: 1, CostUSD: 15, MaxWinners: 1, Label: "1 hour"},
	{Hours: 3, CostUSD: 30, MaxWinners: 2, Label: "3 hours"},
	{Hours: 6, CostUSD: 80, MaxWinners: 3, Label: "6 hours"},
	{Hours: 12, CostUSD: 180, MaxWinners: 5, Label: "12 hours"},
	{Hours: 24, CostUSD: 400, MaxWinners: 10, Label: "1 day"},
	{Hours: 36, CostUSD: 600, MaxWinners: 10, Label: "1.5 days"},
	{Hours: 48, CostUSD: 800, MaxWinners: 15, Label: "2 days"},
	{Hours: 72, CostUSD: 1200, MaxWinners: 20, Label: "3 days"},
	{Hours: 96, CostUSD: 1600, MaxWinners: 25, Label: "4 days"},
	{Hours: 120, CostUSD: 2000, MaxWinners: 30, Label: "5 days"},
	{Hours: 168, CostUSD: 3000, MaxWinners: 50, Label: "1 week"},
	{Hours: 240, CostUSD: 4000, MaxWinners: 75, Label: "10 days"},
	{Hours: 336, CostUSD: 5000, MaxWinners: 100, Label: "2 weeks"},
}

// audienceAliases maps human audience-size labels to a preset duration.
var audienceAliases = map[string]int{
	"niche":    6,
	"focused":  12,
	"standard": 24,
	"wide":     48,
	"broad":    96,
	"mass":     168,
	"viral":    336,
}

// Presets returns a copy of the degen duration preset table.
func Presets() []DegenDurationPreset {
	out := make([]DegenDurationPreset, len(degenPresets))
	copy(out, degenPresets)
	return out
}

// PresetByHours returns the preset that matches hours exactly. Non-membership
// is not resolved to a nearest match.
func PresetByHours(hours int) (DegenDurationPreset, bool) {
	for _, p := range degenPresets {
		if p.Hours == hours {
			return p, true
		}
	}
	return DegenDurationPreset{}, false
}

// HoursForAudience resolves an audience-size label to its preset duration.
func HoursForAudience(label string) (int, bool) {
	hours, ok := audienceAliases[label]
	return hours, ok
}

// AudienceLabels returns the recognized audience-size labels.
func AudienceLabels() []string {
	labels := make([]string, 0, len(audienceAliases))
	for label := range audienceAliases {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
