package review

import (
	"sort"

	set "gopkg.in/fatih/set.v0"

	"ensei.io/mission-engine/internal/catalog"
	"ensei.io/mission-engine/internal/database"
)

// Expertise match weights. Platform familiarity dominates, then mission and
// task specialty, then reviewer seniority and track record.
const (
	platformMatchScore    = 40
	missionTypeMatchScore = 30
	taskTypeMatchScore    = 20
)

var levelBonus = map[database.ReviewerLevel]int{
	database.ReviewerLevelExpert:       10,
	database.ReviewerLevelAdvanced:     7,
	database.ReviewerLevelIntermediate: 4,
	database.ReviewerLevelBeginner:     1,
}

// Candidate is a reviewer considered for assignment.
type Candidate struct {
	ReviewerID    string
	Platform      catalog.Platform
	Specialties   set.Interface
	Level         database.ReviewerLevel
	AverageRating float64
}

// NewCandidate builds a Candidate from a stored reviewer profile.
func NewCandidate(profile *database.ReviewerProfiles) *Candidate {
	specialties := set.New(set.NonThreadSafe)
	for _, s := range profile.Specialties {
		specialties.Add(s)
	}
	return &Candidate{
		ReviewerID:    profile.ReviewerID,
		Platform:      profile.Platform,
		Specialties:   specialties,
		Level:         profile.Level,
		AverageRating: profile.AverageRating,
	}
}

// SubmissionContext is the slice of a submission that assignment scoring
// looks at.
type SubmissionContext struct {
	SubmissionID string
	SubmitterID  string
	Platform     catalog.Platform
	MissionType  catalog.MissionType
	TaskType     string
}

// MatchScore is the expertise score of one candidate against one submission.
type MatchScore struct {
	Score             int
	MatchedDimensions []string
}

// ScoreMatch scores a candidate's expertise against a submission.
func ScoreMatch(candidate *Candidate, sub *SubmissionContext) MatchScore {
	var match MatchScore
	if candidate.Platform == sub.Platform {
		match.Score += platformMatchScore
		match.MatchedDimensions = append(match.MatchedDimensions, "platform")
	}
	if candidate.Specialties != nil && candidate.Specialties.Has(string(sub.MissionType)) {
		match.Score += missionTypeMatchScore
		match.MatchedDimensions = append(match.MatchedDimensions, "mission_type")
	}
	if candidate.Specialties != nil && sub.TaskType != "" && candidate.Specialties.Has(sub.TaskType) {
		match.Score += taskTypeMatchScore
		match.MatchedDimensions = append(match.MatchedDimensions, "task_type")
	}
	match.Score += levelBonus[candidate.Level]
	switch {
	case candidate.AverageRating >= 4.5:
		match.Score += 5
	case candidate.AverageRating >= 4.0:
		match.Score += 3
	}
	return match
}

// Assignment is one proposed reviewer, carrying the computed score as
// priority for audit.
type Assignment struct {
	ReviewerID        string
	Priority          int
	MatchedDimensions []string
}

// AssignReviewers proposes up to required reviewers for a submission, ordered
// by descending expertise score. The sort is stable: candidates with equal
// scores keep their input order. The submitter is never assigned to review
// their own submission.
func AssignReviewers(candidates []*Candidate, sub *SubmissionContext, required int) []*Assignment {
	assignments := make([]*Assignment, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ReviewerID == sub.SubmitterID {
			continue
		}
		match := ScoreMatch(candidate, sub)
		assignments = append(assignments, &Assignment{
			ReviewerID:        candidate.ReviewerID,
			Priority:          match.Score,
			MatchedDimensions: match.MatchedDimensions,
		})
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].Priority > assignments[j].Priority
	})
	if len(assignments) > required {
		assignments = assignments[:required]
	}
	return assignments
}
