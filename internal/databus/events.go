package databus

import (
	"encoding/json"
	"time"

	"ensei.io/mission-engine/internal/database"
)

const (
	TopicMissionCreated    = "mission_created"
	TopicSubmissionDecided = "submission_decided"
)

// MissionCreatedEvent fans a new priced mission out to the downstream
// notification and wallet services.
type MissionCreatedEvent struct {
	MissionID string `json:"mission_id"`
	CreatorID string `json:"creator_id"`
	Platform  string `json:"platform"`
	Type      string `json:"type"`
	Model     string `json:"model"`
	CreatedAt int64  `json:"created_at"`
}

func NewMissionCreatedEvent(mission *database.Missions) MissionCreatedEvent {
	return MissionCreatedEvent{
		MissionID: mission.MissionID,
		CreatorID: mission.CreatorID,
		Platform:  string(mission.Platform),
		Type:      string(mission.Type),
		Model:     string(mission.Model),
		CreatedAt: mission.CreatedAt.UnixMilli(),
	}
}

func (e MissionCreatedEvent) Topic() string { return TopicMissionCreated }

func (e MissionCreatedEvent) Serialize() []byte {
	data, _ := json.Marshal(e)
	return data
}

// SubmissionDecidedEvent announces a terminal consensus outcome. The wallet
// service releases rewards for approved submissions and acknowledges through
// the reward-ack queue.
type SubmissionDecidedEvent struct {
	SubmissionID  string  `json:"submission_id"`
	MissionID     string  `json:"mission_id"`
	SubmitterID   string  `json:"submitter_id"`
	Status        string  `json:"status"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	DecidedAt     int64   `json:"decided_at"`
}

func NewSubmissionDecidedEvent(submission *database.Submissions) SubmissionDecidedEvent {
	event := SubmissionDecidedEvent{
		SubmissionID:  submission.SubmissionID,
		MissionID:     submission.MissionID,
		SubmitterID:   submission.SubmitterID,
		Status:        string(submission.Status),
		AverageRating: submission.AverageRating,
		ReviewCount:   submission.ReviewCount,
	}
	if submission.DecidedAt != nil {
		event.DecidedAt = submission.DecidedAt.UnixMilli()
	} else {
		event.DecidedAt = time.Now().UnixMilli()
	}
	return event
}

func (e SubmissionDecidedEvent) Topic() string { return TopicSubmissionDecided }

func (e SubmissionDecidedEvent) Serialize() []byte {
	data, _ := json.Marshal(e)
	return data
}
