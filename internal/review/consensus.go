package review

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
	"gorm.io/gorm"

	"ensei.io/mission-engine/internal/config"
	"ensei.io/mission-engine/internal/database"
	"ensei.io/mission-engine/internal/databus"
	"ensei.io/mission-engine/internal/social"
	"ensei.io/mission-engine/pkg/common"
	"ensei.io/mission-engine/pkg/errors"
	"ensei.io/mission-engine/pkg/log"
)

// Policy holds the consensus knobs: how many independent ratings complete a
// submission, the approval threshold on the average, and the review window.
type Policy struct {
	RequiredReviews   int
	ApprovalThreshold float64
	ReviewWindow      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		RequiredReviews:   5,
		ApprovalThreshold: 3.0,
		ReviewWindow:      24 * time.Hour,
	}
}

func PolicyFromConfig(conf *config.ReviewPolicy) Policy {
	return Policy{
		RequiredReviews:   conf.ReviewersPerSubmission,
		ApprovalThreshold: conf.ApprovalThreshold,
		ReviewWindow:      time.Duration(conf.ReviewWindowHours) * time.Hour,
	}
}

// MeanRating averages the ratings and rounds to one decimal.
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	values := make([]float64, len(ratings))
	for i, r := range ratings {
		values[i] = float64(r)
	}
	mean := stat.Mean(values, nil)
	return math.Round(mean*10) / 10
}

// ShouldApprove is the consensus decision rule: a submission is approved once
// it holds the required number of reviews with an average at or above the
// threshold.
func (p Policy) ShouldApprove(reviewCount int, averageRating float64) bool {
	return reviewCount >= p.RequiredReviews && averageRating >= p.ApprovalThreshold
}

// Decide maps a submission's review state to its status. Below the required
// count the submission stays pending; at the count it lands approved or
// rejected.
func (p Policy) Decide(reviewCount int, averageRating float64) database.SubmissionStatus {
	if reviewCount < p.RequiredReviews {
		return database.SubmissionStatusPending
	}
	if averageRating >= p.ApprovalThreshold {
		return database.SubmissionStatusApproved
	}
	return database.SubmissionStatusRejected
}

// Engine runs the submission review lifecycle: assignment on submit, review
// accumulation, the terminal decision, and the one-time aggregate rating
// update.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// ProofRecord is one typed piece of proof attached to a submission.
type ProofRecord struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type CreateSubmissionRequest struct {
	MissionID   string        `json:"mission_id"`
	SubmitterID string        `json:"submitter_id"`
	TaskType    string        `json:"task_type,omitempty"`
	Proofs      []ProofRecord `json:"proofs"`
}

// CreateSubmission records a participant submission, opens its review window
// and assigns reviewers by expertise. Assignment happens at most once, at
// submission time.
func (e *Engine) CreateSubmission(req *CreateSubmissionRequest) (*database.Submissions, error) {
	if req.MissionID == "" || req.SubmitterID == "" {
		return nil, &RequestError{Reason: "mission and submitter are required"}
	}
	if len(req.Proofs) == 0 {
		return nil, &RequestError{Reason: "at least one proof is required"}
	}
	mission, err := database.Missions{}.SelectOne(req.MissionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, &NotFoundError{Reason: fmt.Sprintf("mission %v not found", req.MissionID)}
	}
	proofs := make(database.JSONBArray, 0, len(req.Proofs))
	for _, proof := range req.Proofs {
		if proof.Type == "link" {
			if _, err := social.ParseLink(proof.Content); err != nil {
				return nil, &RequestError{Reason: err.Error()}
			}
		}
		proofs = append(proofs, map[string]interface{}{
			"type":    proof.Type,
			"content": proof.Content,
		})
	}

	now := time.Now()
	submission := database.Submissions{
		SubmissionID: common.NewCutUUIDString(),
		MissionID:    mission.MissionID,
		SubmitterID:  req.SubmitterID,
		Proofs:       proofs,
		Status:       database.SubmissionStatusPending,
		CreatedAt:    now,
		ExpiresAt:    now.Add(e.policy.ReviewWindow),
	}
	if err := submission.Insert(); err != nil {
		return nil, err
	}

	if err := e.assignReviewers(mission, &submission, req.TaskType); err != nil {
		// 评审人分配失败不阻塞提交，由人工或重试补齐
		log.Error(errors.Wrapf(err, "assign reviewers for submission %v", submission.SubmissionID))
	}
	return &submission, nil
}

func (e *Engine) assignReviewers(mission *database.Missions, submission *database.Submissions, taskType string) error {
	profiles, err := database.ReviewerProfiles{}.SelectByPlatform(mission.Platform)
	if err != nil {
		return err
	}
	candidates := make([]*Candidate, 0, len(profiles))
	for _, profile := range profiles {
		candidates = append(candidates, NewCandidate(profile))
	}
	sub := &SubmissionContext{
		SubmissionID: submission.SubmissionID,
		SubmitterID:  submission.SubmitterID,
		Platform:     mission.Platform,
		MissionType:  mission.Type,
		TaskType:     taskType,
	}
	assignments := AssignReviewers(candidates, sub, e.policy.RequiredReviews)
	records := make([]*database.ReviewAssignments, 0, len(assignments))
	now := time.Now()
	for _, assignment := range assignments {
		records = append(records, &database.ReviewAssignments{
			AssignmentID:      common.NewCutUUIDString(),
			SubmissionID:      submission.SubmissionID,
			ReviewerID:        assignment.ReviewerID,
			Priority:          assignment.Priority,
			MatchedDimensions: assignment.MatchedDimensions,
			Status:            database.AssignmentStatusAssigned,
			CreatedAt:         now,
		})
	}
	return database.ReviewAssignments{}.BatchInsert(records)
}

// checkReviewable verifies every invariant that must hold under the
// submission row lock before a review may be appended: the reviewer is not
// the submitter, the review window is open, no decision has landed, the
// quorum is not full, and the reviewer has not already reviewed.
func (p Policy) checkReviewable(submission *database.Submissions, reviewerID string, priorReviews int64, now time.Time) error {
	if submission.SubmitterID == reviewerID {
		return &RequestError{Reason: "a submitter cannot review their own submission"}
	}
	// 过期校验基于提交时间，与评审进度无关
	if submission.Status == database.SubmissionStatusExpired || submission.IsExpired(now) {
		return &ExpiredError{Reason: fmt.Sprintf("submission %v review window has closed", submission.SubmissionID)}
	}
	if submission.Status.IsTerminal() {
		return &ConflictError{Reason: fmt.Sprintf("submission %v is already %v", submission.SubmissionID, submission.Status)}
	}
	if submission.ReviewCount >= p.RequiredReviews {
		return &ConflictError{Reason: fmt.Sprintf("submission %v already has %v reviews", submission.SubmissionID, submission.ReviewCount)}
	}
	if priorReviews > 0 {
		return &ConflictError{Reason: fmt.Sprintf("reviewer %v already reviewed submission %v", reviewerID, submission.SubmissionID)}
	}
	return nil
}

// applyReviews recomputes the submission's progress from the full rating set
// and reports whether the submitter's aggregate rating falls due with this
// call. The aggregate is due exactly once, when the quorum fills and the
// AggregateApplied flag is still clear; callers set the flag in the same
// transaction that applies the rating.
func (p Policy) applyReviews(submission *database.Submissions, ratings []int, now time.Time) (aggregateDue bool) {
	submission.ReviewCount = len(ratings)
	submission.AverageRating = MeanRating(ratings)
	submission.Status = p.Decide(submission.ReviewCount, submission.AverageRating)
	if submission.Status.IsTerminal() {
		submission.DecidedAt = &now
	}
	return submission.ReviewCount == p.RequiredReviews && !submission.AggregateApplied
}

type AddReviewRequest struct {
	SubmissionID string `json:"submission_id"`
	ReviewerID   string `json:"reviewer_id"`
	Rating       int    `json:"rating"`
	CommentLink  string `json:"reviewer_comment_link"`
}

// AddReview appends one reviewer's rating to a submission. The whole check-
// and-append runs under the submission row lock so the five-review cap and
// the one-review-per-reviewer rule hold under concurrent calls. A failed call
// mutates nothing and can be resubmitted.
func (e *Engine) AddReview(req *AddReviewRequest) (*database.Reviews, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, &RequestError{Reason: fmt.Sprintf("rating must be between 1 and 5, got %v", req.Rating)}
	}
	if _, err := social.ParseLink(req.CommentLink); err != nil {
		return nil, &RequestError{Reason: fmt.Sprintf("reviewer comment link invalid: %v", err.Error())}
	}

	var (
		review  *database.Reviews
		decided *database.Submissions
	)
	err := database.MissionPostgres.Transaction(func(tx *gorm.DB) error {
		submission, err := database.Submissions{}.SelectOneForUpdate(tx, req.SubmissionID)
		if err != nil {
			return err
		}
		if submission == nil {
			return &NotFoundError{Reason: fmt.Sprintf("submission %v not found", req.SubmissionID)}
		}
		duplicates, err := database.Reviews{}.CountByReviewer(tx, req.SubmissionID, req.ReviewerID)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := e.policy.checkReviewable(submission, req.ReviewerID, duplicates, now); err != nil {
			return err
		}

		entity := database.Reviews{
			ReviewID:     common.NewCutUUIDString(),
			SubmissionID: req.SubmissionID,
			ReviewerID:   req.ReviewerID,
			Rating:       req.Rating,
			CommentLink:  req.CommentLink,
			CreatedAt:    now,
		}
		if err := entity.Insert(tx); err != nil {
			if database.IsDuplicateKeyErr(err) {
				return &ConflictError{Reason: fmt.Sprintf("reviewer %v already reviewed submission %v", req.ReviewerID, req.SubmissionID)}
			}
			return err
		}

		reviews, err := database.Reviews{}.SelectBySubmission(tx, req.SubmissionID)
		if err != nil {
			return err
		}
		ratings := make([]int, 0, len(reviews))
		for _, r := range reviews {
			ratings = append(ratings, r.Rating)
		}
		// 聚合评分仅在满额评审时更新一次，以AggregateApplied保证幂等
		if e.policy.applyReviews(submission, ratings, now) {
			err := database.UserReviewRatings{}.ApplyRating(tx, submission.SubmitterID, submission.AverageRating)
			if err != nil {
				return err
			}
			submission.AggregateApplied = true
		}
		if err := submission.UpdateReviewProgress(tx); err != nil {
			return err
		}
		if err := (database.ReviewAssignments{}).UpdateCompleted(tx, req.SubmissionID, req.ReviewerID); err != nil {
			return err
		}
		review = &entity
		if submission.Status.IsTerminal() {
			decided = submission
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if decided != nil {
		e.publishDecision(decided)
	}
	return review, nil
}

func (e *Engine) publishDecision(submission *database.Submissions) {
	bus := databus.GetDataBus()
	if bus == nil {
		return
	}
	err := bus.Publish(databus.NewSubmissionDecidedEvent(submission))
	if err != nil {
		log.Error(err)
	}
}
