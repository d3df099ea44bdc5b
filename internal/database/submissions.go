package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ensei.io/mission-engine/pkg/errors"
)

type SubmissionStatus string

const (
	SubmissionStatusPending  = SubmissionStatus("pending")
	SubmissionStatusApproved = SubmissionStatus("approved")
	SubmissionStatusRejected = SubmissionStatus("rejected")
	SubmissionStatusExpired  = SubmissionStatus("expired")
)

func (in SubmissionStatus) IsValid() bool {
	switch in {
	case SubmissionStatusPending, SubmissionStatusApproved,
		SubmissionStatusRejected, SubmissionStatusExpired:
		return true
	default:
		return false
	}
}

func (in SubmissionStatus) IsTerminal() bool {
	return in != SubmissionStatusPending
}

// Submissions are mutated only by incoming reviews and the expiry sweep.
// AggregateApplied guards the exactly-once update of the submitter's running
// rating; RewardReleased is set when the wallet service acknowledges payout.
type Submissions struct {
	ID               int64            `gorm:"primaryKey"`
	SubmissionID     string           `gorm:"type:varchar(100);uniqueIndex" json:"submission_id"`
	MissionID        string           `gorm:"type:varchar(100);index" json:"mission_id"`
	SubmitterID      string           `gorm:"type:varchar(100);index" json:"submitter_id"`
	Proofs           JSONBArray       `gorm:"type:jsonb" json:"proofs"`
	Status           SubmissionStatus `gorm:"type:varchar(50);index" json:"status"`
	ReviewCount      int              `gorm:"type:int" json:"review_count"`
	AverageRating    float64          `gorm:"type:numeric" json:"average_rating"`
	AggregateApplied bool             `gorm:"type:bool" json:"-"`
	RewardReleased   bool             `gorm:"type:bool" json:"reward_released"`
	CreatedAt        time.Time        `gorm:"type:timestamp" json:"created_at"`
	ExpiresAt        time.Time        `gorm:"type:timestamp;index" json:"expires_at"`
	DecidedAt        *time.Time       `gorm:"type:timestamp" json:"decided_at,omitempty"`
}

// IsExpired reports whether the review window has passed. Expiry is a lazy
// predicate evaluated on read and write paths, never an active timer.
func (in Submissions) IsExpired(now time.Time) bool {
	return now.After(in.ExpiresAt)
}

func (in Submissions) Insert() error {
	err := MissionPostgres.Create(&in).Error
	return errors.WrapAndReport(err, "insert submission")
}

func (Submissions) SelectOne(submissionID string) (*Submissions, error) {
	var entity Submissions
	err := MissionPostgres.Where("submission_id = ?", submissionID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query one submission")
	}
	return &entity, nil
}

// SelectOneForUpdate locks the submission row for the duration of tx. Review
// appends serialize on this lock so the five-review cap and the one-review-
// per-reviewer invariants hold under concurrent submissions.
func (Submissions) SelectOneForUpdate(tx *gorm.DB, submissionID string) (*Submissions, error) {
	var entity Submissions
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("submission_id = ?", submissionID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "lock submission for review")
	}
	return &entity, nil
}

func (in Submissions) UpdateReviewProgress(tx *gorm.DB) error {
	err := tx.Model(&Submissions{}).Where("submission_id = ?", in.SubmissionID).
		Updates(map[string]interface{}{
			"review_count":      in.ReviewCount,
			"average_rating":    in.AverageRating,
			"status":            in.Status,
			"aggregate_applied": in.AggregateApplied,
			"decided_at":        in.DecidedAt,
		}).Error
	return errors.WrapAndReport(err, "update submission review progress")
}

func (Submissions) Query(userID string, status SubmissionStatus, limit, offset int) ([]*Submissions, error) {
	query := MissionPostgres.Order("created_at desc").Limit(limit).Offset(offset)
	if userID != "" {
		query = query.Where("submitter_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var submissions []*Submissions
	if err := query.Find(&submissions).Error; err != nil {
		return nil, errors.WrapAndReport(err, "query submissions")
	}
	return submissions, nil
}

func (Submissions) QueryByMission(missionID string) ([]*Submissions, error) {
	var submissions []*Submissions
	err := MissionPostgres.Where("mission_id = ?", missionID).
		Order("created_at asc").Find(&submissions).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query mission submissions")
	}
	return submissions, nil
}

// SelectExpiredPending returns pending submissions whose review window has
// passed, for the sweep to report as expired.
func (Submissions) SelectExpiredPending(now time.Time, limit int) ([]*Submissions, error) {
	var submissions []*Submissions
	err := MissionPostgres.Where("status = ? AND expires_at < ?",
		SubmissionStatusPending, now).Limit(limit).Find(&submissions).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query expired pending submissions")
	}
	return submissions, nil
}

// UpdateExpired flips a pending submission to expired. The status guard keeps
// the sweep from clobbering a review that landed between select and update.
func (Submissions) UpdateExpired(submissionID string, decidedAt time.Time) (bool, error) {
	result := MissionPostgres.Model(&Submissions{}).
		Where("submission_id = ? AND status = ?", submissionID, SubmissionStatusPending).
		Updates(map[string]interface{}{
			"status":     SubmissionStatusExpired,
			"decided_at": decidedAt,
		})
	if result.Error != nil {
		return false, errors.WrapAndReport(result.Error, "update submission expired")
	}
	return result.RowsAffected > 0, nil
}

func (Submissions) UpdateRewardReleased(submissionID string) error {
	err := MissionPostgres.Model(&Submissions{}).
		Where("submission_id = ?", submissionID).
		Update("reward_released", true).Error
	return errors.WrapAndReport(err, "update submission reward released")
}
