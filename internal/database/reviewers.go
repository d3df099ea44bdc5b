package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ensei.io/mission-engine/internal/catalog"
	"ensei.io/mission-engine/pkg/errors"
)

type ReviewerLevel string

const (
	ReviewerLevelBeginner     = ReviewerLevel("beginner")
	ReviewerLevelIntermediate = ReviewerLevel("intermediate")
	ReviewerLevelAdvanced     = ReviewerLevel("advanced")
	ReviewerLevelExpert       = ReviewerLevel("expert")
)

func (in ReviewerLevel) IsValid() bool {
	switch in {
	case ReviewerLevelBeginner, ReviewerLevelIntermediate,
		ReviewerLevelAdvanced, ReviewerLevelExpert:
		return true
	default:
		return false
	}
}

// ReviewerProfiles describe a reviewer's platform expertise, used only for
// assignment scoring.
type ReviewerProfiles struct {
	ID            int64            `gorm:"primaryKey"`
	ReviewerID    string           `gorm:"type:varchar(100);uniqueIndex" json:"reviewer_id"`
	Platform      catalog.Platform `gorm:"type:varchar(50);index" json:"platform"`
	Specialties   JSONBStringArray `gorm:"type:jsonb" json:"specialties"`
	Level         ReviewerLevel    `gorm:"type:varchar(50)" json:"level"`
	AverageRating float64          `gorm:"type:numeric" json:"average_rating"`
	UpdatedAt     time.Time        `gorm:"type:timestamp" json:"updated_at"`
}

func (in ReviewerProfiles) Save() error {
	err := MissionPostgres.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "reviewer_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"platform":       in.Platform,
			"specialties":    in.Specialties,
			"level":          in.Level,
			"average_rating": in.AverageRating,
			"updated_at":     in.UpdatedAt,
		}),
	}).Create(&in).Error
	return errors.WrapAndReport(err, "save reviewer profile")
}

func (ReviewerProfiles) SelectByPlatform(platform catalog.Platform) ([]*ReviewerProfiles, error) {
	var profiles []*ReviewerProfiles
	err := MissionPostgres.Where("platform = ?", platform).
		Order("id asc").Find(&profiles).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query platform reviewers")
	}
	return profiles, nil
}

type AssignmentStatus string

const (
	AssignmentStatusAssigned  = AssignmentStatus("assigned")
	AssignmentStatusCompleted = AssignmentStatus("completed")
	AssignmentStatusExpired   = AssignmentStatus("expired")
)

// ReviewAssignments audit which reviewers were proposed for a submission and
// at what priority.
type ReviewAssignments struct {
	ID                int64            `gorm:"primaryKey"`
	AssignmentID      string           `gorm:"type:varchar(100);uniqueIndex" json:"assignment_id"`
	SubmissionID      string           `gorm:"type:varchar(100);uniqueIndex:uni_assignment" json:"submission_id"`
	ReviewerID        string           `gorm:"type:varchar(100);uniqueIndex:uni_assignment" json:"reviewer_id"`
	Priority          int              `gorm:"type:int" json:"priority"`
	MatchedDimensions JSONBStringArray `gorm:"type:jsonb" json:"matched_dimensions"`
	Status            AssignmentStatus `gorm:"type:varchar(50);index" json:"status"`
	CreatedAt         time.Time        `gorm:"type:timestamp" json:"created_at"`
}

func (ReviewAssignments) BatchInsert(assignments []*ReviewAssignments) error {
	if len(assignments) == 0 {
		return nil
	}
	err := MissionPostgres.Create(&assignments).Error
	return errors.WrapAndReport(err, "batch insert review assignments")
}

func (ReviewAssignments) SelectBySubmission(submissionID string) ([]*ReviewAssignments, error) {
	var assignments []*ReviewAssignments
	err := MissionPostgres.Where("submission_id = ?", submissionID).
		Order("priority desc").Find(&assignments).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query submission assignments")
	}
	return assignments, nil
}

func (ReviewAssignments) UpdateCompleted(tx *gorm.DB, submissionID, reviewerID string) error {
	err := tx.Model(&ReviewAssignments{}).
		Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).
		Update("status", AssignmentStatusCompleted).Error
	return errors.WrapAndReport(err, "update assignment completed")
}

// ExpireOpen marks every still-open assignment of a submission expired.
func (ReviewAssignments) ExpireOpen(submissionID string) error {
	err := MissionPostgres.Model(&ReviewAssignments{}).
		Where("submission_id = ? AND status = ?", submissionID, AssignmentStatusAssigned).
		Update("status", AssignmentStatusExpired).Error
	return errors.WrapAndReport(err, "expire open assignments")
}
