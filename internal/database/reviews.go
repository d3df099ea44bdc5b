package database

import (
	"time"

	"gorm.io/gorm"

	"ensei.io/mission-engine/pkg/errors"
)

// Reviews are immutable once created. The unique index on submission and
// reviewer backstops the duplicate check performed under the submission lock.
type Reviews struct {
	ID           int64     `gorm:"primaryKey"`
	ReviewID     string    `gorm:"type:varchar(100);uniqueIndex" json:"review_id"`
	SubmissionID string    `gorm:"type:varchar(100);uniqueIndex:uni_submission_reviewer" json:"submission_id"`
	ReviewerID   string    `gorm:"type:varchar(100);uniqueIndex:uni_submission_reviewer" json:"reviewer_id"`
	Rating       int       `gorm:"type:int" json:"rating"`
	CommentLink  string    `gorm:"type:varchar(500)" json:"comment_link"`
	CreatedAt    time.Time `gorm:"type:timestamp" json:"created_at"`
}

func (in Reviews) Insert(tx *gorm.DB) error {
	err := tx.Create(&in).Error
	return errors.WrapAndReport(err, "insert review")
}

func (Reviews) SelectBySubmission(tx *gorm.DB, submissionID string) ([]*Reviews, error) {
	var reviews []*Reviews
	err := tx.Where("submission_id = ?", submissionID).
		Order("created_at asc").Find(&reviews).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query submission reviews")
	}
	return reviews, nil
}

func (Reviews) CountByReviewer(tx *gorm.DB, submissionID, reviewerID string) (int64, error) {
	var count int64
	err := tx.Model(&Reviews{}).
		Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).
		Count(&count).Error
	if err != nil {
		return 0, errors.WrapAndReport(err, "count reviewer reviews")
	}
	return count, nil
}
