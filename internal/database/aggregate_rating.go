package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ensei.io/mission-engine/pkg/errors"
)

// UserReviewRatings is a submitter's running mean quality score across all
// consensus-completed submissions. Updated exactly once per submission, at
// the moment its final review lands.
type UserReviewRatings struct {
	ID               int64     `gorm:"primaryKey"`
	UserID           string    `gorm:"type:varchar(100);uniqueIndex" json:"user_id"`
	TotalRating      float64   `gorm:"type:numeric" json:"total_rating"`
	TotalSubmissions int       `gorm:"type:int" json:"total_submissions"`
	UpdatedAt        time.Time `gorm:"type:timestamp" json:"updated_at"`
}

func (UserReviewRatings) SelectOne(userID string) (*UserReviewRatings, error) {
	var entity UserReviewRatings
	err := MissionPostgres.Where("user_id = ?", userID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query user review rating")
	}
	return &entity, nil
}

// ApplyRating folds one submission's consensus average into the user's
// running mean inside tx. The row lock serializes concurrent submissions of
// the same user; callers guard exactly-once application with the submission's
// AggregateApplied flag in the same transaction.
func (UserReviewRatings) ApplyRating(tx *gorm.DB, userID string, rating float64) error {
	var entity UserReviewRatings
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&entity).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WrapAndReport(err, "lock user review rating")
	}
	now := time.Now()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := UserReviewRatings{
			UserID:           userID,
			TotalRating:      rating,
			TotalSubmissions: 1,
			UpdatedAt:        now,
		}
		err := tx.Create(&created).Error
		return errors.WrapAndReport(err, "create user review rating")
	}
	newCount := entity.TotalSubmissions + 1
	newMean := (entity.TotalRating*float64(entity.TotalSubmissions) + rating) / float64(newCount)
	err = tx.Model(&UserReviewRatings{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_rating":      newMean,
			"total_submissions": newCount,
			"updated_at":        now,
		}).Error
	return errors.WrapAndReport(err, "update user review rating")
}
