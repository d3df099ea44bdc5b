package database

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"ensei.io/mission-engine/internal/catalog"
	"ensei.io/mission-engine/pkg/errors"
)

// MissionFixedSpec holds the priced fields of a fixed-model mission. Exactly
// one of the two model specs is set per mission, keyed by the Model column.
type MissionFixedSpec struct {
	Cap           int     `json:"cap"`
	PerUserHonors int64   `json:"per_user_honors"`
	TotalHonors   int64   `json:"total_honors"`
	TotalUsd      float64 `json:"total_usd"`
}

func (j MissionFixedSpec) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *MissionFixedSpec) Scan(value interface{}) error {
	return json.Unmarshal(value.([]byte), &j)
}

// MissionDegenSpec holds the priced fields of a degen-model mission.
type MissionDegenSpec struct {
	DurationHours   int     `json:"duration_hours"`
	WinnersCap      int     `json:"winners_cap"`
	TotalCostUsd    float64 `json:"total_cost_usd"`
	UserPoolHonors  int64   `json:"user_pool_honors"`
	PerWinnerHonors int64   `json:"per_winner_honors"`
}

func (j MissionDegenSpec) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *MissionDegenSpec) Scan(value interface{}) error {
	return json.Unmarshal(value.([]byte), &j)
}

// Missions are created once by the validator and pricing engine. The priced
// fields are immutable afterwards: re-pricing means creating a new mission.
type Missions struct {
	ID        int64                 `gorm:"primaryKey"`
	MissionID string                `gorm:"type:varchar(100);uniqueIndex" json:"mission_id"`
	CreatorID string                `gorm:"type:varchar(100);index" json:"creator_id"`
	Platform  catalog.Platform      `gorm:"type:varchar(50)" json:"platform"`
	Type      catalog.MissionType   `gorm:"type:varchar(50)" json:"type"`
	Model     catalog.MissionModel  `gorm:"type:varchar(50)" json:"model"`
	Target    catalog.TargetProfile `gorm:"type:varchar(50)" json:"target"`
	Tasks     JSONBStringArray      `gorm:"type:jsonb" json:"tasks"`
	Fixed     *MissionFixedSpec     `gorm:"type:jsonb" json:"fixed,omitempty"`
	Degen     *MissionDegenSpec     `gorm:"type:jsonb" json:"degen,omitempty"`
	CreatedAt time.Time             `gorm:"type:timestamp" json:"created_at"`
	EndsAt    *time.Time            `gorm:"type:timestamp" json:"ends_at,omitempty"`
}

func (in Missions) Insert() error {
	err := MissionPostgres.Create(&in).Error
	return errors.WrapAndReport(err, "insert mission")
}

func (Missions) SelectOne(missionID string) (*Missions, error) {
	var entity Missions
	err := MissionPostgres.Where("mission_id = ?", missionID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query one mission")
	}
	return &entity, nil
}

func (Missions) QueryOngoing(limit, offset int) ([]*Missions, error) {
	var missions []*Missions
	now := time.Now()
	err := MissionPostgres.Where("ends_at IS NULL OR ends_at > ?", now).
		Order("created_at desc").Limit(limit).Offset(offset).Find(&missions).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query ongoing missions")
	}
	return missions, nil
}

func (Missions) QueryByCreator(creatorID string, limit, offset int) ([]*Missions, error) {
	var missions []*Missions
	err := MissionPostgres.Where("creator_id = ?", creatorID).
		Order("created_at desc").Limit(limit).Offset(offset).Find(&missions).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query creator missions")
	}
	return missions, nil
}
