package database

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ensei.io/mission-engine/internal/config"
	"ensei.io/mission-engine/pkg/log"
)

var (
	MissionPostgres *gorm.DB
)

func Close(ctx context.Context) {

}

func InitMissionPostgres(conf *config.DBCredential) {
	cli, err := gorm.Open(postgres.Open(conf.Dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Fatalf("connect to pg:%v", err)
	}
	MissionPostgres = cli

	db, err := cli.DB()
	if err != nil {
		log.Fatalf("get pg conn:%v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("ping to pg:%v", err)
	}
	log.Info("Connected to mission postgres...")

	err = MissionPostgres.AutoMigrate(
		&Missions{},
		&Submissions{},
		&Reviews{},
		&ReviewerProfiles{},
		&ReviewAssignments{},
		&UserReviewRatings{},
	)
	if err != nil {
		log.Fatalf("autoMigrate tables:%v", err)
	}
}
