package main

import (
	"context"
	"time"

	"ensei.io/mission-engine/internal/aws"
	"ensei.io/mission-engine/internal/cache"
	"ensei.io/mission-engine/internal/config"
	"ensei.io/mission-engine/internal/database"
	"ensei.io/mission-engine/internal/databus"
	"ensei.io/mission-engine/internal/http"
	"ensei.io/mission-engine/internal/review"
	"ensei.io/mission-engine/internal/starter"
	"ensei.io/mission-engine/pkg/errors"
	"ensei.io/mission-engine/pkg/log"
)

func main() {
	log.Infof("Starting app")
	startApp()
}

func startApp() {
	defer func() {
		if i := recover(); i != nil {
			log.Fatal(errors.ErrorfAndReport("%v", i))
		}
	}()
	log.SetLevel(0)
	config.Read()
	if config.Global.SentryDSN != "" {
		if err := errors.NewSentryReporter(config.Global.SentryDSN); err != nil {
			log.Error(err)
		}
	}
	if config.Global.LarkAlarmWebhook != "" {
		errors.NewLarkReporter(config.Global.LarkAlarmWebhook, time.Minute)
	}
	aws.Init(config.Global.AwsS3.Bucket.Name, config.Global.AwsS3.Bucket.Region)
	ctx := context.Background()
	database.InitMissionPostgres(&config.Global.Postgres)
	databus.InitDataBus(config.Global.KafkaServer)
	defer database.Close(ctx)
	cache.Init(&config.Global.RedisCredential)
	defer cache.Close()

	starter.Start(ctx,
		review.NewExpiryManager(),
		review.NewRewardAckManager(),
	)

	http.NewServer()
}
