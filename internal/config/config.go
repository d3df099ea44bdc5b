package config

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// DBCredential struct
type DBCredential struct {
	Address  string `yaml:"address"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

func (c *DBCredential) Dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		c.Address, c.Port, c.User, c.Password, c.Database)
}

// GetRedisAddress prints redis credential info.
func (c *DBCredential) GetRedisAddress() string {
	return fmt.Sprintf("%v:%v", c.Address, c.Port)
}

// Configuration struct
type Configuration struct {
	HTTPListen       string       `yaml:"http_listen"`
	Postgres         DBCredential `yaml:"postgres"`
	RedisCredential  DBCredential `yaml:"redis"`
	AwsS3            aws          `yaml:"aws"`
	KafkaServer      string       `yaml:"kafka-server"`
	SentryDSN        string       `yaml:"sentry_dsn"`
	LarkAlarmWebhook string       `yaml:"lark_alarm_webhook"`
	Review           ReviewPolicy `yaml:"review"`
}

// ReviewPolicy tunes the submission review layer. Zero values fall back to
// the platform defaults at startup.
type ReviewPolicy struct {
	ReviewersPerSubmission int     `yaml:"reviewers_per_submission"`
	ApprovalThreshold      float64 `yaml:"approval_threshold"`
	ReviewWindowHours      int     `yaml:"review_window_hours"`
	ReviewRatePerMinute    int     `yaml:"review_rate_per_minute"`
	SweepIntervalSec       int     `yaml:"sweep_interval_sec"`
}

func (in *ReviewPolicy) applyDefaults() {
	if in.ReviewersPerSubmission <= 0 {
		in.ReviewersPerSubmission = 5
	}
	if in.ApprovalThreshold <= 0 {
		in.ApprovalThreshold = 3.0
	}
	if in.ReviewWindowHours <= 0 {
		in.ReviewWindowHours = 24
	}
	if in.ReviewRatePerMinute <= 0 {
		in.ReviewRatePerMinute = 30
	}
	if in.SweepIntervalSec <= 0 {
		in.SweepIntervalSec = 60
	}
}

// aws conf
type aws struct {
	Bucket awsBucket `yaml:"bucket"`
	Queues awsQueues `yaml:"queues"`
}

type awsBucket struct {
	Name   string `yaml:"name"`
	Region string `yaml:"region"`
}

type awsQueues struct {
	RewardAckQueueURL string `yaml:"reward_ack_queue_url"`
}

func readConfig(path string) (Configuration, error) {
	logrus.Info("Starting to load configuration file ...")
	dat, err := ioutil.ReadFile(path)
	if err != nil {
		logrus.Fatal(err)
	}
	t := Configuration{}
	err = yaml.Unmarshal(dat, &t)

	if err != nil {
		if os.IsNotExist(err) {
			logrus.Fatalf("file %s does not exist", path)
		} else {
			logrus.Fatalf("fail to decode config error: %v", err)
		}
	}
	return t, nil
}

var Global *Configuration

// Read reads configuration information from yml.
func Read() {
	configFilePath := flag.String("config-path", "internal/config/config.yml", "The path to the configuration file")
	flag.Parse()
	logrus.Infof("Loading configuration file from %s", *configFilePath)
	globalConfig, err := readConfig(*configFilePath)
	if err != nil {
		logrus.Fatal(err)
	}
	globalConfig.Review.applyDefaults()
	if globalConfig.HTTPListen == "" {
		globalConfig.HTTPListen = ":8080"
	}
	Global = &globalConfig
}
