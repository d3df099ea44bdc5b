package review

import (
	"context"
	"encoding/json"
	"sync"

	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/atomic"

	"ensei.io/mission-engine/internal/aws"
	"ensei.io/mission-engine/internal/config"
	"ensei.io/mission-engine/internal/database"
	"ensei.io/mission-engine/pkg/errors"
	"ensei.io/mission-engine/pkg/log"
)

// RewardAckManager consumes wallet-service acknowledgements for released
// rewards and marks the submission paid. Settlement itself lives in the
// wallet service; the engine only records the outcome.
type RewardAckManager struct {
	queueURL string
	acked    atomic.Int64
}

var (
	initRewardAckManagerOnce sync.Once
	internalRewardAckManager *RewardAckManager
)

func NewRewardAckManager() *RewardAckManager {
	initRewardAckManagerOnce.Do(func() {
		internalRewardAckManager = &RewardAckManager{}
	})
	return internalRewardAckManager
}

func (m *RewardAckManager) Apply(conf *config.Configuration) {
	m.queueURL = conf.AwsS3.Queues.RewardAckQueueURL
}

func (m *RewardAckManager) Start(ctx context.Context) {
	if m.queueURL == "" {
		log.Warn("Reward ack queue not configured, skipping worker.")
		return
	}
	aws.Client.NewSQSWorker(ctx, m.queueURL, m.handleMessage)
}

type rewardAckMessage struct {
	SubmissionID string `json:"submission_id"`
	TxReference  string `json:"tx_reference"`
}

func (m *RewardAckManager) handleMessage(msg *sqstypes.Message) (bool, error) {
	if msg.Body == nil {
		return true, nil
	}
	var ack rewardAckMessage
	if err := json.Unmarshal([]byte(*msg.Body), &ack); err != nil {
		// 非法消息直接出队，避免无限重投
		log.Error(errors.Wrapf(err, "decode reward ack %v", *msg.Body))
		return true, nil
	}
	if ack.SubmissionID == "" {
		return true, nil
	}
	err := database.Submissions{}.UpdateRewardReleased(ack.SubmissionID)
	if err != nil {
		return false, err
	}
	m.acked.Inc()
	log.Debugf("Reward release acknowledged for submission %v, tx %v", ack.SubmissionID, ack.TxReference)
	return true, nil
}
