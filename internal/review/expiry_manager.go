package review

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"ensei.io/mission-engine/internal/config"
	"ensei.io/mission-engine/internal/database"
	"ensei.io/mission-engine/internal/databus"
	"ensei.io/mission-engine/pkg/concurrent"
	"ensei.io/mission-engine/pkg/log"
)

const expiredSweepBatch = 200

// ExpiryManager periodically reports pending submissions whose review window
// has closed. Expiry itself is a lazy predicate checked on every read and
// write path; the sweep only makes the state visible and releases the open
// assignments. Expired submissions are reported, never deleted.
type ExpiryManager struct {
	interval     time.Duration
	sweptTotal   atomic.Int64
	sweepLimiter concurrent.Limiter
}

var (
	initExpiryManagerOnce sync.Once
	internalExpiryManager *ExpiryManager
)

func NewExpiryManager() *ExpiryManager {
	initExpiryManagerOnce.Do(func() {
		internalExpiryManager = &ExpiryManager{
			interval:     time.Minute,
			sweepLimiter: concurrent.NewLimiter(4),
		}
	})
	return internalExpiryManager
}

func (m *ExpiryManager) Apply(conf *config.Configuration) {
	if conf.Review.SweepIntervalSec > 0 {
		m.interval = time.Duration(conf.Review.SweepIntervalSec) * time.Second
	}
}

func (m *ExpiryManager) Start(ctx context.Context) {
	go m.sweepLoop(ctx)
}

func (m *ExpiryManager) sweepLoop(ctx context.Context) {
	log.Infof("Submission expiry sweep started, interval %v...", m.interval)
	defer log.Info("Submission expiry sweep stopped...")
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweepOnce()
		}
	}
}

func (m *ExpiryManager) sweepOnce() {
	now := time.Now()
	submissions, err := database.Submissions{}.SelectExpiredPending(now, expiredSweepBatch)
	if err != nil {
		log.Error(err)
		return
	}
	if len(submissions) == 0 {
		return
	}
	var wg sync.WaitGroup
	for _, submission := range submissions {
		submission := submission
		wg.Add(1)
		m.sweepLimiter.Add()
		go func() {
			defer wg.Done()
			defer m.sweepLimiter.Done()
			m.expire(submission, now)
		}()
	}
	wg.Wait()
	log.Infof("Expiry sweep reported %v submissions, %v total since start",
		len(submissions), m.sweptTotal.Load())
}

func (m *ExpiryManager) expire(submission *database.Submissions, now time.Time) {
	// 状态条件更新，避免覆盖刚刚落库的最终评审
	expired, err := database.Submissions{}.UpdateExpired(submission.SubmissionID, now)
	if err != nil {
		log.Error(err)
		return
	}
	if !expired {
		return
	}
	if err := (database.ReviewAssignments{}).ExpireOpen(submission.SubmissionID); err != nil {
		log.Error(err)
	}
	m.sweptTotal.Inc()

	bus := databus.GetDataBus()
	if bus == nil {
		return
	}
	submission.Status = database.SubmissionStatusExpired
	submission.DecidedAt = &now
	if err := bus.Publish(databus.NewSubmissionDecidedEvent(submission)); err != nil {
		log.Error(err)
	}
}
