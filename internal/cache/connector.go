package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"

	"ensei.io/mission-engine/internal/config"
	"ensei.io/mission-engine/pkg/errors"
	"ensei.io/mission-engine/pkg/log"
)

var (
	Redis       *redis.Client
	RateLimiter *redis_rate.Limiter
)

func Init(cred *config.DBCredential) {
	db, _ := strconv.ParseInt(cred.Database, 10, 64)
	Redis = redis.NewClient(&redis.Options{
		Addr: cred.GetRedisAddress(),
		DB:   int(db),
	})
	if _, err := Redis.Ping(context.TODO()).Result(); err != nil {
		log.Fatalf("ping to redis:%v", err)
	}
	RateLimiter = redis_rate.NewLimiter(Redis)
}

func Close() {
	if Redis != nil {
		Redis.Close()
		Redis = nil
	}
}

const (
	quoteCachePrefix = "pricing_quote:"
	quoteCacheTTL    = 10 * time.Minute
)

// GetPricingQuote returns a cached quote body for the canonical request hash,
// or empty when absent. Quotes are deterministic so the cache never serves a
// stale price.
func GetPricingQuote(ctx context.Context, requestHash string) (string, error) {
	body, err := Redis.Get(ctx, quoteCachePrefix+requestHash).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.WrapAndReport(err, "query pricing quote cache")
	}
	return body, nil
}

func SetPricingQuote(ctx context.Context, requestHash, body string) error {
	err := Redis.Set(ctx, quoteCachePrefix+requestHash, body, quoteCacheTTL).Err()
	return errors.WrapAndReport(err, "cache pricing quote")
}

// DeletePricingQuotes drops every cached quote. Quotes are keyed by request
// hash, so a catalog or preset deploy that changes prices must flush them.
func DeletePricingQuotes() error {
	return DeleteFromPrefix(quoteCachePrefix)
}

// AllowReviewSubmit rate-limits review submissions per reviewer.
func AllowReviewSubmit(ctx context.Context, reviewerID string, perMinute int) (bool, error) {
	key := fmt.Sprintf("review_submit:%v", reviewerID)
	result, err := RateLimiter.Allow(ctx, key, redis_rate.PerMinute(perMinute))
	if err != nil {
		return false, errors.WrapAndReport(err, "rate limit review submit")
	}
	return result.Allowed > 0, nil
}

// DeleteFromPrefix removes every key under prefix.
func DeleteFromPrefix(prefix string) error {
	var (
		cursor uint64
		match        = fmt.Sprintf("%v*", prefix)
		ctx          = context.TODO()
		count  int64 = 200
	)
	log.Debugf("deleting cache pattern %v", match)
	for {
		keys, c, err := Redis.Scan(ctx, cursor, match, count).Result()
		if err != nil {
			return errors.WrapAndReport(err, "scan caches")
		}
		cursor = c
		if len(keys) > 0 {
			err = Redis.Del(ctx, keys...).Err()
			if err != nil {
				return errors.WrapAndReport(err, "delete caches")
			}
		}
		if c == 0 {
			return nil
		}
	}
}
