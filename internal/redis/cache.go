package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-chat/internal/domain/rating"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - doctor:{doctor_id}:summary - short TTL, average score and rating count

// CacheConfig contains configuration for caching
type CacheConfig struct {
	SummaryTTL time.Duration
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{SummaryTTL: 30 * time.Second}
}

// CacheStore handles caching in Redis
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	if config.SummaryTTL <= 0 {
		config.SummaryTTL = DefaultCacheConfig().SummaryTTL
	}
	return &CacheStore{
		client: client,
		config: config,
	}
}

func summaryKey(doctorID uuid.UUID) string {
	return fmt.Sprintf("doctor:%s:summary", doctorID.String())
}

// GetDoctorSummary reports a cache miss as ok == false with a nil error.
func (c *CacheStore) GetDoctorSummary(ctx context.Context, doctorID uuid.UUID) (rating.DoctorSummary, bool, error) {
	data, err := c.client.Get(ctx, summaryKey(doctorID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return rating.DoctorSummary{}, false, nil
	}
	if err != nil {
		return rating.DoctorSummary{}, false, err
	}

	var summary rating.DoctorSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return rating.DoctorSummary{}, false, err
	}
	return summary, true, nil
}

func (c *CacheStore) SetDoctorSummary(ctx context.Context, summary rating.DoctorSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(summary.DoctorID), data, c.config.SummaryTTL).Err()
}

func (c *CacheStore) InvalidateDoctorSummary(ctx context.Context, doctorID uuid.UUID) error {
	return c.client.Del(ctx, summaryKey(doctorID)).Err()
}
