package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetFromRedis loads a cached value into target. A cache miss is not an
// error; the target is simply left untouched.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) error {
	cachedData, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return err
	}
	return nil
}

// SetToRedis stores a value as JSON with the given TTL.
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := rdb.Set(ctx, key, dataJSON, ttl).Err(); err != nil {
		return err
	}
	return nil
}

// DeleteFromRedis drops one cached key.
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, key string) error {
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	return nil
}

// DeleteByPattern drops every key matching a glob pattern, scanning in
// batches so large keyspaces do not block redis.
func DeleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Cache keys used by the booking and rate endpoints.
const (
	BookingListCacheKey     = "bookings:all"
	RateCalendarCachePrefix = "rates:calendar:"
)

// RateCalendarCacheKey builds the per-month calendar cache key.
func RateCalendarCacheKey(year int, month time.Month) string {
	return fmt.Sprintf("%s%04d-%02d", RateCalendarCachePrefix, year, int(month))
}

// CacheService clears the derived caches as a scheduled job.
type CacheService struct {
	redis *redis.Client
}

func NewCacheService(rdb *redis.Client) *CacheService {
	return &CacheService{redis: rdb}
}

// FlushCalendarCaches drops the booking list and every cached calendar
// month. Run nightly so stale availability views never survive a day
// boundary.
func (s *CacheService) FlushCalendarCaches() error {
	if s.redis == nil {
		return nil
	}
	ctx := context.Background()
	if err := DeleteByPattern(ctx, s.redis, RateCalendarCachePrefix+"*"); err != nil {
		return err
	}
	return DeleteFromRedis(ctx, s.redis, BookingListCacheKey)
}
