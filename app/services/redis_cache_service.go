package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/address-extractor/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix = "addr_extractor:"
	redisResultTTL = 24 * time.Hour
)

// RedisCacheService tier cache nóng trên Redis. Value là ExtractResult
// JSON; key là raw fingerprint, thêm prefix để chia sẻ instance Redis
// với service khác mà không đụng keyspace.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService kết nối Redis theo URL và ping thử trước khi
// nhận. redisURL theo format của redis.ParseURL (redis://host:port/db).
func NewRedisCacheService(redisURL string, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCacheService{
		client: client,
		logger: logger,
		ttl:    redisResultTTL,
	}, nil
}

func redisKey(fingerprint string) string {
	return redisKeyPrefix + fingerprint
}

// Get đọc kết quả extract theo fingerprint
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.ExtractResult, bool, error) {
	raw, err := rcs.client.Get(ctx, redisKey(key)).Bytes()
	switch {
	case err == redis.Nil:
		rcs.misses.Add(1)
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("lỗi đọc Redis: %w", err)
	}

	var result models.ExtractResult
	if err := json.Unmarshal(raw, &result); err != nil {
		// Entry hỏng coi như miss, để caller ghi đè bằng kết quả mới
		rcs.logger.Warn("Entry Redis không decode được, bỏ qua",
			zap.Error(err), zap.String("fingerprint", key))
		rcs.misses.Add(1)
		return nil, false, nil
	}

	rcs.hits.Add(1)
	return &result, true, nil
}

// Set ghi kết quả extract với TTL mặc định
func (rcs *RedisCacheService) Set(ctx context.Context, key string, result *models.ExtractResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("lỗi marshal kết quả extract: %w", err)
	}
	if err := rcs.client.Set(ctx, redisKey(key), data, rcs.ttl).Err(); err != nil {
		return fmt.Errorf("lỗi ghi Redis: %w", err)
	}
	return nil
}

// Delete xóa một fingerprint
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	if err := rcs.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("lỗi xóa khỏi Redis: %w", err)
	}
	return nil
}

// Clear xóa mọi key mang prefix của service. Dùng SCAN thay vì KEYS
// để không block Redis khi keyspace lớn.
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	deleted := 0
	iter := rcs.client.Scan(ctx, 0, redisKeyPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		if err := rcs.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("lỗi xóa key %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("lỗi scan keyspace: %w", err)
	}

	rcs.logger.Info("Đã clear Redis cache", zap.Int("keys_deleted", deleted))
	return nil
}

// InvalidateByGazetteerVersion: Redis không index theo version, mọi
// entry cũ đều đáng nghi nên clear toàn bộ tier. Tier Mongo giữ việc
// xóa chọn lọc.
func (rcs *RedisCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	return rcs.Clear(ctx)
}

// GetStats thống kê hit/miss của process này và số key đang sống
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := rcs.hits.Load()
	misses := rcs.misses.Load()

	var items int64
	iter := rcs.client.Scan(ctx, 0, redisKeyPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		items++
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("lỗi đếm keys: %w", err)
	}

	stats := &CacheStats{
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: items,
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats, nil
}

// Exists kiểm tra fingerprint có trong cache không
func (rcs *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	n, err := rcs.client.Exists(ctx, redisKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetTTL TTL còn lại của một fingerprint
func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return rcs.client.TTL(ctx, redisKey(key)).Result()
}

// SetTTL đổi TTL cho các lần Set sau
func (rcs *RedisCacheService) SetTTL(ttl time.Duration) {
	rcs.ttl = ttl
}

// Close đóng kết nối Redis
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}
