package services

import (
	"context"
	"sync"
	"time"

	"github.com/address-extractor/app/models"
)

// MemoryCacheService cache in-memory đơn giản với TTL, dùng khi chạy
// không có Redis/MongoDB (dev, test, CLI)
type MemoryCacheService struct {
	cache      map[string]*models.ExtractResult
	timestamps map[string]time.Time
	mu         sync.RWMutex
	ttl        time.Duration

	hits   int64
	misses int64
}

// NewMemoryCacheService tạo mới MemoryCacheService
func NewMemoryCacheService(ttl time.Duration) *MemoryCacheService {
	return &MemoryCacheService{
		cache:      make(map[string]*models.ExtractResult),
		timestamps: make(map[string]time.Time),
		ttl:        ttl,
	}
}

// Get lấy kết quả từ cache
func (cs *MemoryCacheService) Get(ctx context.Context, key string) (*models.ExtractResult, bool, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if result, exists := cs.cache[key]; exists {
		if cs.isExpired(key) {
			delete(cs.cache, key)
			delete(cs.timestamps, key)
			cs.misses++
			return nil, false, nil
		}
		cs.hits++
		return result, true, nil
	}

	cs.misses++
	return nil, false, nil
}

// Set lưu kết quả vào cache
func (cs *MemoryCacheService) Set(ctx context.Context, key string, result *models.ExtractResult) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.timestamps[key] = time.Now()
	cs.cache[key] = result

	return nil
}

// Delete xóa item khỏi cache
func (cs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
	delete(cs.timestamps, key)

	return nil
}

// Clear xóa toàn bộ cache
func (cs *MemoryCacheService) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache = make(map[string]*models.ExtractResult)
	cs.timestamps = make(map[string]time.Time)

	return nil
}

// InvalidateByGazetteerVersion xóa các entry build từ gazetteer version khác
func (cs *MemoryCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key, result := range cs.cache {
		if result.GazetteerVersion != gazetteerVersion {
			delete(cs.cache, key)
			delete(cs.timestamps, key)
		}
	}

	return nil
}

// GetStats lấy thống kê cache
func (cs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	total := cs.hits + cs.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(cs.hits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  cs.hits,
		TotalMiss:  cs.misses,
		TotalItems: int64(len(cs.cache)),
	}, nil
}

// Exists kiểm tra key có tồn tại không
func (cs *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	_, exists := cs.cache[key]
	return exists && !cs.isExpired(key), nil
}

// GetTTL lấy TTL còn lại của key
func (cs *MemoryCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	timestamp, exists := cs.timestamps[key]
	if !exists {
		return 0, nil
	}

	remaining := cs.ttl - time.Since(timestamp)
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}

// CleanupExpired xóa các item hết hạn
func (cs *MemoryCacheService) CleanupExpired() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key := range cs.cache {
		if cs.isExpired(key) {
			delete(cs.cache, key)
			delete(cs.timestamps, key)
		}
	}
}

// StartCleanupWorker khởi động worker dọn dẹp cache định kỳ
func (cs *MemoryCacheService) StartCleanupWorker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			cs.CleanupExpired()
		}
	}()
}

// Close không cần làm gì cho in-memory cache
func (cs *MemoryCacheService) Close() error {
	return nil
}

// isExpired kiểm tra item có hết hạn không. Caller giữ lock.
func (cs *MemoryCacheService) isExpired(key string) bool {
	timestamp, exists := cs.timestamps[key]
	if !exists {
		return true
	}
	return time.Since(timestamp) > cs.ttl
}
