package services

import (
	"context"
	"fmt"
	"time"

	"github.com/address-extractor/app/models"
	"go.uber.org/zap"
)

// HybridCacheService ghép Redis (tier nóng) và MongoDB (tier bền) sau
// một ICacheService duy nhất. Key là raw fingerprint của địa chỉ. Đọc
// ưu tiên Redis rồi rơi xuống Mongo; ghi và xóa đánh cả hai tier.
type HybridCacheService struct {
	hot    *RedisCacheService
	stable *MongoCacheService
	logger *zap.Logger
}

// NewHybridCacheService tạo hybrid cache từ hai tier đã kết nối sẵn
func NewHybridCacheService(hot *RedisCacheService, stable *MongoCacheService, logger *zap.Logger) *HybridCacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HybridCacheService{hot: hot, stable: stable, logger: logger}
}

// fanOut chạy một thao tác trên cả hai tier song song và gom lỗi
func fanOut(label string, onHot, onStable func() error) error {
	errCh := make(chan error, 2)
	go func() { errCh <- onHot() }()
	go func() { errCh <- onStable() }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("lỗi %s trên hybrid cache: %v", label, errs)
	}
	return nil
}

// Get đọc kết quả extract theo fingerprint. Hit ở Mongo được đẩy
// ngược lên Redis trong background để lần đọc sau rẻ hơn.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ExtractResult, bool, error) {
	result, found, err := hcs.hot.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("Lỗi Redis, đọc thẳng MongoDB", zap.Error(err))
	} else if found {
		return result, true, nil
	}

	result, found, err = hcs.stable.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	go hcs.promote(key, result)
	return result, true, nil
}

// promote sao chép một hit từ Mongo lên Redis với timeout riêng, tách
// khỏi request context của caller
func (hcs *HybridCacheService) promote(key string, result *models.ExtractResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := hcs.hot.Set(ctx, key, result); err != nil {
		hcs.logger.Warn("Lỗi promote Mongo->Redis",
			zap.Error(err), zap.String("fingerprint", key))
	}
}

// Set ghi kết quả extract vào cả hai tier
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.ExtractResult) error {
	return fanOut("set",
		func() error { return hcs.hot.Set(ctx, key, result) },
		func() error { return hcs.stable.Set(ctx, key, result) })
}

// Delete xóa một fingerprint khỏi cả hai tier
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	return fanOut("delete",
		func() error { return hcs.hot.Delete(ctx, key) },
		func() error { return hcs.stable.Delete(ctx, key) })
}

// Clear xóa toàn bộ cache
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	err := fanOut("clear",
		func() error { return hcs.hot.Clear(ctx) },
		func() error { return hcs.stable.Clear(ctx) })
	if err == nil {
		hcs.logger.Info("Đã xóa toàn bộ hybrid cache")
	}
	return err
}

// InvalidateByGazetteerVersion xóa các entry build từ gazetteer version
// khác với version đang phục vụ
func (hcs *HybridCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	err := fanOut("invalidate",
		func() error { return hcs.hot.InvalidateByGazetteerVersion(ctx, gazetteerVersion) },
		func() error { return hcs.stable.InvalidateByGazetteerVersion(ctx, gazetteerVersion) })
	if err == nil {
		hcs.logger.Info("Đã invalidate hybrid cache",
			zap.String("gazetteer_version", gazetteerVersion))
	}
	return err
}

// GetStats gộp thống kê hai tier. Một tier lỗi thì trả stats của tier
// còn lại; cả hai lỗi mới coi là lỗi.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hotStats, hotErr := hcs.hot.GetStats(ctx)
	stableStats, stableErr := hcs.stable.GetStats(ctx)

	switch {
	case hotErr != nil && stableErr != nil:
		return nil, fmt.Errorf("cả Redis và MongoDB đều lỗi: %v, %v", hotErr, stableErr)
	case hotErr != nil:
		return stableStats, nil
	case stableErr != nil:
		return hotStats, nil
	}

	combined := &CacheStats{
		TotalHits:  hotStats.TotalHits + stableStats.TotalHits,
		TotalMiss:  hotStats.TotalMiss + stableStats.TotalMiss,
		TotalItems: hotStats.TotalItems + stableStats.TotalItems,
	}
	if total := combined.TotalHits + combined.TotalMiss; total > 0 {
		combined.HitRate = float64(combined.TotalHits) / float64(total)
	}
	return combined, nil
}

// Exists kiểm tra fingerprint có trong cache không, Redis trước
func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := hcs.hot.Exists(ctx, key)
	if err != nil {
		hcs.logger.Warn("Lỗi check Redis exists, fallback MongoDB", zap.Error(err))
	} else if exists {
		return true, nil
	}
	return hcs.stable.Exists(ctx, key)
}

// GetTTL TTL còn lại trên tier Redis; tier Mongo không có TTL per-key
func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return hcs.hot.GetTTL(ctx, key)
}

// Close đóng kết nối cả hai tier
func (hcs *HybridCacheService) Close() error {
	return fanOut("close", hcs.hot.Close, hcs.stable.Close)
}

// WarmUpFromMongoDB nạp trước các fingerprint truy cập nhiều nhất vào
// LRU trong MongoCacheService sau khi khởi động
func (hcs *HybridCacheService) WarmUpFromMongoDB(ctx context.Context, limit int) error {
	return hcs.stable.WarmUp(ctx, limit)
}
