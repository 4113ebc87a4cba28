package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/address-extractor/app/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const cacheCollectionName = "address_cache"

// MongoCacheService tier cache bền trên MongoDB, kèm một LRU in-process
// để các fingerprint nóng không phải chạm DB. Document lưu cả access
// stats nên WarmUp biết entry nào đáng nạp lại sau restart.
type MongoCacheService struct {
	collection *mongo.Collection
	l1         *lru.Cache[string, *models.ExtractResult]
	logger     *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// cacheIndexes index cần có trên address_cache. raw_fingerprint unique
// vì mỗi địa chỉ chuẩn hóa chỉ có một kết quả hợp lệ.
var cacheIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{bson.E{Key: "raw_fingerprint", Value: 1}},
		Options: options.Index().SetUnique(true),
	},
	{Keys: bson.D{bson.E{Key: "gazetteer_version", Value: 1}}},
	{Keys: bson.D{bson.E{Key: "access_count", Value: -1}}},
	{Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}}},
}

// NewMongoCacheService tạo cache trên database đã kết nối. l1Size là
// sức chứa LRU in-process.
func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	l1, err := lru.New[string, *models.ExtractResult](l1Size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mcs := &MongoCacheService{
		collection: db.Collection(cacheCollectionName),
		l1:         l1,
		logger:     logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := mcs.collection.Indexes().CreateMany(ctx, cacheIndexes); err != nil {
		// Thiếu index chỉ chậm, không sai
		logger.Warn("Không thể tạo indexes cho address_cache", zap.Error(err))
	}

	return mcs, nil
}

// Get đọc kết quả extract theo fingerprint, LRU trước rồi tới MongoDB.
// Hit ở MongoDB được nạp vào LRU và cập nhật access stats async.
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.ExtractResult, bool, error) {
	if result, ok := mcs.l1.Get(key); ok {
		mcs.hits.Add(1)
		return result, true, nil
	}

	var entry models.AddressCache
	err := mcs.collection.FindOne(ctx, bson.M{"raw_fingerprint": key}).Decode(&entry)
	switch {
	case err == mongo.ErrNoDocuments:
		mcs.misses.Add(1)
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("lỗi query MongoDB cache: %w", err)
	}

	mcs.hits.Add(1)
	mcs.l1.Add(key, &entry.Result)
	go mcs.touchEntry(entry.ID)

	return &entry.Result, true, nil
}

// touchEntry cập nhật last_accessed/access_count ngoài request path
func (mcs *MongoCacheService) touchEntry(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		mcs.logger.Warn("Lỗi update access stats", zap.Error(err))
	}
}

// Set ghi kết quả extract: LRU ngay, MongoDB upsert theo fingerprint
func (mcs *MongoCacheService) Set(ctx context.Context, key string, result *models.ExtractResult) error {
	mcs.l1.Add(key, result)

	entry := models.NewAddressCache(result)
	entry.RawFingerprint = key

	opts := options.Replace().SetUpsert(true)
	if _, err := mcs.collection.ReplaceOne(ctx, bson.M{"raw_fingerprint": key}, entry, opts); err != nil {
		return fmt.Errorf("lỗi lưu vào MongoDB cache: %w", err)
	}
	return nil
}

// Delete xóa một fingerprint khỏi cả LRU và MongoDB
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1.Remove(key)
	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"raw_fingerprint": key}); err != nil {
		return fmt.Errorf("lỗi xóa khỏi MongoDB cache: %w", err)
	}
	return nil
}

// Clear xóa toàn bộ cache và reset counters
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1.Purge()
	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("lỗi clear MongoDB cache: %w", err)
	}
	mcs.hits.Store(0)
	mcs.misses.Store(0)
	return nil
}

// InvalidateByGazetteerVersion xóa mọi record build từ gazetteer version
// khác version đang phục vụ. LRU không gắn version nên purge cả.
func (mcs *MongoCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	mcs.l1.Purge()

	filter := bson.M{"gazetteer_version": bson.M{"$ne": gazetteerVersion}}
	res, err := mcs.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("lỗi invalidate cache theo gazetteer version: %w", err)
	}

	mcs.logger.Info("Đã invalidate MongoDB cache",
		zap.String("gazetteer_version", gazetteerVersion),
		zap.Int64("deleted_count", res.DeletedCount))
	return nil
}

// GetStats thống kê hit/miss của process và số document đang lưu
func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	count, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm documents trong MongoDB cache: %w", err)
	}

	hits := mcs.hits.Load()
	misses := mcs.misses.Load()
	stats := &CacheStats{
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: count,
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats, nil
}

// Exists kiểm tra fingerprint có trong cache không
func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if mcs.l1.Contains(key) {
		return true, nil
	}
	count, err := mcs.collection.CountDocuments(ctx, bson.M{"raw_fingerprint": key})
	if err != nil {
		return false, fmt.Errorf("lỗi check exists trong MongoDB: %w", err)
	}
	return count > 0, nil
}

// GetTTL tier Mongo không hết hạn per-key
func (mcs *MongoCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

// Close kết nối MongoDB do caller sở hữu, không đóng ở đây
func (mcs *MongoCacheService) Close() error {
	return nil
}

// WarmUp nạp các entry truy cập nhiều nhất vào LRU, gọi một lần sau
// khi khởi động
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("lỗi warm up cache: %w", err)
	}
	defer cursor.Close(ctx)

	loaded := 0
	for cursor.Next(ctx) {
		var entry models.AddressCache
		if err := cursor.Decode(&entry); err != nil {
			mcs.logger.Warn("Bỏ qua cache entry không decode được", zap.Error(err))
			continue
		}
		mcs.l1.Add(entry.RawFingerprint, &entry.Result)
		loaded++
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("lỗi đọc cursor warm up: %w", err)
	}

	mcs.logger.Info("Cache warm up hoàn thành",
		zap.Int("loaded_items", loaded),
		zap.Int("l1_size", mcs.l1.Len()))
	return nil
}
