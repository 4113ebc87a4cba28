// Package search wrap Meilisearch làm lớp tìm kiếm dự phòng cho
// gazetteer: khi trie không match được thành phần nào, query đơn vị
// hành chính theo cấp với typo tolerance của Meilisearch.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// Cấp hành chính trong index
const (
	LevelProvince = 1
	LevelDistrict = 2
	LevelWard     = 3
)

// AdminUnitDoc document đơn vị hành chính trong Meilisearch
type AdminUnitDoc struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
	Level          int    `json:"level"`
}

// SearchConfig cấu hình cho Meilisearch
type SearchConfig struct {
	Host      string
	APIKey    string
	IndexName string
	Timeout   time.Duration
}

// FallbackSearcher searcher tìm đơn vị hành chính trong Meilisearch
type FallbackSearcher struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
	timeout   time.Duration
}

// NewFallbackSearcher tạo mới FallbackSearcher với Meilisearch client
func NewFallbackSearcher(config SearchConfig, logger *zap.Logger) (*FallbackSearcher, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	// Test connection
	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Meilisearch: %w", err)
	}

	return &FallbackSearcher{
		client:    client,
		logger:    logger,
		indexName: config.IndexName,
		timeout:   config.Timeout,
	}, nil
}

// FilterLevel tạo filter string theo cấp hành chính
func FilterLevel(level int) string {
	return fmt.Sprintf("level = %d", level)
}

// SearchByLevel tìm đơn vị hành chính theo cấp. Trả về danh sách hit
// theo thứ tự ranking của Meilisearch.
func (fs *FallbackSearcher) SearchByLevel(ctx context.Context, query string, level, limit int) ([]AdminUnitDoc, error) {
	if query == "" {
		return nil, errors.New("query không được để trống")
	}

	index := fs.client.Index(fs.indexName)

	result, err := index.Search(query, &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Filter: FilterLevel(level),
	})
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm kiếm Meilisearch: %w", err)
	}

	docs := parseSearchResults(result)

	fs.logger.Debug("Meilisearch fallback search",
		zap.String("query", query),
		zap.Int("level", level),
		zap.Int("hits", len(docs)))

	return docs, nil
}

// parseSearchResults parse kết quả từ Meilisearch thành AdminUnitDoc
func parseSearchResults(result *meilisearch.SearchResponse) []AdminUnitDoc {
	var docs []AdminUnitDoc

	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}

		doc := AdminUnitDoc{}
		if id, ok := hitMap["id"].(string); ok {
			doc.ID = id
		}
		if name, ok := hitMap["name"].(string); ok {
			doc.Name = name
		}
		if normalizedName, ok := hitMap["normalized_name"].(string); ok {
			doc.NormalizedName = normalizedName
		}
		if level, ok := hitMap["level"].(float64); ok {
			doc.Level = int(level)
		}

		docs = append(docs, doc)
	}

	return docs
}

// ConfigureIndex cấu hình index cho gazetteer search
func (fs *FallbackSearcher) ConfigureIndex() error {
	index := fs.client.Index(fs.indexName)

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"name", "normalized_name"},
		FilterableAttributes: []string{"id", "level"},
		SortableAttributes:   []string{"level"},
		RankingRules:         []string{"words", "typo", "proximity", "attribute", "sort", "exactness"},
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  3,
				TwoTypos: 7,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("lỗi cấu hình index: %w", err)
	}

	fs.logger.Info("Đã cấu hình index Meilisearch thành công", zap.Int64("task_uid", task.TaskUID))
	return nil
}

// SeedData nạp danh sách đơn vị hành chính vào Meilisearch theo batch
func (fs *FallbackSearcher) SeedData(docs []AdminUnitDoc) error {
	if len(docs) == 0 {
		return errors.New("không có dữ liệu để seed")
	}

	index := fs.client.Index(fs.indexName)

	batchSize := 1000
	for i := 0; i < len(docs); i += batchSize {
		end := i + batchSize
		if end > len(docs) {
			end = len(docs)
		}

		task, err := index.AddDocuments(docs[i:end], "id")
		if err != nil {
			return fmt.Errorf("lỗi thêm documents batch %d-%d: %w", i, end, err)
		}

		fs.logger.Info("Đã thêm batch documents",
			zap.Int("from", i),
			zap.Int("to", end),
			zap.Int64("task_uid", task.TaskUID))
	}

	fs.logger.Info("Đã seed data thành công", zap.Int("total_documents", len(docs)))
	return nil
}
