// Seed nạp gazetteer vào Meilisearch làm index fallback: đọc dataset
// ba cấp, cấu hình index và đẩy documents theo batch.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/address-extractor/internal/gazetteer"
	"github.com/address-extractor/internal/search"
	"go.uber.org/zap"
)

func main() {
	var (
		datasetDir = flag.String("dataset", "./dataset", "thư mục chứa province.txt, district.txt, ward.txt")
		meiliURL   = flag.String("meili-url", "http://localhost:7700", "địa chỉ Meilisearch")
		meiliKey   = flag.String("meili-key", "", "master key Meilisearch")
		indexName  = flag.String("index", "admin_units", "tên index")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	defer logger.Sync()

	dataset, err := gazetteer.LoadDir(*datasetDir)
	if err != nil {
		logger.Fatal("Lỗi load gazetteer dataset", zap.Error(err))
	}

	searcher, err := search.NewFallbackSearcher(search.SearchConfig{
		Host:      *meiliURL,
		APIKey:    *meiliKey,
		IndexName: *indexName,
		Timeout:   30 * time.Second,
	}, logger)
	if err != nil {
		logger.Fatal("Lỗi kết nối Meilisearch", zap.Error(err))
	}

	if err := searcher.ConfigureIndex(); err != nil {
		logger.Fatal("Lỗi cấu hình index", zap.Error(err))
	}

	docs := buildDocs(dataset)
	if err := searcher.SeedData(docs); err != nil {
		logger.Fatal("Lỗi seed documents", zap.Error(err))
	}

	logger.Info("Seed hoàn thành",
		zap.Int("provinces", len(dataset.Provinces)),
		zap.Int("districts", len(dataset.Districts)),
		zap.Int("wards", len(dataset.Wards)))
}

// buildDocs chuyển dataset ba cấp thành documents cho Meilisearch
func buildDocs(dataset *gazetteer.Dataset) []search.AdminUnitDoc {
	var docs []search.AdminUnitDoc

	appendLevel := func(entries []gazetteer.Entry, level int, prefix string) {
		for i, e := range entries {
			docs = append(docs, search.AdminUnitDoc{
				ID:             fmt.Sprintf("%s-%d", prefix, i),
				Name:           e.Value,
				NormalizedName: e.Name,
				Level:          level,
			})
		}
	}

	appendLevel(dataset.Provinces, search.LevelProvince, "p")
	appendLevel(dataset.Districts, search.LevelDistrict, "d")
	appendLevel(dataset.Wards, search.LevelWard, "w")

	return docs
}
