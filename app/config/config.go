package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Thresholds struct {
	High      float64 `yaml:"high" json:"high"`
	ReviewLow float64 `yaml:"review_low" json:"review_low"`
}

type ConfidenceWeights struct {
	Province float64 `yaml:"province" json:"province"`
	District float64 `yaml:"district" json:"district"`
	Ward     float64 `yaml:"ward" json:"ward"`
}

type ExtractorCfg struct {
	// MaxVariants chặn trên số biến thể một-lỗi sinh cho mỗi tên canonical
	MaxVariants int `yaml:"max_variants" json:"max_variants"`

	// FallbackDrops số từ cuối segment được phép bỏ khi sliding window
	// không match; <0 = bỏ đến khi hết segment
	FallbackDrops int `yaml:"fallback_drops" json:"fallback_drops"`

	// ASCIIAliases insert thêm key không dấu khi build trie
	ASCIIAliases bool `yaml:"ascii_aliases" json:"ascii_aliases"`

	// UseMeiliFallback bật fallback Meilisearch khi cả ba pass trie đều miss
	UseMeiliFallback bool `yaml:"use_meili_fallback" json:"use_meili_fallback"`

	// UseLibpostal bật libpostal expansion cho phần residual
	UseLibpostal bool `yaml:"use_libpostal" json:"use_libpostal"`

	Thresholds Thresholds        `yaml:"thresholds" json:"thresholds"`
	Confidence ConfidenceWeights `yaml:"confidence" json:"confidence"`
}

var C ExtractorCfg

func Load(path string) error {
	// Defaults trước, file ghi đè sau
	C = ExtractorCfg{
		MaxVariants:   2000,
		FallbackDrops: -1,
		ASCIIAliases:  true,
		Thresholds:    Thresholds{High: 0.9, ReviewLow: 0.6},
		Confidence:    ConfidenceWeights{Province: 0.3, District: 0.35, Ward: 0.35},
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return err
	}

	// ENV overrides
	switch os.Getenv("USE_LIBPOSTAL") {
	case "0":
		C.UseLibpostal = false
	case "1":
		C.UseLibpostal = true
	}
	switch os.Getenv("USE_MEILI_FALLBACK") {
	case "0":
		C.UseMeiliFallback = false
	case "1":
		C.UseMeiliFallback = true
	}
	return nil
}

func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
