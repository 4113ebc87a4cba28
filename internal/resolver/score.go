package resolver

import (
	"math"

	"github.com/address-extractor/internal/normalizer"
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// MatchLevel mức độ match của một component
const (
	MatchLevelExact = "exact"
	MatchLevelASCII = "ascii_exact"
	MatchLevelFuzzy = "fuzzy"
)

// classifyMatch phân loại một trie hit và tính confidence cho nó: cụm từ
// trùng chính tả canonical là exact; trùng sau khi bỏ dấu là ascii_exact;
// còn lại là hit qua biến thể một-lỗi, chấm điểm fuzzy bằng blend
// Jaro-Winkler và Levenshtein.
func classifyMatch(phrase, canonical string) (string, float64) {
	normCanonical := normalizer.Normalize(canonical)
	if phrase == normCanonical {
		return MatchLevelExact, 1.0
	}
	if normalizer.FoldASCII(phrase) == normalizer.FoldASCII(normCanonical) {
		return MatchLevelASCII, 0.9
	}

	jaroScore := smetrics.JaroWinkler(phrase, normCanonical, 0.7, 4)

	levDist := levenshtein.ComputeDistance(phrase, normCanonical)
	maxLen := math.Max(float64(len([]rune(phrase))), float64(len([]rune(normCanonical))))
	levScore := 0.0
	if maxLen > 0 {
		levScore = 1.0 - float64(levDist)/maxLen
	}

	return MatchLevelFuzzy, math.Max(jaroScore, levScore)
}
