// Package resolver tách ba thành phần hành chính (tỉnh, quận/huyện,
// phường/xã) từ chuỗi địa chỉ tự do bằng ba lượt sliding-window
// longest-match trên các trie chịu lỗi chính tả.
package resolver

import (
	"strings"

	"github.com/address-extractor/internal/gazetteer"
	"github.com/address-extractor/internal/normalizer"
	"github.com/address-extractor/internal/trie"
	"go.uber.org/zap"
)

// Component một thành phần hành chính đã resolve
type Component struct {
	Value      string  `json:"value"`
	MatchLevel string  `json:"match_level,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Result kết quả resolve một địa chỉ. Component không tìm được giữ
// zero value; Remnant là phần text không được pass nào consume, theo
// thứ tự segment gốc.
type Result struct {
	Normalized string    `json:"normalized"`
	Province   Component `json:"province"`
	District   Component `json:"district"`
	Ward       Component `json:"ward"`
	Remnant    string    `json:"remnant,omitempty"`
}

// Options tùy chọn matching
type Options struct {
	// FallbackDrops số từ cuối segment được phép bỏ khi không match;
	// <0 = bỏ đến khi hết segment
	FallbackDrops int
}

// Resolver pipeline tỉnh → quận/huyện → phường/xã trên ba trie đã build.
// Các trie bất biến sau khi build nên một Resolver dùng chung được cho
// nhiều goroutine.
type Resolver struct {
	tries  *gazetteer.Tries
	opts   Options
	logger *zap.Logger
}

// NewResolver tạo mới Resolver
func NewResolver(tries *gazetteer.Tries, opts Options, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		tries:  tries,
		opts:   opts,
		logger: logger,
	}
}

// Process tách thành phần hành chính từ địa chỉ thô:
//
//  1. normalize text
//  2. tách segment theo dấu phẩy
//  3. ba pass tuần tự tỉnh → quận/huyện → phường/xã; mỗi pass quét
//     segment phải-sang-trái (địa chỉ Việt Nam đặt tỉnh cuối cùng),
//     dừng ở hit đầu tiên và thay segment đó bằng phần còn thừa
//
// Không match không phải là lỗi: input rỗng hoặc không chứa tên nào
// cho ra Result với các component rỗng, toàn bộ text nằm trong Remnant.
func (r *Resolver) Process(rawAddress string) Result {
	var res Result

	res.Normalized = normalizer.Normalize(rawAddress)
	segs := normalizer.SplitSegments(res.Normalized)

	segments := make([][]string, len(segs))
	for i, s := range segs {
		segments[i] = strings.Fields(s)
	}

	segments = r.pass(r.tries.Provinces, segments, &res.Province)
	segments = r.pass(r.tries.Districts, segments, &res.District)
	segments = r.pass(r.tries.Wards, segments, &res.Ward)

	parts := make([]string, 0, len(segments))
	for _, words := range segments {
		if len(words) > 0 {
			parts = append(parts, strings.Join(words, " "))
		}
	}
	res.Remnant = strings.Join(parts, ", ")

	r.logger.Debug("address resolved",
		zap.String("normalized", res.Normalized),
		zap.String("province", res.Province.Value),
		zap.String("district", res.District.Value),
		zap.String("ward", res.Ward.Value))

	return res
}

// pass một lượt match cho một cấp hành chính: quét segment phải-sang-
// trái, dừng ở hit đầu tiên (mỗi địa chỉ tối đa một giá trị mỗi cấp).
// Segment match được thay bằng phần từ ngoài span; segment gốc không bị
// mutate.
func (r *Resolver) pass(t *trie.Trie, segments [][]string, out *Component) [][]string {
	result := make([][]string, len(segments))
	copy(result, segments)

	for i := len(segments) - 1; i >= 0; i-- {
		m := matchWindow(t, segments[i], r.opts.FallbackDrops)
		if !m.matched {
			continue
		}

		out.Value = m.value
		out.MatchLevel, out.Confidence = classifyMatch(m.phrase, m.value)

		remnant := make([]string, 0, len(segments[i])-(m.end-m.start+1))
		remnant = append(remnant, segments[i][:m.start]...)
		remnant = append(remnant, segments[i][m.end+1:]...)
		result[i] = remnant
		break
	}

	return result
}
