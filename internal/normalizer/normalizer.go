package normalizer

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

var rules = mustLoadRules()

// charReplacer thay thế các ký tự không thuộc bảng chữ cái tiếng Việt
// (j→i, z→s, w→v, f→ph) ở mức ký tự, không phải mức từ.
var charReplacer = buildCharReplacer(rules.CharSubstitutions)

func buildCharReplacer(subs map[string]string) *strings.Replacer {
	// Thứ tự cố định để deterministic
	order := []string{"j", "z", "w", "f"}
	pairs := make([]string, 0, len(subs)*2)
	for _, k := range order {
		if v, ok := subs[k]; ok {
			pairs = append(pairs, k, v)
		}
	}
	return strings.NewReplacer(pairs...)
}

// Normalize chuẩn hóa text địa chỉ:
//  1. lowercase
//  2. cắt white-space đầu/cuối
//  3. thay ký tự không thuộc tiếng Việt (j→i, z→s, w→v, f→ph)
//  4. cắt dấu câu đầu/cuối chuỗi (dấu phẩy bên trong giữ nguyên)
//  5. gom white-space liên tiếp thành một space
//
// Hàm thuần, idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = strings.TrimSpace(s)
	s = charReplacer.Replace(s)
	s = strings.Trim(s, rules.EdgePunctuation)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitSegments tách chuỗi đã normalize theo dấu phẩy, trim từng segment
// và bỏ segment rỗng. Thứ tự xuất hiện trái-sang-phải được giữ nguyên.
func SplitSegments(normalized string) []string {
	parts := strings.Split(normalized, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
