package normalizer

import (
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics loại bỏ dấu tiếng Việt một cách an toàn (NFD → bỏ
// combining marks → NFC). Giữ nguyên ký tự gốc, ví dụ "hồ" → "ho".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}

// isMn kiểm tra xem rune có phải là diacritic mark không
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// FoldASCII fold chuỗi về ascii lowercase; dùng cho alias key không dấu
// trong trie và cho phân loại ascii_exact match.
func FoldASCII(s string) string {
	return Normalize(unidecode.Unidecode(s))
}
