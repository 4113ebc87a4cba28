package trie

import "strings"

// Sinh biến thể một-lỗi chính tả cho tên canonical: thiếu ký tự
// (deletion), gõ nhầm ký tự (substitution), thừa ký tự (insertion) và
// thiếu space (concatenation). Mọi biến thể map về cùng value canonical
// với tên gốc khi được insert vào trie.

const (
	asciiLetters      = "abcdefghijklmnopqrstuvwxyz"
	vietnameseLetters = "áàảãạăắằẳẵặâấầẩẫậđéèẻẽẹêếềểễệíìỉĩịóòỏõọôốồổỗộơớờởỡợúùủũụưứừửữựýỳỷỹỵ"

	// DefaultMaxVariants chặn trên số biến thể mỗi tên để giữ bộ nhớ
	// trong tầm kiểm soát với tên dài.
	DefaultMaxVariants = 2000
)

// alphabet bảng chữ cái dùng cho substitution/insertion: ascii lowercase,
// toàn bộ chữ tiếng Việt có dấu, và space.
var alphabet = []rune(asciiLetters + vietnameseLetters + " ")

// GenerateVariants sinh tập biến thể một-lỗi của name, deterministic và
// không trùng lặp; name gốc không nằm trong kết quả. maxVariants <= 0
// dùng DefaultMaxVariants.
func GenerateVariants(name string, maxVariants int) []string {
	if maxVariants <= 0 {
		maxVariants = DefaultMaxVariants
	}

	runes := []rune(name)
	seen := make(map[string]struct{}, maxVariants)
	variants := make([]string, 0, maxVariants)

	add := func(v string) bool {
		if v == "" || v == name {
			return len(variants) < maxVariants
		}
		if _, dup := seen[v]; dup {
			return len(variants) < maxVariants
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
		return len(variants) < maxVariants
	}

	// 1. Deletion: bỏ ký tự tại từng vị trí
	for i := range runes {
		v := string(runes[:i]) + string(runes[i+1:])
		if !add(v) {
			return variants
		}
	}

	// 2. Substitution: thay ký tự tại từng vị trí bằng từng chữ trong
	// bảng chữ cái
	for i := range runes {
		for _, c := range alphabet {
			if c == runes[i] {
				continue
			}
			v := string(runes[:i]) + string(c) + string(runes[i+1:])
			if !add(v) {
				return variants
			}
		}
	}

	// 3. Insertion: chèn từng chữ trong bảng chữ cái vào từng vị trí
	for i := 0; i <= len(runes); i++ {
		for _, c := range alphabet {
			v := string(runes[:i]) + string(c) + string(runes[i:])
			if !add(v) {
				return variants
			}
		}
	}

	// 4. Thiếu space: bỏ toàn bộ space, và nối từng cặp từ liền kề
	for _, v := range concatenationVariants(name) {
		if !add(v) {
			return variants
		}
	}

	return variants
}

// concatenationVariants biến thể lỗi thiếu space của tên nhiều từ
func concatenationVariants(name string) []string {
	words := strings.Fields(name)
	if len(words) < 2 {
		return nil
	}

	out := make([]string, 0, len(words))

	// Bỏ hết space
	out = append(out, strings.Join(words, ""))

	// Nối từng cặp từ liền kề
	for i := 0; i < len(words)-1; i++ {
		merged := make([]string, 0, len(words)-1)
		merged = append(merged, words[:i]...)
		merged = append(merged, words[i]+words[i+1])
		merged = append(merged, words[i+2:]...)
		out = append(out, strings.Join(merged, " "))
	}

	return out
}
