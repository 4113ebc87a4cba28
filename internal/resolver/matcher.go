package resolver

import (
	"strings"

	"github.com/address-extractor/internal/trie"
)

// matchOutcome kết quả một lần match sliding window trên một segment
type matchOutcome struct {
	matched bool
	value   string // tên canonical từ trie
	phrase  string // cụm từ đã match (dạng normalize)
	start   int    // index từ đầu của span, inclusive
	end     int    // index từ cuối của span, inclusive
}

// matchWindow tìm cụm từ dài nhất tồn tại trong trie, neo ở từ phải
// nhất của segment và mở rộng cửa sổ về bên trái:
//
//  1. Với độ dài cửa sổ w từ n xuống 1, ghép w từ cuối thành cụm và tra
//     trie; hit đầu tiên (w lớn nhất) là match — tie-break luôn theo độ
//     dài, bảo đảm longest-match.
//  2. Nếu không cửa sổ nào match, bỏ từ phải nhất (free text cấp đường
//     thường đứng sau tên đơn vị hành chính) và thử lại; số lần bỏ bị
//     chặn bởi maxDrops, maxDrops < 0 nghĩa là bỏ đến khi hết segment.
func matchWindow(t *trie.Trie, words []string, maxDrops int) matchOutcome {
	n := len(words)
	if n == 0 {
		return matchOutcome{}
	}

	limit := maxDrops
	if limit < 0 || limit > n-1 {
		limit = n - 1
	}

	for drop := 0; drop <= limit; drop++ {
		end := n - drop
		for start := 0; start < end; start++ {
			phrase := strings.Join(words[start:end], " ")
			if value, ok := t.Search(phrase); ok {
				return matchOutcome{
					matched: true,
					value:   value,
					phrase:  phrase,
					start:   start,
					end:     end - 1,
				}
			}
		}
	}

	return matchOutcome{}
}
