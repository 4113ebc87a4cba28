package resolver

import (
	"strings"
	"testing"

	"github.com/address-extractor/internal/trie"
)

func fixtureTrie(keys map[string]string) *trie.Trie {
	t := trie.New()
	for k, v := range keys {
		t.Insert(k, v)
	}
	return t
}

func TestMatchWindow_LongestMatchWins(t *testing.T) {
	// "an" và "long an" đều là key: cửa sổ dài hơn phải thắng
	tr := fixtureTrie(map[string]string{
		"an":      "An",
		"long an": "Long An",
	})

	m := matchWindow(tr, strings.Fields("huyện long an"), -1)
	if !m.matched {
		t.Fatal("expected a match")
	}
	if m.value != "Long An" {
		t.Errorf("value = %q, want Long An", m.value)
	}
	if m.start != 1 || m.end != 2 {
		t.Errorf("span = [%d,%d], want [1,2]", m.start, m.end)
	}
}

func TestMatchWindow_ConsumesExactSpan(t *testing.T) {
	// k từ cuối đúng bằng một key, không suffix nào dài hơn match:
	// span consume đúng k từ
	tr := fixtureTrie(map[string]string{"tân hiệp": "Tân Hiệp"})

	m := matchWindow(tr, strings.Fields("xã tân hiệp"), -1)
	if !m.matched {
		t.Fatal("expected a match")
	}
	if got := m.end - m.start + 1; got != 2 {
		t.Errorf("consumed span length = %d, want 2", got)
	}
	if m.start != 1 {
		t.Errorf("start = %d, want 1", m.start)
	}
}

func TestMatchWindow_TrailingWordFallback(t *testing.T) {
	tr := fixtureTrie(map[string]string{"châu thành": "Châu Thành"})
	words := strings.Fields("châu thành ql1a")

	// Không cho bỏ từ cuối: miss
	if m := matchWindow(tr, words, 0); m.matched {
		t.Errorf("maxDrops=0 should miss, got %q", m.value)
	}

	// Cho bỏ từ cuối: hit sau một lần bỏ
	m := matchWindow(tr, words, -1)
	if !m.matched || m.value != "Châu Thành" {
		t.Fatalf("maxDrops=-1 should hit Châu Thành, got %+v", m)
	}
	if m.start != 0 || m.end != 1 {
		t.Errorf("span = [%d,%d], want [0,1]", m.start, m.end)
	}
}

func TestMatchWindow_Empty(t *testing.T) {
	tr := fixtureTrie(map[string]string{"x": "X"})
	if m := matchWindow(tr, nil, -1); m.matched {
		t.Error("empty word list should not match")
	}
}

func TestClassifyMatch(t *testing.T) {
	testCases := []struct {
		name      string
		phrase    string
		canonical string
		level     string
	}{
		{"Exact", "hà nội", "Hà Nội", MatchLevelExact},
		{"ASCII", "ha noi", "Hà Nội", MatchLevelASCII},
		{"Fuzzy_Substitution", "hà nộc", "Hà Nội", MatchLevelFuzzy},
		{"Fuzzy_Insertion", "lonbg an", "Long An", MatchLevelFuzzy},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level, conf := classifyMatch(tc.phrase, tc.canonical)
			if level != tc.level {
				t.Errorf("level = %q, want %q", level, tc.level)
			}
			if conf <= 0.0 || conf > 1.0 {
				t.Errorf("confidence %v out of (0,1]", conf)
			}
			if tc.level == MatchLevelExact && conf != 1.0 {
				t.Errorf("exact match confidence = %v, want 1.0", conf)
			}
			if tc.level == MatchLevelFuzzy && conf >= 1.0 {
				t.Errorf("fuzzy confidence = %v, want < 1.0", conf)
			}
		})
	}
}
