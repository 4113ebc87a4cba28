package normalizer

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Lowercase_And_Trim",
			input:    "  Hồ Chí Minh  ",
			expected: "hồ chí minh",
		},
		{
			name:     "NonVietnamese_J",
			input:    "jí",
			expected: "ií",
		},
		{
			name:     "NonVietnamese_Z",
			input:    "Hồ Zí Minh",
			expected: "hồ sí minh",
		},
		{
			name:     "NonVietnamese_W",
			input:    "wường",
			expected: "vường",
		},
		{
			name:     "NonVietnamese_F_Expands_InPlace",
			input:    "fú mỹ",
			expected: "phú mỹ",
		},
		{
			name:     "Edge_Punctuation_Stripped",
			input:    ".Hồ Chí Minh.",
			expected: "hồ chí minh",
		},
		{
			name:     "Interior_Comma_Kept",
			input:    "Quận 7, TP. Hồ Chí Minh",
			expected: "quận 7, tp. hồ chí minh",
		},
		{
			name:     "Whitespace_Collapsed",
			input:    "hà   nội\t thanh  xuân",
			expected: "hà nội thanh xuân",
		},
		{
			name:     "Empty",
			input:    "",
			expected: "",
		},
		{
			name:     "Punctuation_Only",
			input:    "...,,,!!!",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  123 Đường ABC, Phường Phú Mỹ, Quận 7, TP. Hồ Chí Minh  ",
		"zjwf",
		". tỉnh   Long An .",
		"",
		"!!!",
		"284DBis Ng Văn Giáo, P3, Mỹ Tho, T.Giang.",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first=%q second=%q", input, once, twice)
		}
	}
}

func TestSplitSegments(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Standard",
			input:    "123 đường abc, phường phú mỹ, quận 7, tp. hồ chí minh",
			expected: []string{"123 đường abc", "phường phú mỹ", "quận 7", "tp. hồ chí minh"},
		},
		{
			name:     "Empty_Segments_Dropped",
			input:    "a, , ,b",
			expected: []string{"a", "b"},
		},
		{
			name:     "Empty_Input",
			input:    "",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSegments(tc.input)
			if len(got) != len(tc.expected) {
				t.Fatalf("SplitSegments(%q) = %v, want %v", tc.input, got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("segment %d: got %q, want %q", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestStripDiacritics(t *testing.T) {
	if got := StripDiacritics("Hồ Chí Minh"); got != "Ho Chi Minh" {
		t.Errorf("StripDiacritics(Hồ Chí Minh) = %q, want %q", got, "Ho Chi Minh")
	}
	if got := FoldASCII("Hồ Chí Minh"); got != "ho chi minh" {
		t.Errorf("FoldASCII(Hồ Chí Minh) = %q, want %q", got, "ho chi minh")
	}
	if got := FoldASCII("Đà Nẵng"); got != "da nang" {
		t.Errorf("FoldASCII(Đà Nẵng) = %q, want %q", got, "da nang")
	}
}
