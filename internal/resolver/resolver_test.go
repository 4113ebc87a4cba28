package resolver

import (
	"testing"

	"github.com/address-extractor/internal/gazetteer"
)

func entriesOf(names ...string) []gazetteer.Entry {
	entries := make([]gazetteer.Entry, 0, len(names))
	for _, n := range names {
		entries = append(entries, gazetteer.NewEntry(n))
	}
	return entries
}

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	ds := &gazetteer.Dataset{
		Provinces: entriesOf("Hồ Chí Minh", "Hà Nội", "Long An", "Tiền Giang", "Đà Nẵng"),
		Districts: entriesOf("7", "Châu Thành", "Hoàn Kiếm", "Mỹ Tho"),
		Wards:     entriesOf("Phú Mỹ", "Tân Hiệp", "Hàng Trống"),
	}
	tries, err := gazetteer.BuildAll(ds, gazetteer.BuildOptions{ASCIIAliases: true})
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	return NewResolver(tries, Options{FallbackDrops: -1}, nil)
}

func TestProcess_FullAddress(t *testing.T) {
	r := testResolver(t)

	res := r.Process("123 Đường ABC, Phường Phú Mỹ, Quận 7, TP. Hồ Chí Minh")

	if res.Province.Value != "Hồ Chí Minh" {
		t.Errorf("Province = %q, want Hồ Chí Minh", res.Province.Value)
	}
	if res.District.Value != "7" {
		t.Errorf("District = %q, want 7", res.District.Value)
	}
	if res.Ward.Value != "Phú Mỹ" {
		t.Errorf("Ward = %q, want Phú Mỹ", res.Ward.Value)
	}
	if res.Province.MatchLevel != MatchLevelExact {
		t.Errorf("Province.MatchLevel = %q, want exact", res.Province.MatchLevel)
	}
}

func TestProcess_TypoTolerance(t *testing.T) {
	r := testResolver(t)

	testCases := []struct {
		name     string
		raw      string
		province string
		level    string
	}{
		{"Substitution", "Quận Hoàn Kiếm, Hà Nộc", "Hà Nội", MatchLevelFuzzy},
		{"Deletion", "Châu Thành, Long A", "Long An", MatchLevelFuzzy},
		{"Insertion", "Châu Thành, Lonbg An", "Long An", MatchLevelFuzzy},
		{"MissingSpace", "Quận 7, HồChí Minh", "Hồ Chí Minh", MatchLevelFuzzy},
		{"NoDiacritics", "Quan 7, Ho Chi Minh", "Hồ Chí Minh", MatchLevelASCII},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := r.Process(tc.raw)
			if res.Province.Value != tc.province {
				t.Errorf("Province = %q, want %q", res.Province.Value, tc.province)
			}
			if res.Province.MatchLevel != tc.level {
				t.Errorf("MatchLevel = %q, want %q", res.Province.MatchLevel, tc.level)
			}
		})
	}
}

func TestProcess_RightmostSegmentWins(t *testing.T) {
	r := testResolver(t)

	// Cả hai segment đều chứa tên tỉnh: segment phải nhất thắng
	res := r.Process("Hà Nội, Đà Nẵng")
	if res.Province.Value != "Đà Nẵng" {
		t.Errorf("Province = %q, want Đà Nẵng (rightmost segment)", res.Province.Value)
	}
}

func TestProcess_RemnantKeepsUnmatchedText(t *testing.T) {
	r := testResolver(t)

	// "quận" nằm ngoài span match của "7" nên ở lại segment của nó
	res := r.Process("123 Đường ABC, Quận 7, Hồ Chí Minh")
	if res.Remnant != "123 đường abc, quận" {
		t.Errorf("Remnant = %q, want %q", res.Remnant, "123 đường abc, quận")
	}

	// Từ thừa trong segment đã match cũng phải nằm lại remnant
	res = r.Process("Tân Hiệp kcn, Châu Thành, Tiền Giang")
	if res.Ward.Value != "Tân Hiệp" {
		t.Fatalf("Ward = %q, want Tân Hiệp", res.Ward.Value)
	}
	if res.Remnant != "kcn" {
		t.Errorf("Remnant = %q, want %q", res.Remnant, "kcn")
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	r := testResolver(t)

	for _, raw := range []string{"", "   ", ",,,"} {
		res := r.Process(raw)
		if res.Province.Value != "" || res.District.Value != "" || res.Ward.Value != "" {
			t.Errorf("Process(%q) = %+v, want all components empty", raw, res)
		}
		if res.Remnant != "" {
			t.Errorf("Process(%q).Remnant = %q, want empty", raw, res.Remnant)
		}
	}
}

func TestProcess_NoMatch(t *testing.T) {
	r := testResolver(t)

	res := r.Process("tokyo, shibuya")
	if res.Province.Value != "" || res.District.Value != "" || res.Ward.Value != "" {
		t.Errorf("expected no components, got %+v", res)
	}
	if res.Remnant != "tokyo, shibuya" {
		t.Errorf("Remnant = %q, want full normalized text", res.Remnant)
	}
}

func TestProcess_FallbackDropsZero(t *testing.T) {
	ds := &gazetteer.Dataset{
		Provinces: entriesOf("Long An"),
		Districts: entriesOf("Châu Thành"),
		Wards:     entriesOf("Tân Hiệp"),
	}
	tries, err := gazetteer.BuildAll(ds, gazetteer.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	r := NewResolver(tries, Options{FallbackDrops: 0}, nil)

	// Từ rác đứng sau tên tỉnh: không cho bỏ từ cuối thì pass tỉnh miss
	res := r.Process("Châu Thành, Long An zzz")
	if res.Province.Value != "" {
		t.Errorf("FallbackDrops=0: Province = %q, want empty", res.Province.Value)
	}
	if res.District.Value != "Châu Thành" {
		t.Errorf("District = %q, want Châu Thành", res.District.Value)
	}
}
