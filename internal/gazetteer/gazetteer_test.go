package gazetteer

import (
	"path/filepath"
	"testing"
)

func entriesOf(names ...string) []Entry {
	entries := make([]Entry, 0, len(names))
	for _, n := range names {
		entries = append(entries, NewEntry(n))
	}
	return entries
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("  Hồ Chí Minh ")
	if e.Value != "Hồ Chí Minh" {
		t.Errorf("Value = %q, want %q", e.Value, "Hồ Chí Minh")
	}
	if e.Name != "hồ chí minh" {
		t.Errorf("Name = %q, want %q", e.Name, "hồ chí minh")
	}
}

func TestLoadFile(t *testing.T) {
	entries, err := LoadFile(filepath.Join("testdata", "province.txt"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no entries loaded")
	}

	found := false
	for _, e := range entries {
		if e.Value == "Hà Nội" {
			found = true
			if e.Name != "hà nội" {
				t.Errorf("normalized name = %q, want %q", e.Name, "hà nội")
			}
		}
	}
	if !found {
		t.Error("testdata/province.txt should contain Hà Nội")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join("testdata", "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildTrie_RejectsEmptyName(t *testing.T) {
	entries := []Entry{{Name: "", Value: "???"}}
	if _, err := BuildTrie(entries, BuildOptions{}); err == nil {
		t.Error("expected construction error for empty normalized name")
	}
}

func TestBuildTrie_TypoTolerance(t *testing.T) {
	tr, err := BuildTrie(entriesOf("Hà Nội", "Long An"), BuildOptions{})
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}

	testCases := []struct {
		name  string
		query string
		want  string
	}{
		{"Exact", "hà nội", "Hà Nội"},
		{"Substitution", "hà nộc", "Hà Nội"},
		{"Deletion", "hà nộ", "Hà Nội"},
		{"Insertion", "lonbg an", "Long An"},
		{"MissingSpace", "hànội", "Hà Nội"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, found := tr.Search(tc.query)
			if !found || value != tc.want {
				t.Errorf("Search(%q) = (%q, %v), want (%q, true)", tc.query, value, found, tc.want)
			}
		})
	}
}

func TestBuildTrie_CanonicalWinsOverVariant(t *testing.T) {
	// "hà nam" là biến thể một-lỗi của "hà nạm" (fixture); canonical
	// "Hà Nam" phải thắng dù entry kia đứng trước trong danh sách.
	tr, err := BuildTrie(entriesOf("Hà Nạm", "Hà Nam"), BuildOptions{})
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}

	value, found := tr.Search("hà nam")
	if !found || value != "Hà Nam" {
		t.Errorf("Search(hà nam) = (%q, %v), want (Hà Nam, true)", value, found)
	}
	value, found = tr.Search("hà nạm")
	if !found || value != "Hà Nạm" {
		t.Errorf("Search(hà nạm) = (%q, %v), want (Hà Nạm, true)", value, found)
	}
}

func TestBuildTrie_ASCIIAliases(t *testing.T) {
	tr, err := BuildTrie(entriesOf("Đà Nẵng"), BuildOptions{ASCIIAliases: true})
	if err != nil {
		t.Fatalf("BuildTrie: %v", err)
	}

	value, found := tr.Search("da nang")
	if !found || value != "Đà Nẵng" {
		t.Errorf("Search(da nang) = (%q, %v), want (Đà Nẵng, true)", value, found)
	}
}

func TestLoadDir(t *testing.T) {
	ds, err := LoadDir("testdata")
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(ds.Provinces) == 0 || len(ds.Districts) == 0 || len(ds.Wards) == 0 {
		t.Fatalf("dataset incomplete: %d/%d/%d", len(ds.Provinces), len(ds.Districts), len(ds.Wards))
	}

	tries, err := BuildAll(ds, BuildOptions{ASCIIAliases: true})
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if tries.Provinces.Len() == 0 {
		t.Error("province trie empty")
	}
}
