// Package gazetteer load danh sách tên đơn vị hành chính canonical và
// build các trie chịu lỗi chính tả từ đó. Format input: file UTF-8,
// mỗi dòng một tên, chia theo cấp (province.txt, district.txt, ward.txt).
package gazetteer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/address-extractor/internal/normalizer"
	"github.com/address-extractor/internal/trie"
)

// Entry một tên canonical trong gazetteer. Value là dạng hiển thị gốc
// (giữ nguyên hoa thường và dấu); Name là dạng đã chuẩn hóa dùng làm
// key chính trong trie.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewEntry tạo Entry từ tên gốc trong gazetteer
func NewEntry(raw string) Entry {
	return Entry{
		Name:  normalizer.Normalize(raw),
		Value: strings.TrimSpace(raw),
	}
}

// LoadFile đọc một file gazetteer, mỗi dòng một tên, bỏ dòng rỗng
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lỗi mở file gazetteer %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, NewEntry(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lỗi đọc file gazetteer %s: %w", path, err)
	}

	return entries, nil
}

// Dataset ba danh sách canonical theo cấp hành chính
type Dataset struct {
	Provinces []Entry
	Districts []Entry
	Wards     []Entry
}

// LoadDir đọc province.txt, district.txt, ward.txt từ thư mục dataset
func LoadDir(dir string) (*Dataset, error) {
	provinces, err := LoadFile(filepath.Join(dir, "province.txt"))
	if err != nil {
		return nil, err
	}
	districts, err := LoadFile(filepath.Join(dir, "district.txt"))
	if err != nil {
		return nil, err
	}
	wards, err := LoadFile(filepath.Join(dir, "ward.txt"))
	if err != nil {
		return nil, err
	}
	return &Dataset{Provinces: provinces, Districts: districts, Wards: wards}, nil
}

// BuildOptions tùy chọn build trie
type BuildOptions struct {
	// MaxVariants chặn trên số biến thể mỗi tên; <=0 dùng mặc định
	MaxVariants int

	// ASCIIAliases insert thêm key không dấu cho mỗi tên (match được
	// input gõ không dấu)
	ASCIIAliases bool
}

// BuildTrie build trie từ danh sách entry theo đúng thứ tự ưu tiên:
//  1. tên canonical (chính tả đúng) — luôn insert trước
//  2. alias không dấu
//  3. biến thể một-lỗi sinh tự động
//
// Collision policy của trie là first-wins nên thứ tự trên bảo đảm chính
// tả đúng không bao giờ bị biến thể của entry khác che mất.
//
// Entry có tên chuẩn hóa rỗng là gazetteer hỏng: trả về error, không
// build nửa chừng.
func BuildTrie(entries []Entry, opts BuildOptions) (*trie.Trie, error) {
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("gazetteer hỏng: entry %d (%q) có tên chuẩn hóa rỗng", i, e.Value)
		}
	}

	t := trie.New()

	// 1. Canonical trước
	for _, e := range entries {
		t.Insert(e.Name, e.Value)
	}

	// 2. Alias không dấu
	if opts.ASCIIAliases {
		for _, e := range entries {
			ascii := normalizer.FoldASCII(e.Name)
			if ascii != "" && ascii != e.Name {
				t.Insert(ascii, e.Value)
			}
		}
	}

	// 3. Biến thể một-lỗi
	for _, e := range entries {
		for _, v := range trie.GenerateVariants(e.Name, opts.MaxVariants) {
			t.Insert(v, e.Value)
		}
	}

	return t, nil
}

// Tries ba trie đã build, bất biến sau khi build xong
type Tries struct {
	Provinces *trie.Trie
	Districts *trie.Trie
	Wards     *trie.Trie
}

// BuildAll build cả ba trie từ dataset
func BuildAll(ds *Dataset, opts BuildOptions) (*Tries, error) {
	provinces, err := BuildTrie(ds.Provinces, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi build province trie: %w", err)
	}
	districts, err := BuildTrie(ds.Districts, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi build district trie: %w", err)
	}
	wards, err := BuildTrie(ds.Wards, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi build ward trie: %w", err)
	}
	return &Tries{Provinces: provinces, Districts: districts, Wards: wards}, nil
}
