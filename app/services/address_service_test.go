package services

import (
	"context"
	"testing"
	"time"

	"github.com/address-extractor/app/config"
	"github.com/address-extractor/app/models"
	"github.com/address-extractor/app/requests"
	"github.com/address-extractor/internal/gazetteer"
	"github.com/address-extractor/internal/resolver"
)

func entriesOf(names ...string) []gazetteer.Entry {
	entries := make([]gazetteer.Entry, 0, len(names))
	for _, n := range names {
		entries = append(entries, gazetteer.NewEntry(n))
	}
	return entries
}

func newTestService(t *testing.T, cache ICacheService) *AddressService {
	t.Helper()

	config.C = config.ExtractorCfg{
		MaxVariants:   2000,
		FallbackDrops: -1,
		ASCIIAliases:  true,
		Thresholds:    config.Thresholds{High: 0.9, ReviewLow: 0.6},
		Confidence:    config.ConfidenceWeights{Province: 0.3, District: 0.35, Ward: 0.35},
	}

	ds := &gazetteer.Dataset{
		Provinces: entriesOf("Hồ Chí Minh", "Hà Nội", "Long An"),
		Districts: entriesOf("7", "Hoàn Kiếm", "Châu Thành"),
		Wards:     entriesOf("Phú Mỹ", "Hàng Trống", "Tân Hiệp"),
	}
	tries, err := gazetteer.BuildAll(ds, gazetteer.BuildOptions{ASCIIAliases: true})
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}

	rslv := resolver.NewResolver(tries, resolver.Options{FallbackDrops: -1}, nil)
	return NewAddressService(rslv, tries, nil, cache, "test-1.0.0", nil)
}

func TestExtract_FullAddress(t *testing.T) {
	as := newTestService(t, nil)

	result, cacheHit, err := as.Extract(context.Background(), "Phường Phú Mỹ, Quận 7, TP. Hồ Chí Minh", requests.ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if cacheHit {
		t.Error("cacheHit = true without cache")
	}

	if result.Province.Value != "Hồ Chí Minh" || result.District.Value != "7" || result.Ward.Value != "Phú Mỹ" {
		t.Errorf("components = %q/%q/%q", result.Province.Value, result.District.Value, result.Ward.Value)
	}
	if result.Status != models.StatusMatched {
		t.Errorf("Status = %q, want matched", result.Status)
	}
	if result.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0 (all levels exact)", result.Confidence)
	}
	if result.GazetteerVersion != "test-1.0.0" {
		t.Errorf("GazetteerVersion = %q", result.GazetteerVersion)
	}
}

func TestExtract_EmptyAddress(t *testing.T) {
	as := newTestService(t, nil)

	if _, _, err := as.Extract(context.Background(), "", requests.ExtractOptions{}); err == nil {
		t.Error("expected error for empty address")
	}
}

func TestExtract_Unmatched(t *testing.T) {
	as := newTestService(t, nil)

	result, _, err := as.Extract(context.Background(), "tokyo, shibuya", requests.ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Status != models.StatusUnmatched {
		t.Errorf("Status = %q, want unmatched", result.Status)
	}
	if result.Remnant != "tokyo, shibuya" {
		t.Errorf("Remnant = %q", result.Remnant)
	}
}

func TestExtract_PartialMatchNeedsReview(t *testing.T) {
	as := newTestService(t, nil)

	// Chỉ tỉnh match: 0.3 < review_low 0.6
	result, _, err := as.Extract(context.Background(), "số 5 ngõ 12, Hà Nội", requests.ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Province.Value != "Hà Nội" {
		t.Fatalf("Province = %q", result.Province.Value)
	}
	if result.Status != models.StatusNeedsReview {
		t.Errorf("Status = %q, want needs_review", result.Status)
	}
}

func TestExtract_CacheRoundTrip(t *testing.T) {
	cache := NewMemoryCacheService(time.Hour)
	as := newTestService(t, cache)
	opts := requests.ExtractOptions{UseCache: true}

	first, hit, err := as.Extract(context.Background(), "Hàng Trống, Hoàn Kiếm, Hà Nội", opts)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if hit {
		t.Error("first call should miss cache")
	}

	second, hit, err := as.Extract(context.Background(), "Hàng Trống, Hoàn Kiếm, Hà Nội", opts)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !hit {
		t.Error("second call should hit cache")
	}
	if second.Province.Value != first.Province.Value || second.Ward.Value != first.Ward.Value {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestFingerprint(t *testing.T) {
	// Fingerprint tính trên dạng normalize: khác hoa thường và khoảng
	// trắng thừa cho cùng giá trị
	a := Fingerprint("Hà Nội")
	b := Fingerprint("  hà   nội ")
	if a != b {
		t.Errorf("fingerprints differ: %q vs %q", a, b)
	}
	if a == Fingerprint("Hồ Chí Minh") {
		t.Error("different addresses must not collide")
	}
	if len(a) == 0 || a[:7] != "sha256:" {
		t.Errorf("fingerprint format: %q", a)
	}
}

func TestBatchJobLifecycle(t *testing.T) {
	as := newTestService(t, nil)

	addresses := []string{
		"Phường Phú Mỹ, Quận 7, TP. Hồ Chí Minh",
		"Tân Hiệp, Châu Thành, Long An",
		"not an address",
	}

	// Chạy đồng bộ trong test
	as.ProcessBatchJob("job-1", addresses, requests.ExtractOptions{})

	status, err := as.GetJobStatus("job-1")
	if err != nil {
		t.Fatalf("GetJobStatus: %v", err)
	}
	if status.Status != "done" || status.Processed != 3 {
		t.Errorf("status = %+v", status)
	}

	results, err := as.GetJobResults("job-1")
	if err != nil {
		t.Fatalf("GetJobResults: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d", len(results))
	}
	if results[0].Province.Value != "Hồ Chí Minh" {
		t.Errorf("results[0].Province = %q", results[0].Province.Value)
	}
	if results[2].Status != models.StatusUnmatched {
		t.Errorf("results[2].Status = %q", results[2].Status)
	}

	// Stream trả đủ và đúng thứ tự
	ch, err := as.GetJobResultsStream("job-1")
	if err != nil {
		t.Fatalf("GetJobResultsStream: %v", err)
	}
	count := 0
	for range ch {
		count++
	}
	if count != 3 {
		t.Errorf("streamed %d results, want 3", count)
	}

	if _, err := as.GetJobStatus("missing"); err == nil {
		t.Error("expected error for unknown job")
	}
}
