package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/address-extractor/app/config"
	"github.com/address-extractor/app/models"
	"github.com/address-extractor/app/requests"
	"github.com/address-extractor/internal/external"
	"github.com/address-extractor/internal/gazetteer"
	"github.com/address-extractor/internal/normalizer"
	"github.com/address-extractor/internal/resolver"
	"github.com/address-extractor/internal/search"
	"go.uber.org/zap"
)

// AddressService service xử lý logic extract địa chỉ: resolve qua trie,
// fallback Meilisearch, cache theo fingerprint và batch job.
type AddressService struct {
	resolver         *resolver.Resolver
	tries            *gazetteer.Tries
	searcher         *search.FallbackSearcher // nil nếu fallback tắt
	cache            ICacheService            // nil nếu cache tắt
	logger           *zap.Logger
	gazetteerVersion string
	startTime        time.Time
	mu               sync.RWMutex

	// Job management
	jobs       map[string]*JobStatus
	jobResults map[string][]*models.ExtractResult
}

// JobStatus trạng thái của batch job
type JobStatus struct {
	JobID     string
	Status    string
	Progress  float64
	Processed int
	Total     int
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAddressService tạo mới AddressService
func NewAddressService(rslv *resolver.Resolver, tries *gazetteer.Tries, searcher *search.FallbackSearcher, cache ICacheService, gazetteerVersion string, logger *zap.Logger) *AddressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressService{
		resolver:         rslv,
		tries:            tries,
		searcher:         searcher,
		cache:            cache,
		logger:           logger,
		gazetteerVersion: gazetteerVersion,
		startTime:        time.Now(),
		jobs:             make(map[string]*JobStatus),
		jobResults:       make(map[string][]*models.ExtractResult),
	}
}

// Fingerprint sinh fingerprint cho một địa chỉ thô. Cache key và dedup
// đều dùng giá trị này.
func Fingerprint(rawAddress string) string {
	hash := sha256.Sum256([]byte(normalizer.Normalize(rawAddress)))
	return fmt.Sprintf("sha256:%x", hash)
}

// Extract extract một địa chỉ. Trả về kết quả và cờ cache hit.
func (as *AddressService) Extract(ctx context.Context, rawAddress string, options requests.ExtractOptions) (*models.ExtractResult, bool, error) {
	if rawAddress == "" {
		return nil, false, errors.New("địa chỉ không được để trống")
	}

	fingerprint := Fingerprint(rawAddress)

	// 1. Cache lookup
	if options.UseCache && as.cache != nil {
		cached, found, err := as.cache.Get(ctx, fingerprint)
		if err != nil {
			as.logger.Warn("Lỗi cache lookup, tiếp tục extract", zap.Error(err))
		} else if found {
			return cached, true, nil
		}
	}

	// 2. Resolve qua trie
	res := as.resolver.Process(rawAddress)

	result := &models.ExtractResult{
		Raw:              rawAddress,
		Normalized:       res.Normalized,
		Province:         models.ExtractComponent(res.Province),
		District:         models.ExtractComponent(res.District),
		Ward:             models.ExtractComponent(res.Ward),
		Remnant:          res.Remnant,
		RawFingerprint:   fingerprint,
		GazetteerVersion: as.gazetteerVersion,
	}

	// 3. Meilisearch fallback cho các cấp còn thiếu
	if config.C.UseMeiliFallback && as.searcher != nil && !resultComplete(result) {
		as.fillFromSearch(ctx, result)
	}

	// 4. Libpostal trên phần residual
	if config.C.UseLibpostal && result.Remnant != "" {
		residual := external.ParseResidual(result.Remnant)
		result.Street = residual.Street
		result.HouseNumber = residual.HouseNumber
	}

	// 5. Confidence tổng hợp và status
	result.Confidence = as.aggregateConfidence(result)
	result.Status = as.classifyStatus(result, options.MinConfidence)

	// 6. Cache store
	if options.UseCache && as.cache != nil {
		if err := as.cache.Set(ctx, fingerprint, result); err != nil {
			as.logger.Warn("Lỗi lưu cache", zap.Error(err))
		}
	}

	return result, false, nil
}

// resultComplete cả ba cấp đều đã resolve
func resultComplete(result *models.ExtractResult) bool {
	return result.Province.Value != "" && result.District.Value != "" && result.Ward.Value != ""
}

// fillFromSearch bù các cấp còn thiếu bằng Meilisearch: query phần
// remnant theo cấp, chỉ nhận hit đầu nếu có. Thành phần từ fallback
// mang match level fuzzy với confidence thấp cố định.
func (as *AddressService) fillFromSearch(ctx context.Context, result *models.ExtractResult) {
	if result.Remnant == "" {
		return
	}

	fill := func(comp *models.ExtractComponent, level int) {
		if comp.Value != "" {
			return
		}
		docs, err := as.searcher.SearchByLevel(ctx, result.Remnant, level, 1)
		if err != nil {
			as.logger.Warn("Lỗi Meilisearch fallback", zap.Error(err), zap.Int("level", level))
			return
		}
		if len(docs) > 0 {
			comp.Value = docs[0].Name
			comp.MatchLevel = models.MatchLevelFuzzy
			comp.Confidence = 0.5
		}
	}

	fill(&result.Province, search.LevelProvince)
	fill(&result.District, search.LevelDistrict)
	fill(&result.Ward, search.LevelWard)
}

// aggregateConfidence tính confidence tổng hợp theo trọng số cấu hình.
// Cấp không resolve được đóng góp 0.
func (as *AddressService) aggregateConfidence(result *models.ExtractResult) float64 {
	w := config.C.Confidence
	score := 0.0
	score += w.Province * result.Province.Confidence
	score += w.District * result.District.Confidence
	score += w.Ward * result.Ward.Confidence
	return score
}

// classifyStatus gán status theo ngưỡng cấu hình
func (as *AddressService) classifyStatus(result *models.ExtractResult, minConfidence float64) string {
	if !result.HasAnyComponent() {
		return models.StatusUnmatched
	}
	if minConfidence > 0 && result.Confidence < minConfidence {
		return models.StatusNeedsReview
	}
	if result.Confidence < config.C.Thresholds.ReviewLow {
		return models.StatusNeedsReview
	}
	return models.StatusMatched
}

// EstimateBatchProcessingTime ước tính thời gian xử lý batch (giây),
// giả định mỗi địa chỉ mất ~1ms qua trie
func (as *AddressService) EstimateBatchProcessingTime(addressCount int) int {
	seconds := addressCount / 1000
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// ProcessBatchJob xử lý job batch trong background
func (as *AddressService) ProcessBatchJob(jobID string, addresses []string, options requests.ExtractOptions) {
	as.mu.Lock()
	as.jobs[jobID] = &JobStatus{
		JobID:     jobID,
		Status:    "running",
		Total:     len(addresses),
		Message:   "Đang xử lý...",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	as.mu.Unlock()

	ctx := context.Background()
	results := make([]*models.ExtractResult, len(addresses))

	for i, address := range addresses {
		result, _, err := as.Extract(ctx, address, options)
		if err != nil {
			result = &models.ExtractResult{
				Raw:    address,
				Status: models.StatusUnmatched,
			}
		}
		results[i] = result

		as.mu.Lock()
		if job, exists := as.jobs[jobID]; exists {
			job.Processed = i + 1
			job.Progress = float64(i+1) / float64(len(addresses))
			job.UpdatedAt = time.Now()

			if i == len(addresses)-1 {
				job.Status = "done"
				job.Message = "Hoàn thành xử lý"
			}
		}
		as.mu.Unlock()
	}

	as.mu.Lock()
	as.jobResults[jobID] = results
	as.mu.Unlock()

	as.logger.Info("Batch job completed",
		zap.String("job_id", jobID),
		zap.Int("total_addresses", len(addresses)))
}

// GetJobStatus lấy trạng thái job
func (as *AddressService) GetJobStatus(jobID string) (*JobStatus, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	job, exists := as.jobs[jobID]
	if !exists {
		return nil, errors.New("job không tồn tại")
	}

	return job, nil
}

// GetJobResults lấy kết quả job
func (as *AddressService) GetJobResults(jobID string) ([]*models.ExtractResult, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	results, exists := as.jobResults[jobID]
	if !exists {
		return nil, errors.New("kết quả job không tồn tại")
	}

	return results, nil
}

// GetJobResultsStream lấy kết quả job dưới dạng channel để stream
func (as *AddressService) GetJobResultsStream(jobID string) (<-chan *models.ExtractResult, error) {
	results, err := as.GetJobResults(jobID)
	if err != nil {
		return nil, err
	}

	resultChannel := make(chan *models.ExtractResult, 100)

	go func() {
		defer close(resultChannel)
		for _, result := range results {
			resultChannel <- result
		}
	}()

	return resultChannel, nil
}

// GetStartTime lấy thời gian khởi động service
func (as *AddressService) GetStartTime() time.Time {
	return as.startTime
}

// GazetteerVersion phiên bản gazetteer đang phục vụ
func (as *AddressService) GazetteerVersion() string {
	return as.gazetteerVersion
}

// TrieSizes số key trong từng trie (bao gồm alias và biến thể)
func (as *AddressService) TrieSizes() (provinces, districts, wards int) {
	if as.tries == nil {
		return 0, 0, 0
	}
	return as.tries.Provinces.Len(), as.tries.Districts.Len(), as.tries.Wards.Len()
}

// GetStats lấy thống kê service
func (as *AddressService) GetStats() map[string]interface{} {
	as.mu.RLock()
	defer as.mu.RUnlock()

	uptime := time.Since(as.startTime)

	return map[string]interface{}{
		"uptime_seconds":    int64(uptime.Seconds()),
		"start_time":        as.startTime.Format(time.RFC3339),
		"gazetteer_version": as.gazetteerVersion,
		"active_jobs":       len(as.jobs),
		"status":            "running",
	}
}
