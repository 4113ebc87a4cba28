package responses

import (
	"github.com/address-extractor/app/models"
)

// ExtractAddressResponse response extract địa chỉ đơn lẻ
type ExtractAddressResponse struct {
	Result           *models.ExtractResult `json:"result"`             // Kết quả extract
	GazetteerVersion string                `json:"gazetteer_version"`  // Phiên bản gazetteer
	ProcessingTimeMs int64                 `json:"processing_time_ms"` // Thời gian xử lý (ms)
	CacheHit         bool                  `json:"cache_hit"`          // Có hit cache không
}

// BatchExtractResponse response extract hàng loạt địa chỉ
type BatchExtractResponse struct {
	JobID            string `json:"job_id"`            // ID của job
	EstimatedSeconds int    `json:"estimated_seconds"` // Thời gian ước tính (giây)
	TotalAddresses   int    `json:"total_addresses"`   // Tổng số địa chỉ
	Message          string `json:"message"`           // Thông báo
}

// JobStatusResponse response trạng thái job
type JobStatusResponse struct {
	JobID     string  `json:"job_id"`    // ID của job
	Status    string  `json:"status"`    // Trạng thái job
	Progress  float64 `json:"progress"`  // Tiến độ (0.0 - 1.0)
	Processed int     `json:"processed"` // Số địa chỉ đã xử lý
	Total     int     `json:"total"`     // Tổng số địa chỉ
	Message   string  `json:"message"`   // Thông báo
}

// JobStatus constants
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// AdminStatsResponse response thống kê admin
type AdminStatsResponse struct {
	CacheHitRate     float64 `json:"cache_hit_rate"`    // Tỷ lệ hit cache
	TotalCached      int64   `json:"total_cached"`      // Tổng số địa chỉ trong cache
	GazetteerVersion string  `json:"gazetteer_version"` // Phiên bản gazetteer đang chạy
	ProvinceCount    int     `json:"province_count"`    // Số key trong trie tỉnh (gồm alias, biến thể)
	DistrictCount    int     `json:"district_count"`    // Số key trong trie quận/huyện
	WardCount        int     `json:"ward_count"`        // Số key trong trie phường/xã
	UptimeSeconds    int64   `json:"uptime_seconds"`    // Thời gian hoạt động (giây)
	LastUpdated      string  `json:"last_updated"`      // Lần cập nhật cuối
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string      `json:"error"`                // Mã lỗi
	Message   string      `json:"message"`              // Thông báo lỗi
	Details   interface{} `json:"details,omitempty"`    // Chi tiết lỗi
	Timestamp string      `json:"timestamp"`            // Thời gian xảy ra lỗi
	RequestID string      `json:"request_id,omitempty"` // ID của request
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success   bool        `json:"success"`        // Có thành công không
	Message   string      `json:"message"`        // Thông báo
	Data      interface{} `json:"data,omitempty"` // Dữ liệu
	Timestamp string      `json:"timestamp"`      // Thời gian
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`    // Trạng thái sức khỏe
	Timestamp string            `json:"timestamp"` // Thời gian kiểm tra
	Uptime    string            `json:"uptime"`    // Thời gian hoạt động
	Version   string            `json:"version"`   // Phiên bản
	Services  map[string]string `json:"services"`  // Trạng thái các service
}
