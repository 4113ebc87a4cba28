package models

// ExtractResult kết quả tách thành phần hành chính từ một địa chỉ tự do
type ExtractResult struct {
	Raw              string           `json:"raw"`                        // Địa chỉ gốc
	Normalized       string           `json:"normalized"`                 // Văn bản đã chuẩn hóa
	Province         ExtractComponent `json:"province"`                   // Tỉnh/thành phố
	District         ExtractComponent `json:"district"`                   // Quận/huyện
	Ward             ExtractComponent `json:"ward"`                       // Phường/xã
	Remnant          string           `json:"remnant,omitempty"`          // Phần text không map được
	Street           string           `json:"street,omitempty"`           // Đường (từ libpostal, nếu bật)
	HouseNumber      string           `json:"house_number,omitempty"`     // Số nhà (từ libpostal, nếu bật)
	Confidence       float64          `json:"confidence"`                 // Độ tin cậy tổng hợp
	Status           string           `json:"status"`                     // Trạng thái xử lý
	RawFingerprint   string           `json:"raw_fingerprint"`            // Fingerprint của địa chỉ gốc
	GazetteerVersion string           `json:"gazetteer_version,omitempty"` // Phiên bản gazetteer đã dùng
}

// ExtractComponent một thành phần hành chính trong kết quả
type ExtractComponent struct {
	Value      string  `json:"value"`                 // Tên canonical
	MatchLevel string  `json:"match_level,omitempty"` // Mức độ match
	Confidence float64 `json:"confidence,omitempty"`  // Độ tin cậy thành phần
}

// Status constants
const (
	StatusMatched     = "matched"
	StatusNeedsReview = "needs_review"
	StatusUnmatched   = "unmatched"
)

// MatchLevel constants
const (
	MatchLevelExact      = "exact"
	MatchLevelAsciiExact = "ascii_exact"
	MatchLevelFuzzy      = "fuzzy"
)

// IsValidStatus kiểm tra status có hợp lệ không
func (er *ExtractResult) IsValidStatus() bool {
	switch er.Status {
	case StatusMatched, StatusNeedsReview, StatusUnmatched:
		return true
	}
	return false
}

// HasAnyComponent báo có ít nhất một thành phần được resolve
func (er *ExtractResult) HasAnyComponent() bool {
	return er.Province.Value != "" || er.District.Value != "" || er.Ward.Value != ""
}

// ComponentCount số thành phần đã resolve được
func (er *ExtractResult) ComponentCount() int {
	count := 0
	for _, c := range []ExtractComponent{er.Province, er.District, er.Ward} {
		if c.Value != "" {
			count++
		}
	}
	return count
}
