package requests

// ExtractAddressRequest request extract địa chỉ đơn lẻ
type ExtractAddressRequest struct {
	Address string         `json:"address" binding:"required"` // Địa chỉ cần extract
	Options ExtractOptions `json:"options,omitempty"`          // Tùy chọn extract
}

// ExtractOptions tùy chọn extract
type ExtractOptions struct {
	UseCache      bool    `json:"use_cache,omitempty"`      // Có sử dụng cache không
	MinConfidence float64 `json:"min_confidence,omitempty"` // Dưới ngưỡng này result bị đánh needs_review
}

// BatchExtractRequest request extract hàng loạt địa chỉ
type BatchExtractRequest struct {
	Addresses []string       `json:"addresses" binding:"required,min=1,max=20000"` // Danh sách địa chỉ (tối đa 20k)
	Options   ExtractOptions `json:"options,omitempty"`                            // Tùy chọn extract
}
