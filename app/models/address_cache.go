package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddressCache document cache kết quả extract trong MongoDB
type AddressCache struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RawFingerprint   string             `bson:"raw_fingerprint" json:"raw_fingerprint"`     // Fingerprint của địa chỉ
	RawAddress       string             `bson:"raw_address" json:"raw_address"`             // Địa chỉ gốc
	Normalized       string             `bson:"normalized" json:"normalized"`               // Văn bản đã chuẩn hóa
	Result           ExtractResult      `bson:"result" json:"result"`                       // Kết quả extract
	Confidence       float64            `bson:"confidence" json:"confidence"`               // Độ tin cậy
	Status           string             `bson:"status" json:"status"`                       // Trạng thái kết quả
	GazetteerVersion string             `bson:"gazetteer_version" json:"gazetteer_version"` // Phiên bản gazetteer
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`               // Thời gian tạo
	LastAccessed     time.Time          `bson:"last_accessed" json:"last_accessed"`         // Lần truy cập cuối
	AccessCount      int                `bson:"access_count" json:"access_count"`           // Số lần truy cập
}

// NewAddressCache tạo mới một AddressCache từ kết quả extract
func NewAddressCache(result *ExtractResult) *AddressCache {
	now := time.Now()
	return &AddressCache{
		RawFingerprint:   result.RawFingerprint,
		RawAddress:       result.Raw,
		Normalized:       result.Normalized,
		Result:           *result,
		Confidence:       result.Confidence,
		Status:           result.Status,
		GazetteerVersion: result.GazetteerVersion,
		CreatedAt:        now,
		LastAccessed:     now,
		AccessCount:      1,
	}
}

// UpdateAccess cập nhật thông tin truy cập
func (ac *AddressCache) UpdateAccess() {
	ac.LastAccessed = time.Now()
	ac.AccessCount++
}

// IsExpired kiểm tra cache có hết hạn không (dựa trên thời gian tạo)
func (ac *AddressCache) IsExpired(ttlHours int) bool {
	return time.Since(ac.CreatedAt) > time.Duration(ttlHours)*time.Hour
}

// IsValidGazetteerVersion kiểm tra phiên bản gazetteer có khớp không
func (ac *AddressCache) IsValidGazetteerVersion(currentVersion string) bool {
	return ac.GazetteerVersion == currentVersion
}
