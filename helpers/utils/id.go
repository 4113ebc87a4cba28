package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewJobID sinh ID cho batch job: "job-" + 16 hex ngẫu nhiên. Đủ ngắn
// để đọc được trong log và URL, đủ dài để không đụng nhau trong thực tế.
func NewJobID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand fail chỉ xảy ra khi hệ thống hỏng nặng
		panic("utils: crypto/rand không khả dụng: " + err.Error())
	}
	return "job-" + hex.EncodeToString(b)
}
