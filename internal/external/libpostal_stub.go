//go:build !cgo

package external

// Residual các thành phần cấp đường libpostal tách được từ remnant
type Residual struct {
	HouseNumber string
	Street      string
	Unit        string
	Coverage    float64
}

// ParseResidual no-op khi build không có cgo/libpostal
func ParseResidual(remnant string) Residual { return Residual{} }

// Available báo libpostal có được compile vào binary không
func Available() bool { return false }
