//go:build cgo

// Package external wrap libpostal để tách phần đường/số nhà từ remnant
// sau khi ba thành phần hành chính đã được resolve.
package external

import (
	"strings"

	"github.com/openvenues/gopostal/expand"
	"github.com/openvenues/gopostal/parser"
)

// Residual các thành phần cấp đường libpostal tách được từ remnant
type Residual struct {
	HouseNumber string
	Street      string
	Unit        string
	Coverage    float64 // tỷ lệ từ của input được gán nhãn
}

// ParseResidual chạy libpostal trên phần text không map được: expand
// với tiếng Việt rồi parse, giữ các nhãn cấp đường
func ParseResidual(remnant string) Residual {
	if strings.TrimSpace(remnant) == "" {
		return Residual{}
	}

	opts := expand.DefaultOptions()
	opts.Languages = []string{"vi"}
	exps := expand.ExpandAddress(remnant, opts)

	best := remnant
	if len(exps) > 0 {
		best = exps[0]
	}

	comps := parser.ParseAddress(best)

	covered, total := 0, len(strings.Fields(best))
	res := Residual{}
	for _, c := range comps {
		switch c.Label {
		case "house_number":
			res.HouseNumber = c.Value
		case "road":
			res.Street = c.Value
		case "unit":
			res.Unit = c.Value
		}
		covered += len(strings.Fields(c.Value))
	}
	if total > 0 {
		res.Coverage = float64(covered) / float64(total)
	}

	return res
}

// Available báo libpostal có được compile vào binary không
func Available() bool { return true }
