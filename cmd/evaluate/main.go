// Evaluate đo độ chính xác của extractor trên một dataset đã gán nhãn.
// Input là file TSV bốn cột: raw_address, province, district, ward
// (cột rỗng = không có nhãn cho cấp đó). In report tổng hợp và các case
// sai đầu tiên.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/address-extractor/internal/gazetteer"
	"github.com/address-extractor/internal/resolver"
	"go.uber.org/zap"
)

type labeledCase struct {
	Raw      string
	Province string
	District string
	Ward     string
}

func main() {
	var (
		datasetDir  = flag.String("dataset", "./dataset", "thư mục chứa province.txt, district.txt, ward.txt")
		labeledPath = flag.String("labeled", "", "file TSV đã gán nhãn: raw, province, district, ward")
		maxMistakes = flag.Int("show-mistakes", 20, "số case sai in ra tối đa")
	)
	flag.Parse()

	if *labeledPath == "" {
		log.Fatal("thiếu -labeled")
	}

	logger := zap.NewNop()

	dataset, err := gazetteer.LoadDir(*datasetDir)
	if err != nil {
		log.Fatal("Lỗi load gazetteer dataset: ", err)
	}

	buildStart := time.Now()
	tries, err := gazetteer.BuildAll(dataset, gazetteer.BuildOptions{ASCIIAliases: true})
	if err != nil {
		log.Fatal("Lỗi build tries: ", err)
	}
	buildDuration := time.Since(buildStart)

	rslv := resolver.NewResolver(tries, resolver.Options{FallbackDrops: -1}, logger)

	cases, err := loadLabeled(*labeledPath)
	if err != nil {
		log.Fatal("Lỗi load labeled file: ", err)
	}

	var provinceOK, districtOK, wardOK, allOK int
	var mistakes []string

	evalStart := time.Now()
	for _, c := range cases {
		res := rslv.Process(c.Raw)

		pOK := res.Province.Value == c.Province
		dOK := res.District.Value == c.District
		wOK := res.Ward.Value == c.Ward

		if pOK {
			provinceOK++
		}
		if dOK {
			districtOK++
		}
		if wOK {
			wardOK++
		}
		if pOK && dOK && wOK {
			allOK++
		} else if len(mistakes) < *maxMistakes {
			mistakes = append(mistakes, fmt.Sprintf(
				"  raw: %q\n    got:  province=%q district=%q ward=%q\n    want: province=%q district=%q ward=%q",
				c.Raw,
				res.Province.Value, res.District.Value, res.Ward.Value,
				c.Province, c.District, c.Ward))
		}
	}
	evalDuration := time.Since(evalStart)

	total := len(cases)
	fmt.Printf("Build: %d provinces, %d districts, %d wards in %v\n",
		tries.Provinces.Len(), tries.Districts.Len(), tries.Wards.Len(), buildDuration)
	fmt.Printf("Evaluated %d cases in %v (%.0f addr/s)\n\n",
		total, evalDuration, float64(total)/evalDuration.Seconds())

	report := func(name string, ok int) {
		fmt.Printf("%-10s %5d/%d  (%.2f%%)\n", name, ok, total, pct(ok, total))
	}
	report("province", provinceOK)
	report("district", districtOK)
	report("ward", wardOK)
	report("all", allOK)

	if len(mistakes) > 0 {
		fmt.Printf("\nFirst %d mistakes:\n", len(mistakes))
		for _, m := range mistakes {
			fmt.Println(m)
		}
	}
}

func pct(ok, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(ok) / float64(total)
}

// loadLabeled đọc file TSV đã gán nhãn
func loadLabeled(path string) ([]labeledCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = 4
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("lỗi đọc TSV %s: %w", path, err)
	}

	cases := make([]labeledCase, 0, len(records))
	for _, rec := range records {
		cases = append(cases, labeledCase{
			Raw:      rec[0],
			Province: rec[1],
			District: rec[2],
			Ward:     rec[3],
		})
	}
	return cases, nil
}
