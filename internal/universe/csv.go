package universe

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// FromCSV loads the ticker universe from a delimited file containing a
// "Symbol" column. The returned set is filtered, deduplicated and sorted.
func FromCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tickers file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "Symbol") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("no Symbol column in %s (header: %v)", path, header)
	}

	var raw []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if col < len(rec) {
			raw = append(raw, rec[col])
		}
	}
	return Filter(raw), nil
}
