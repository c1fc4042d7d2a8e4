package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samirrijal/trailboard/internal/core/domain"
)

// ErrMissingColumn is returned (wrapped in *ColumnError) when a required
// header is absent.
var ErrMissingColumn = errors.New("missing column")

// ColumnError names the file and column that failed a header lookup.
type ColumnError struct {
	File   string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: missing column %q", filepath.Base(e.File), e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }

// table is a fully read CSV file with its header indexed by trimmed name.
type table struct {
	file string
	cols map[string]int
	rows [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &table{file: path, cols: map[string]int{}}, nil
		}
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}

	t := &table{file: path, cols: indexColumns(header)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

func indexColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		// Strip BOM from first column
		col = strings.TrimPrefix(col, "\xef\xbb\xbf")
		m[strings.TrimSpace(col)] = i
	}
	return m
}

// require fails on the first name that is not a header column.
func (t *table) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.cols[name]; !ok {
			return &ColumnError{File: t.file, Column: name}
		}
	}
	return nil
}

func (t *table) has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// get returns the trimmed field, or "" when the column or field is absent.
func (t *table) get(record []string, name string) string {
	idx, ok := t.cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// float parses a field; missing or malformed values give nil.
func (t *table) float(record []string, name string) *float64 {
	s := t.get(record, name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// location reads a coordinate pair. Rows with either value missing, or
// out of WGS 84 range, have no location.
func (t *table) location(record []string, latCol, lonCol string) *domain.GeoPoint {
	lat := t.float(record, latCol)
	lon := t.float(record, lonCol)
	if lat == nil || lon == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 || *lon < -180 || *lon > 180 {
		return nil
	}
	return &domain.GeoPoint{Lat: *lat, Lon: *lon}
}
