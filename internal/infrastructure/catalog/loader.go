package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saleslens/backend/internal/domain"
	logx "github.com/saleslens/backend/pkg/logger"
)

// Expected CSV headers. Matching is case-insensitive and ignores surrounding
// whitespace, but every column must be present or the load fails.
const (
	colProductName  = "product_name"
	colProductCode  = "product_code"
	colMinOrderQty  = "min_order_qty"
	colPaymentTerms = "payment_terms"
)

// LoadDirectory builds a catalog snapshot from a directory of CSV files.
// baselineFile (e.g. "baseline.csv") holds the baseline table; every other
// .csv file is an industry override table whose label is the file stem
// ("apparel.csv" -> "apparel"). Any unreadable file or malformed table aborts
// the load.
func LoadDirectory(dir, baselineFile string) (*Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory: %w", err)
	}

	snap := NewSnapshot()
	baselineSeen := false

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		records, err := readCSV(path)
		if err != nil {
			return nil, err
		}

		if entry.Name() == baselineFile {
			rows, err := parseBaselineRows(path, records)
			if err != nil {
				return nil, err
			}
			if err := snap.LoadBaseline(rows); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			baselineSeen = true
			logx.Info().Str("file", entry.Name()).Int("rows", len(rows)).Msg("loaded baseline catalog")
			continue
		}

		label := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		rows, err := parseOverrideRows(path, records)
		if err != nil {
			return nil, err
		}
		if err := snap.LoadIndustry(label, rows); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logx.Info().Str("industry", label).Int("rows", len(rows)).Msg("loaded industry override table")
	}

	if !baselineSeen {
		return nil, fmt.Errorf("%w: baseline file %q not found in %s", domain.ErrInvalidData, baselineFile, dir)
	}

	return snap, nil
}

// readCSV reads a whole CSV file including the header row
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrInvalidData, path)
	}
	return records, nil
}

// columnIndex maps the required column names to their positions in the header
func columnIndex(path string, header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colProductName, colProductCode, colMinOrderQty, colPaymentTerms} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: %s missing column %q", domain.ErrInvalidData, path, required)
		}
	}
	return idx, nil
}

func parseBaselineRows(path string, records [][]string) ([]domain.ProductRecord, error) {
	idx, err := columnIndex(path, records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ProductRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, domain.ProductRecord{
			Name:                 field(record, idx[colProductName]),
			Code:                 field(record, idx[colProductCode]),
			MinimumOrderQuantity: field(record, idx[colMinOrderQty]),
			PaymentTerms:         field(record, idx[colPaymentTerms]),
		})
	}
	return rows, nil
}

func parseOverrideRows(path string, records [][]string) ([]domain.IndustryOverride, error) {
	idx, err := columnIndex(path, records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]domain.IndustryOverride, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, domain.IndustryOverride{
			ProductName:          field(record, idx[colProductName]),
			ProductCode:          field(record, idx[colProductCode]),
			MinimumOrderQuantity: field(record, idx[colMinOrderQty]),
			PaymentTerms:         field(record, idx[colPaymentTerms]),
		})
	}
	return rows, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
