package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"shopee-scraper/models"
)

// Table is an ordered tabular file loaded into memory: a header row plus one
// string map per data row.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the table's header contains the given column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ReadTable loads a CSV (or TSV, the delimiter is sniffed from the first
// line, matching files exported by various spreadsheet tools). A UTF-8 BOM
// is stripped if present. Rows shorter than the header are padded with empty
// strings.
func ReadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("table: read %q: %w", path, err)
	}

	content := strings.TrimPrefix(string(raw), utf8BOM)

	delimiter := ','
	if firstLine, _, found := strings.Cut(content, "\n"); found || firstLine != "" {
		if strings.ContainsRune(firstLine, '\t') {
			delimiter = '\t'
		}
	}

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: parse %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table: %q has no header row", path)
	}

	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.TrimSpace(c)
	}

	table := &Table{Columns: columns}
	for _, record := range records[1:] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ReadProductRefs extracts (shop, item, name) triples from a listing table.
// Rows missing either ID are kept; the review scraper decides how to report
// and skip them.
func ReadProductRefs(path string) ([]models.ProductRef, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	refs := make([]models.ProductRef, 0, len(table.Rows))
	for _, row := range table.Rows {
		refs = append(refs, models.ProductRef{
			ShopID: strings.TrimSpace(row["Shop ID"]),
			ItemID: strings.TrimSpace(row["Item ID"]),
			Name:   row["Product Name"],
		})
	}
	return refs, nil
}
