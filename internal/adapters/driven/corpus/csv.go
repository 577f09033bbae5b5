// Package corpus reads the KCC advisory dataset.
package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// Ensure CSVReader implements the interface.
var _ driven.CorpusReader = (*CSVReader)(nil)

const utf8BOM = "\ufeff"

// CSVReader reads corpus rows from a CSV file with a header row.
// Extra columns are ignored; QueryText and KccAns must be present.
type CSVReader struct {
	path string
}

// NewCSVReader creates a reader for the CSV file at path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Source returns the file path.
func (r *CSVReader) Source() string {
	return r.path
}

// Read parses every data row. Row ordinals start at zero with the first
// row after the header.
func (r *CSVReader) Read(ctx context.Context) ([]domain.RawRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open corpus: %w", domain.ErrData, err)
	}
	defer f.Close()

	return Parse(ctx, f)
}

// Parse reads corpus rows from any CSV stream.
func Parse(ctx context.Context, src io.Reader) ([]domain.RawRecord, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: corpus is empty", domain.ErrData)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrData, err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []domain.RawRecord
	for row := 0; ; row++ {
		if row%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", domain.ErrData, row, err)
		}

		records = append(records, domain.RawRecord{
			Row:       row,
			QueryText: cols.get(fields, domain.ColumnQueryText),
			Answer:    cols.get(fields, domain.ColumnAnswer),
			State:     cols.get(fields, domain.ColumnState),
			District:  cols.get(fields, domain.ColumnDistrict),
			Crop:      cols.get(fields, domain.ColumnCrop),
		})
	}
	return records, nil
}

// columns maps header names to field positions.
type columns map[string]int

func columnIndex(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, required := range domain.RequiredColumns() {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: corpus is missing required columns: %s",
			domain.ErrData, strings.Join(missing, ", "))
	}
	return cols, nil
}

// get returns the named field, or "" when the column is absent or the row is short.
func (c columns) get(fields []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return fields[i]
}
