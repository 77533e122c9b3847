package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"macro-averages/models"
	"macro-averages/utils"
)

const utf8BOM = "\ufeff"

// CSVReader collects rows from CSV files with a header line.
type CSVReader struct {
	logger *utils.Logger
}

// NewCSVReader creates a CSVReader with the given logger.
func NewCSVReader(logger *utils.Logger) *CSVReader {
	return &CSVReader{logger: logger}
}

// Collect reads path and returns every data row projected down to fields,
// in file order. All fields must be present in the header.
func (c *CSVReader) Collect(path string, fields []string) (*models.RawDataset, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MissingFieldsError{File: name, Fields: append([]string(nil), fields...)}
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header of %q: %w", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	// a repeated column name resolves to its last occurrence
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	var missing []string
	for _, field := range fields {
		if _, ok := index[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{File: name, Fields: missing}
	}

	ds := &models.RawDataset{
		Source: name,
		Fields: append([]string(nil), fields...),
	}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read %q: %w", name, err)
		}

		row := make(models.RawRow, len(fields))
		for _, field := range fields {
			// Short records leave the trailing columns empty.
			if i := index[field]; i < len(record) {
				row[field] = record[i]
			} else {
				row[field] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}

	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoData, name)
	}

	c.logger.Debug("[collector] %s: %d rows, %d of %d columns kept",
		name, len(ds.Rows), len(fields), len(header))
	return ds, nil
}
