package gateway

import (
	"encoding/csv"
	"fmt"
	"io"
)

// readCSV reads a comma-separated report. Rows may be ragged; short rows are
// padded to the header width by newTable.
func readCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	rows := [][]string{header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record %d: %w", len(rows), err)
		}
		rows = append(rows, record)
	}
	return newTable(rows), nil
}
