package gateway

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"payhub-reconciliation/internal/domain"
)

// Table is the first sheet of an uploaded file: a header row and its data rows.
// Every data row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads a csv, xls or xlsx file. name only selects the format.
func ReadTable(name string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return readCSV(r)
	case ".xlsx", ".xlsm":
		return readXLSX(r)
	case ".xls":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		t, err := readXLS(data)
		if err != nil {
			// plenty of vendor portals export xlsx content under an .xls name
			if t, xerr := readXLSX(bytes.NewReader(data)); xerr == nil {
				return t, nil
			}
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, name)
}

// OpenUpload opens a local file as an upload named after its base name.
// The caller closes the returned file.
func OpenUpload(path string) (domain.Upload, *os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Upload{}, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return domain.Upload{Name: filepath.Base(path), Body: file}, file, nil
}

// newTable takes the first non-blank row as header and drops blank data rows.
func newTable(rows [][]string) *Table {
	t := &Table{}
	start := 0
	for start < len(rows) && blankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return t
	}
	for _, h := range rows[start] {
		t.Header = append(t.Header, strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	for _, row := range rows[start+1:] {
		if blankRow(row) {
			continue
		}
		cells := make([]string, len(t.Header))
		copy(cells, row)
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// UpperHeader upper-cases every header name.
func (t *Table) UpperHeader() {
	for i, h := range t.Header {
		t.Header[i] = strings.ToUpper(h)
	}
}

// Missing returns the columns of cols absent from the header.
func (t *Table) Missing(cols ...string) []string {
	have := make(map[string]bool, len(t.Header))
	for _, h := range t.Header {
		have[h] = true
	}
	var missing []string
	for _, c := range cols {
		if c != "" && !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Records returns every data row keyed by header name. On repeated header
// names the leftmost column wins.
func (t *Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Header))
		for i, h := range t.Header {
			if _, dup := rec[h]; dup || h == "" {
				continue
			}
			rec[h] = strings.TrimSpace(row[i])
		}
		out = append(out, rec)
	}
	return out
}
