// Package tabular reads and writes the CSV files used for bulk import and
// export.
package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrEmptyFile     = goerr.New("file has no header row")
	ErrMissingColumn = goerr.New("required column missing")
)

// ListSeparator joins list-valued columns such as assigned members.
const ListSeparator = ","

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one data row keyed by lower-cased header name. Line is the file
// line of the row minus the header line.
type Row struct {
	Line   int
	Values map[string]string
}

// Get returns the trimmed value of column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Values[column])
}

// Has reports whether the file carried column at all.
func (r Row) Has(column string) bool {
	_, ok := r.Values[column]
	return ok
}

// Table is a decoded CSV file.
type Table struct {
	Header []string
	Rows   []Row
}

// Require fails unless every column is present in the header.
func (t *Table) Require(columns ...string) error {
	seen := make(map[string]bool, len(t.Header))
	for _, h := range t.Header {
		seen[h] = true
	}
	for _, c := range columns {
		if !seen[c] {
			return goerr.Wrap(ErrMissingColumn, "column not found in header", goerr.V("column", c))
		}
	}
	return nil
}

// toUTF8 returns data as UTF-8. Input that is not valid UTF-8 is read as
// Windows-1252, the encoding spreadsheet tools commonly write.
func toUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode as windows-1252")
	}
	return decoded, nil
}

// Decode reads a whole CSV file. Header names are trimmed and lower-cased,
// blank lines are skipped and short rows are padded with empty values.
func Decode(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read csv")
	}
	data, err := toUTF8(raw)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err == io.EOF {
		return nil, goerr.Wrap(ErrEmptyFile, "no header row")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse csv header")
	}

	header := make([]string, len(first))
	for i, h := range first {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse csv")
		}
		if isBlank(rec) {
			continue
		}

		line, _ := cr.FieldPos(0)
		values := make(map[string]string, len(header))
		for j, h := range header {
			if h == "" {
				continue
			}
			if j < len(rec) {
				values[h] = rec[j]
			} else {
				values[h] = ""
			}
		}
		t.Rows = append(t.Rows, Row{Line: line - 1, Values: values})
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Encode writes header and rows as UTF-8 CSV.
func Encode(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return goerr.Wrap(err, "failed to write csv header")
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write csv row", goerr.V("row", i+1))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush csv")
	}
	return nil
}

// JoinList flattens a list column for export.
func JoinList(values []string) string {
	return strings.Join(values, ListSeparator+" ")
}

// SplitList parses a flattened list column. Items are trimmed and blanks
// dropped, so JoinList then SplitList is lossless for items free of the
// separator.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ListSeparator) {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
