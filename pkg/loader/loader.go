// Package loader reads search-term report exports and merges them into one
// raw table. Exports carry a two-row metadata preamble before the header
// row; both the CSV and the HTML table form of the export follow it.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PreambleRows is the fixed metadata preamble of the report format.
const PreambleRows = 2

// AccountColumn is the synthetic column tagging each row with the
// identifier of the file it came from.
const AccountColumn = "account"

// ErrEmptyInput is returned when no input file could be parsed. Callers
// must not proceed to normalization or aggregation on an empty table.
var ErrEmptyInput = errors.New("no input files could be parsed")

// Table is a raw decoded report: header names in stable order plus rows as
// header->cell maps. Row order is insertion order.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// FileError records a single input file that failed to decode. One bad
// file does not abort the batch.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// LoadFiles decodes every path and concatenates the results into one table,
// tagging each row with its source file's base name in the account column.
// Files that fail to decode are skipped and reported in the returned slice.
// When zero files decode, the error is ErrEmptyInput.
func LoadFiles(paths []string) (*Table, []FileError, error) {
	merged := &Table{}
	var fileErrs []FileError

	for _, path := range paths {
		tbl, err := loadFile(path)
		if err != nil {
			fileErrs = append(fileErrs, FileError{File: path, Err: err})
			continue
		}
		appendTable(merged, tbl)
	}

	if len(merged.Headers) == 0 {
		return nil, fileErrs, ErrEmptyInput
	}
	return merged, fileErrs, nil
}

func loadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	account := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ParseHTML(f, account)
	default:
		return ParseCSV(f, account)
	}
}

// ParseCSV decodes one CSV export: two preamble rows, a header row, then
// data rows. Ragged rows are tolerated; short rows leave trailing columns
// empty.
func ParseCSV(r io.Reader, account string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv decode failed: %w", err)
	}

	return tableFromRecords(records, account)
}

// tableFromRecords applies the preamble-skip convention to raw rows and
// tags every data row with its account.
func tableFromRecords(records [][]string, account string) (*Table, error) {
	if len(records) < PreambleRows+1 {
		return nil, fmt.Errorf("report has %d rows, need at least %d (preamble + header)",
			len(records), PreambleRows+1)
	}

	header := records[PreambleRows]
	tbl := &Table{Headers: append([]string{}, header...)}
	if !contains(tbl.Headers, AccountColumn) {
		tbl.Headers = append(tbl.Headers, AccountColumn)
	}

	for _, rec := range records[PreambleRows+1:] {
		row := make(map[string]string, len(header)+1)
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		row[AccountColumn] = account
		tbl.Rows = append(tbl.Rows, row)
	}

	return tbl, nil
}

// appendTable concatenates src onto dst, extending dst's header order with
// any columns it has not seen yet (first-seen order, no sorting).
func appendTable(dst, src *Table) {
	for _, h := range src.Headers {
		if !contains(dst.Headers, h) {
			dst.Headers = append(dst.Headers, h)
		}
	}
	dst.Rows = append(dst.Rows, src.Rows...)
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
