package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"reporthub_backend/internals/constants"
	helper "reporthub_backend/internals/helpers"
)

var ErrUnsupportedFile = errors.New("unsupported file type, upload a .csv or .xlsx file")

// Row is one data line. Num is the 1-based line in the sheet (header = 1).
type Row struct {
	Num   int
	Cells []string
}

// Get returns the trimmed cell at idx, "" when idx is -1 or out of range.
func (r Row) Get(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[idx])
}

func (r Row) blank() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Table is a parsed sheet: cleaned headers plus non-blank data rows.
type Table struct {
	Headers []string
	keys    []string
	Rows    []Row
}

// Col finds the first header matching any alias (compared via NormalizeHeader). -1 if absent.
func (t *Table) Col(aliases ...string) int {
	for _, a := range aliases {
		want := helper.NormalizeHeader(a)
		for i, k := range t.keys {
			if k == want {
				return i
			}
		}
	}
	return -1
}

// Key is the normalized header at idx.
func (t *Table) Key(idx int) string {
	if idx < 0 || idx >= len(t.keys) {
		return ""
	}
	return t.keys[idx]
}

// ReadTable dispatches on the file extension.
func ReadTable(fileName string, data []byte) (*Table, error) {
	switch constants.DetectUploadFileType(fileName) {
	case constants.UploadFileCSV:
		return ParseCSV(data)
	case constants.UploadFileXLSX:
		return ParseXLSX(data)
	default:
		return nil, ErrUnsupportedFile
	}
}

func ParseCSV(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var raw [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid CSV: %w", err)
		}
		raw = append(raw, rec)
	}
	return newTable(raw), nil
}

// ParseXLSX reads the first sheet only.
func ParseXLSX(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("invalid Excel file: workbook has no sheets")
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("invalid Excel file: %w", err)
	}
	return newTable(raw), nil
}

// newTable treats the first record as the header row. Blank lines are dropped
// but keep their place in row numbering.
func newTable(raw [][]string) *Table {
	t := &Table{}
	if len(raw) == 0 {
		return t
	}
	for _, h := range raw[0] {
		clean := helper.CleanName(strings.TrimPrefix(h, "\ufeff"))
		t.Headers = append(t.Headers, clean)
		t.keys = append(t.keys, helper.NormalizeHeader(clean))
	}
	for i, cells := range raw[1:] {
		row := Row{Num: i + 2, Cells: cells}
		if row.blank() {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
