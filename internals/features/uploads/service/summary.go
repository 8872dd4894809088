package service

import (
	"fmt"

	"reporthub_backend/internals/features/uploads/model"
)

// RowResult is the outcome of one data row. Err nil means the row was imported.
type RowResult struct {
	Row int
	Err error
}

func ok(row int) RowResult {
	return RowResult{Row: row}
}

func fail(row int, err error) RowResult {
	return RowResult{Row: row, Err: err}
}

func failf(row int, format string, a ...any) RowResult {
	return RowResult{Row: row, Err: fmt.Errorf(format, a...)}
}

type Summary struct {
	Status           string   `json:"status"`
	RecordsProcessed int      `json:"recordsProcessed"`
	TotalRows        int      `json:"totalRows"`
	Errors           []string `json:"errors"`
}

// Summarize folds row results into the upload status.
// SUCCESS: no errors and something imported. PARTIAL: some of each. FAILED: nothing imported.
func Summarize(results []RowResult, totalRows int) Summary {
	s := Summary{TotalRows: totalRows, Errors: []string{}}
	for _, r := range results {
		if r.Err != nil {
			s.Errors = append(s.Errors, fmt.Sprintf("Row %d: %s", r.Row, r.Err))
			continue
		}
		s.RecordsProcessed++
	}
	switch {
	case s.RecordsProcessed == 0:
		s.Status = model.UploadStatusFailed
	case len(s.Errors) > 0:
		s.Status = model.UploadStatusPartial
	default:
		s.Status = model.UploadStatusSuccess
	}
	return s
}
