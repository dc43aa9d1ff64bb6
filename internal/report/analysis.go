package report

import "github.com/tinytelemetry/webstat/internal/model"

// Analysis holds the post-filter record set of one pipeline run and
// answers report queries over it. Records are owned by the Analysis and
// never mutated.
type Analysis struct {
	records []model.Record
}

// NewAnalysis wraps the filtered records of a completed run.
func NewAnalysis(records []model.Record) *Analysis {
	return &Analysis{records: records}
}

// Report builds the ranked rows for mode, truncated to limit.
func (a *Analysis) Report(mode Mode, limit int) []model.Row {
	return Build(mode, a.records, limit)
}

// RecordCount returns the number of records that survived filtering.
func (a *Analysis) RecordCount() int64 {
	return int64(len(a.records))
}
