// Package report composes the five reporting views over the aggregation
// engine: connection attempts, successful attempts, status codes, failure
// status codes, and bytes transferred, each grouped around client IPs.
package report

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/webstat/internal/aggregate"
	"github.com/tinytelemetry/webstat/internal/model"
)

// Mode selects one of the five reports.
type Mode string

const (
	ModeAttempts Mode = "attempts" // connection attempts by IP
	ModeSuccess  Mode = "success"  // 1xx-3xx attempts by IP
	ModeStatus   Mode = "status"   // distinct (code, IP) pairs
	ModeFailure  Mode = "failure"  // distinct 4xx-5xx (code, IP) pairs
	ModeBytes    Mode = "bytes"    // bytes transferred by IP
)

// Modes lists every valid mode in display order.
var Modes = []Mode{ModeAttempts, ModeSuccess, ModeStatus, ModeFailure, ModeBytes}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if s == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q (valid: %s)", s, ModeNames())
}

// ModeNames returns the valid mode names joined for usage text.
func ModeNames() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, "|")
}

// Grouped reports whether the mode ranks distinct (code, IP) pairs rather
// than IP-only rows.
func (m Mode) Grouped() bool {
	return m == ModeStatus || m == ModeFailure
}

// Build aggregates and ranks records for the mode. Records that do not
// satisfy the mode's selection predicate are excluded before grouping.
func Build(mode Mode, records []model.Record, limit int) []model.Row {
	switch mode {
	case ModeAttempts:
		return aggregate.RankByCount(aggregate.CountByIP(records), limit)
	case ModeSuccess:
		return aggregate.RankByCount(aggregate.CountByIP(selectRecords(records, model.Record.Success)), limit)
	case ModeStatus:
		return aggregate.RankByCodeThenCount(aggregate.DistinctPairs(records), limit)
	case ModeFailure:
		return aggregate.RankByCodeThenCount(aggregate.DistinctPairs(selectRecords(records, model.Record.Failure)), limit)
	case ModeBytes:
		return aggregate.RankByCount(aggregate.SumBytesByIP(records), limit)
	}
	return nil
}

func selectRecords(records []model.Record, keep func(model.Record) bool) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
