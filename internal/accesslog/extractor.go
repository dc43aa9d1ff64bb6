// Package accesslog extracts typed fields from whitespace-delimited
// access-log lines. Fields are located by fixed 1-indexed position:
// client IP is field 1, HTTP status is field 9, bytes sent is field 10.
package accesslog

import (
	"strconv"
	"strings"

	"github.com/tinytelemetry/webstat/internal/model"
)

// Fixed field positions (1-indexed) of the supported log layout.
const (
	fieldIP     = 1
	fieldStatus = 9
	fieldBytes  = 10
)

// noDataSentinel marks an absent bytes value in the log.
const noDataSentinel = "-"

// Extract parses one log line into a Record. Lines with fewer fields than
// a requested position yield a partial record; malformed values are treated
// as absent, never as errors.
func Extract(line string) model.Record {
	fields := strings.Fields(line)

	var rec model.Record
	rec.IP = fieldAt(fields, fieldIP)

	if status := fieldAt(fields, fieldStatus); isStatusCode(status) {
		// isStatusCode guarantees three digits, Atoi cannot fail.
		rec.Status, _ = strconv.Atoi(status)
		rec.HasStatus = true
	}

	if raw := fieldAt(fields, fieldBytes); raw != "" && raw != noDataSentinel {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			rec.Bytes = n
			rec.HasBytes = true
		}
	}

	return rec
}

// fieldAt returns the 1-indexed field, or "" when the line is too short.
func fieldAt(fields []string, pos int) string {
	if pos < 1 || pos > len(fields) {
		return ""
	}
	return fields[pos-1]
}

// isStatusCode reports whether s is exactly three ASCII digits.
func isStatusCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
