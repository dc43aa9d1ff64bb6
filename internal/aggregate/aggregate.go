// Package aggregate groups access-log records and ranks the resulting
// counts. Counting and ranking are separate passes: the status-code modes
// first fold duplicate (status, IP) pairs into distinct rows carrying the
// original line count, then rank all distinct rows together.
package aggregate

import "github.com/tinytelemetry/webstat/internal/model"

type pairKey struct {
	code int
	ip   string
}

// CountByIP counts occurrences per IP. Records without an IP are skipped.
func CountByIP(records []model.Record) []model.Row {
	counts := make(map[string]int64)
	for _, r := range records {
		if r.IP == "" {
			continue
		}
		counts[r.IP]++
	}
	return ipRows(counts)
}

// DistinctPairs folds the (status, IP) stream into distinct pairs, each
// carrying the number of original lines that collapsed into it. Records
// without an IP or status are skipped. No zero-count rows are synthesized.
func DistinctPairs(records []model.Record) []model.Row {
	counts := make(map[pairKey]int64)
	for _, r := range records {
		if r.IP == "" || !r.HasStatus {
			continue
		}
		counts[pairKey{code: r.Status, ip: r.IP}]++
	}

	rows := make([]model.Row, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, model.Row{IP: k.ip, Code: k.code, Count: n})
	}
	return rows
}

// SumBytesByIP sums the bytes field per IP, skipping records whose bytes
// value is absent. An IP whose only records carry no bytes yields no row.
func SumBytesByIP(records []model.Record) []model.Row {
	sums := make(map[string]int64)
	for _, r := range records {
		if r.IP == "" || !r.HasBytes {
			continue
		}
		sums[r.IP] += r.Bytes
	}
	return ipRows(sums)
}

func ipRows(counts map[string]int64) []model.Row {
	rows := make([]model.Row, 0, len(counts))
	for ip, n := range counts {
		rows = append(rows, model.Row{IP: ip, Count: n})
	}
	return rows
}
