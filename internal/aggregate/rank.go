package aggregate

import (
	"sort"

	"github.com/tinytelemetry/webstat/internal/model"
)

// Unbounded is the limit sentinel meaning "return all rows".
const Unbounded = -1

// RankByCount orders rows by count (or byte sum) descending and truncates
// to limit. Ties land in any order; the comparator promises nothing beyond
// descending counts.
func RankByCount(rows []model.Row, limit int) []model.Row {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return truncate(rows, limit)
}

// RankByCodeThenCount orders rows by status code ascending, then count
// descending within each code group, then IP ascending so the order is
// total. Group-to-group order follows the code, not the overall count.
func RankByCodeThenCount(rows []model.Row, limit int) []model.Row {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.IP < b.IP
	})
	return truncate(rows, limit)
}

// truncate applies the limit sentinel semantics: a negative limit returns
// all rows, 0 returns none, k returns the first k of the final order.
func truncate(rows []model.Row, limit int) []model.Row {
	if limit < 0 || limit >= len(rows) {
		return rows
	}
	return rows[:limit]
}
