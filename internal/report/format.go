package report

import (
	"fmt"
	"io"

	"github.com/tinytelemetry/webstat/internal/model"
)

// Column layouts are an output contract: IP and code columns are
// left-padded to their width, the trailing count column is right-padded.
const (
	ipRowFormat    = "%15s %-8d\n" // attempts, success
	ipHeadFormat   = "%15s %-8s\n"
	pairRowFormat  = "%4d %15s %-5d\n" // status, failure
	pairHeadFormat = "%4s %15s %-5s\n"
	byteRowFormat  = "%15s %-10d\n" // bytes
	byteHeadFormat = "%15s %-10s\n"
)

// Write renders the report for mode to w: a header row, then one row per
// result. Rendering is a pure projection of the rows.
func Write(w io.Writer, mode Mode, rows []model.Row) error {
	switch mode {
	case ModeStatus, ModeFailure:
		if _, err := fmt.Fprintf(w, pairHeadFormat, "Code", "IP", "Count"); err != nil {
			return err
		}
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, pairRowFormat, r.Code, r.IP, r.Count); err != nil {
				return err
			}
		}
	case ModeBytes:
		if _, err := fmt.Fprintf(w, byteHeadFormat, "IP", "Bytes"); err != nil {
			return err
		}
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, byteRowFormat, r.IP, r.Count); err != nil {
				return err
			}
		}
	default:
		if _, err := fmt.Fprintf(w, ipHeadFormat, "IP", "Attempts"); err != nil {
			return err
		}
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, ipRowFormat, r.IP, r.Count); err != nil {
				return err
			}
		}
	}
	return nil
}
