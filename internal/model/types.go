package model

// Record represents one parsed access-log line used across the system.
// It is the canonical type for extraction, filtering, and aggregation.
// Fields 9 and 10 of the log layout are optional; the Has* flags report
// whether the source line carried a usable value.
type Record struct {
	IP        string
	Status    int  // HTTP status code, valid only when HasStatus
	HasStatus bool // field 9 was exactly three digits
	Bytes     int64
	HasBytes  bool // field 10 was present and not the "-" sentinel
}

// Success reports whether the record carries an informational, success,
// or redirect status (1xx-3xx).
func (r Record) Success() bool {
	return r.HasStatus && r.Status >= 100 && r.Status <= 399
}

// Failure reports whether the record carries a client or server error
// status (4xx-5xx).
func (r Record) Failure() bool {
	return r.HasStatus && r.Status >= 400 && r.Status <= 599
}

// Row is one aggregated report row. Code is zero for IP-only groupings.
// For the bytes mode Count holds the byte sum rather than an occurrence
// count.
type Row struct {
	IP    string `json:"ip"`
	Code  int    `json:"code,omitempty"`
	Count int64  `json:"count"`
}
