package report

import (
	"strings"
	"testing"

	"github.com/tinytelemetry/webstat/internal/accesslog"
	"github.com/tinytelemetry/webstat/internal/model"
)

// Worked example input: three 200s from one client, one 404 from another.
func exampleRecords() []model.Record {
	lines := []string{
		"10.0.0.1 - - - - - - - 200 512",
		"10.0.0.1 - - - - - - - 200 512",
		"10.0.0.1 - - - - - - - 200 512",
		"10.0.0.2 - - - - - - - 404 100",
	}
	records := make([]model.Record, 0, len(lines))
	for _, l := range lines {
		records = append(records, accesslog.Extract(l))
	}
	return records
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"attempts", "success", "status", "failure", "bytes"} {
		if _, err := ParseMode(name); err != nil {
			t.Errorf("ParseMode(%q) error: %v", name, err)
		}
	}
	if _, err := ParseMode("topips"); err == nil {
		t.Error("ParseMode should reject unknown modes")
	}
}

func TestBuild_Attempts(t *testing.T) {
	t.Parallel()
	rows := Build(ModeAttempts, exampleRecords(), -1)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].IP != "10.0.0.1" || rows[0].Count != 3 {
		t.Errorf("rows[0] = %+v, want 10.0.0.1 / 3", rows[0])
	}
	if rows[1].IP != "10.0.0.2" || rows[1].Count != 1 {
		t.Errorf("rows[1] = %+v, want 10.0.0.2 / 1", rows[1])
	}
}

func TestBuild_SuccessExcludesFailures(t *testing.T) {
	t.Parallel()
	rows := Build(ModeSuccess, exampleRecords(), -1)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].IP != "10.0.0.1" || rows[0].Count != 3 {
		t.Errorf("rows[0] = %+v, want 10.0.0.1 / 3", rows[0])
	}
}

func TestBuild_FailureSingleRow(t *testing.T) {
	t.Parallel()
	rows := Build(ModeFailure, exampleRecords(), -1)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (200s excluded entirely)", len(rows))
	}
	want := model.Row{IP: "10.0.0.2", Code: 404, Count: 1}
	if rows[0] != want {
		t.Errorf("rows[0] = %+v, want %+v", rows[0], want)
	}
}

func TestBuild_StatusDistinctPairs(t *testing.T) {
	t.Parallel()
	rows := Build(ModeStatus, exampleRecords(), -1)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Code ascending: 200 group before 404 group.
	if rows[0].Code != 200 || rows[0].IP != "10.0.0.1" || rows[0].Count != 3 {
		t.Errorf("rows[0] = %+v, want 200/10.0.0.1/3", rows[0])
	}
	if rows[1].Code != 404 || rows[1].IP != "10.0.0.2" || rows[1].Count != 1 {
		t.Errorf("rows[1] = %+v, want 404/10.0.0.2/1", rows[1])
	}
}

func TestBuild_Bytes(t *testing.T) {
	t.Parallel()
	rows := Build(ModeBytes, exampleRecords(), -1)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].IP != "10.0.0.1" || rows[0].Count != 1536 {
		t.Errorf("rows[0] = %+v, want 10.0.0.1 / 1536", rows[0])
	}
	if rows[1].IP != "10.0.0.2" || rows[1].Count != 100 {
		t.Errorf("rows[1] = %+v, want 10.0.0.2 / 100", rows[1])
	}
}

func TestBuild_LimitTruncates(t *testing.T) {
	t.Parallel()
	if rows := Build(ModeAttempts, exampleRecords(), 0); len(rows) != 0 {
		t.Errorf("limit 0: got %d rows, want 0", len(rows))
	}
	if rows := Build(ModeAttempts, exampleRecords(), 1); len(rows) != 1 || rows[0].IP != "10.0.0.1" {
		t.Errorf("limit 1: got %+v, want just the top row", rows)
	}
}

func TestWrite_AttemptsLayout(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	rows := Build(ModeAttempts, exampleRecords(), -1)
	if err := Write(&sb, ModeAttempts, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "             IP Attempts" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "       10.0.0.1 3       " {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "       10.0.0.2 1       " {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestWrite_PairLayout(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	rows := Build(ModeFailure, exampleRecords(), -1)
	if err := Write(&sb, ModeFailure, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}
	if lines[0] != "Code              IP Count" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != " 404        10.0.0.2 1    " {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWrite_BytesLayout(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	rows := Build(ModeBytes, exampleRecords(), -1)
	if err := Write(&sb, ModeBytes, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if lines[0] != "             IP Bytes     " {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "       10.0.0.1 1536      " {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "       10.0.0.2 100       " {
		t.Errorf("row 2 = %q", lines[2])
	}
}
