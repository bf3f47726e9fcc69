package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "calls.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"call_id", "agent_id", "agent_name", "city", "call_time", "duration_seconds", "transcript"},
		{"CALL-1", "AGT-1", "Priya Sharma", "Delhi", "2025-01-15", 240, "Agent: Good morning."},
		{"CALL-2", "AGT-2", "Rahul Verma", "Gurgaon", "2025-01-15", 180, ""},
		{"CALL-3", "AGT-1", "Priya Sharma", "Delhi", "2025-01-16", 300, "Agent: Hello."},
	})

	calls, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// The row without a transcript is skipped.
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}

	first := calls[0]
	if first.Metadata.CallID != "CALL-1" || first.Metadata.AgentID != "AGT-1" {
		t.Fatalf("unexpected ids: %+v", first.Metadata)
	}
	if first.Metadata.AgentName != "Priya Sharma" || first.Metadata.City != "Delhi" {
		t.Fatalf("unexpected metadata: %+v", first.Metadata)
	}
	if first.Metadata.DurationSeconds != 240 {
		t.Fatalf("expected duration 240, got %d", first.Metadata.DurationSeconds)
	}
	if first.Transcript != "Agent: Good morning." {
		t.Fatalf("unexpected transcript: %q", first.Transcript)
	}
}

func TestLoadMissingTranscriptColumn(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"call_id", "agent_name"},
		{"CALL-1", "Priya Sharma"},
	})
	if _, err := Load(path); err == nil {
		t.Fatal("expected error without a transcript column")
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"call_id", "transcript"},
	})
	if _, err := Load(path); err == nil {
		t.Fatal("expected error with no data rows")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
