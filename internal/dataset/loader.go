// Package dataset loads recorded-call workbooks for batch evaluation.
// Column positions are detected from header names so operations teams can
// hand over exports without reshaping them.
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"autoqa-go/internal/types"
)

// Call is one workbook row: the transcript plus its metadata.
type Call struct {
	Metadata   types.CallMetadata `json:"metadata"`
	Transcript string             `json:"transcript"`
}

// Load reads the first sheet of an xlsx workbook and returns every row that
// carries a transcript. Rows without one are skipped quietly.
func Load(path string) ([]Call, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	cols := detectColumns(rows[0])
	if cols.transcript == -1 {
		return nil, fmt.Errorf("no transcript column found in header")
	}

	var out []Call
	for _, row := range rows[1:] {
		transcript := cell(row, cols.transcript)
		if strings.TrimSpace(transcript) == "" {
			continue
		}
		call := Call{
			Transcript: transcript,
			Metadata: types.CallMetadata{
				CallID:    cell(row, cols.callID),
				AgentID:   cell(row, cols.agentID),
				AgentName: cell(row, cols.agentName),
				City:      cell(row, cols.city),
				Timestamp: cell(row, cols.timestamp),
			},
		}
		if d := cell(row, cols.duration); d != "" {
			call.Metadata.DurationSeconds, _ = strconv.Atoi(strings.TrimSpace(d))
		}
		out = append(out, call)
	}
	return out, nil
}

type columns struct {
	callID     int
	agentID    int
	agentName  int
	city       int
	timestamp  int
	duration   int
	transcript int
}

func detectColumns(header []string) columns {
	c := columns{callID: -1, agentID: -1, agentName: -1, city: -1, timestamp: -1, duration: -1, transcript: -1}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case c.transcript == -1 && (strings.Contains(l, "transcript") || strings.Contains(l, "text")):
			c.transcript = i
		case c.agentName == -1 && strings.Contains(l, "agent") && strings.Contains(l, "name"):
			c.agentName = i
		case c.agentID == -1 && strings.Contains(l, "agent"):
			c.agentID = i
		case c.city == -1 && strings.Contains(l, "city"):
			c.city = i
		case c.timestamp == -1 && (strings.Contains(l, "time") || strings.Contains(l, "date")):
			c.timestamp = i
		case c.duration == -1 && strings.Contains(l, "duration"):
			c.duration = i
		case c.callID == -1 && strings.Contains(l, "call") || strings.Contains(l, "id"):
			if c.callID == -1 {
				c.callID = i
			}
		}
	}
	return c
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
