package knowledge

import (
	"math"
	"testing"

	"autoqa-go/internal/types"
)

func TestWeightsSumToOne(t *testing.T) {
	kb := Default()
	sum := 0.0
	for _, name := range types.PillarOrder {
		w, ok := kb.Weights[name]
		if !ok {
			t.Fatalf("missing weight for %q", name)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("weights sum to %v, want 1.0", sum)
	}
}

func TestDefaultTablesPopulated(t *testing.T) {
	kb := Default()
	if len(kb.ScriptElements) != 4 {
		t.Fatalf("expected 4 script elements, got %d", len(kb.ScriptElements))
	}
	points := 0
	for _, e := range kb.ScriptElements {
		points += e.Points
	}
	if points != 100 {
		t.Fatalf("script element points sum to %d, want 100", points)
	}
	if len(kb.SOPs) != 8 {
		t.Fatalf("expected 8 SOPs, got %d", len(kb.SOPs))
	}
	if len(kb.RiskFlags) != 6 {
		t.Fatalf("expected 6 risk flags, got %d", len(kb.RiskFlags))
	}
	if len(kb.ComplaintCategories) != 10 {
		t.Fatalf("expected 10 complaint categories, got %d", len(kb.ComplaintCategories))
	}
	if kb.SupervisorAlertThreshold != 50 {
		t.Fatalf("unexpected alert threshold %v", kb.SupervisorAlertThreshold)
	}
}

func TestCategoryName(t *testing.T) {
	kb := Default()
	cases := []struct {
		issue string
		want  string
	}{
		{"billing_issues", "Billing & Payment Issues"},
		{"app_issues", "App & Technical Issues"},
		{"locked_battery", "Locked Battery"},
		{"refund_request", "Refund Request"},
	}
	for _, tc := range cases {
		if got := kb.CategoryName(tc.issue); got != tc.want {
			t.Errorf("CategoryName(%q) = %q, want %q", tc.issue, got, tc.want)
		}
	}
}
