package evaluator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autoqa-go/internal/insight"
	"autoqa-go/internal/knowledge"
	"autoqa-go/internal/types"
)

// cleanCall follows the full script with no detected issue and no risk
// flags. Its pillar scores work out to 100 / 70 / 58.5 / 75 / 100, which the
// pillar weights combine into 80.2.
var cleanCall = strings.Join([]string{
	"Agent: Good morning, thank you for calling Battery Smart, how may I help you?",
	"Customer: Hello, I would like to know the monthly pricing for the swap plan.",
	"Agent: Certainly, may I have your registered phone number please?",
	"Customer: It is 9876543210.",
	"Agent: Let me check the plans for you. The monthly plan is 999 rupees.",
	"Customer: Thank you, that is helpful. Nothing else, goodbye.",
}, "\n")

const legalThreatCall = "Customer: This is useless, I will sue you and call my lawyer. Agent: Calm down."

func TestEvaluateCallCleanTranscript(t *testing.T) {
	e := New(knowledge.Default())

	rec := e.EvaluateCall(context.Background(), cleanCall, &types.CallMetadata{
		CallID: "CALL-1", AgentID: "AGT-1", AgentName: "Priya Sharma", City: "Delhi",
	})

	if rec.Overall.Score != 80.2 {
		t.Fatalf("expected overall 80.2, got %v", rec.Overall.Score)
	}
	if rec.Overall.Grade != "B - Good" {
		t.Fatalf("expected B - Good, got %q", rec.Overall.Grade)
	}
	if rec.Overall.NeedsSupervisorReview {
		t.Fatal("clean call must not need review")
	}
	if len(rec.SupervisorAlerts) != 0 {
		t.Fatalf("expected no alerts, got %v", rec.SupervisorAlerts)
	}
	if !strings.HasPrefix(rec.EvaluationID, "EVAL-") {
		t.Fatalf("unexpected evaluation id %q", rec.EvaluationID)
	}
	if rec.EvaluatedAt.IsZero() {
		t.Fatal("evaluated_at must be set")
	}
}

func TestEvaluateCallWeightedSum(t *testing.T) {
	e := New(knowledge.Default())
	rec := e.EvaluateCall(context.Background(), cleanCall, nil)

	sum := 0.0
	for _, name := range types.PillarOrder {
		ps, ok := rec.PillarScores[name]
		if !ok {
			t.Fatalf("missing pillar score %q", name)
		}
		if ps.Score < 0 || ps.Score > 100 {
			t.Fatalf("pillar %q out of range: %v", name, ps.Score)
		}
		sum += ps.Score * ps.Weight
	}
	if round1(sum) != rec.Overall.Score {
		t.Fatalf("overall %v does not match weighted sum %v", rec.Overall.Score, round1(sum))
	}
}

func TestEvaluateCallDeterministic(t *testing.T) {
	e := New(knowledge.Default())

	a := e.EvaluateCall(context.Background(), cleanCall, nil)
	b := e.EvaluateCall(context.Background(), cleanCall, nil)

	if a.Overall != b.Overall {
		t.Fatalf("same transcript must yield the same verdict: %+v vs %+v", a.Overall, b.Overall)
	}
	for _, name := range types.PillarOrder {
		if a.PillarScores[name] != b.PillarScores[name] {
			t.Fatalf("pillar %q not deterministic", name)
		}
	}
	if a.EvaluationID == b.EvaluationID {
		t.Fatal("evaluation ids must be unique per run")
	}
}

func TestEvaluateCallLegalThreatNeedsReview(t *testing.T) {
	e := New(knowledge.Default())
	rec := e.EvaluateCall(context.Background(), legalThreatCall, nil)

	if !rec.Overall.NeedsSupervisorReview {
		t.Fatal("legal threat must flag supervisor review")
	}
	if len(rec.SupervisorAlerts) != 1 || rec.SupervisorAlerts[0].Category != "Legal Threats" {
		t.Fatalf("expected a legal threat alert, got %v", rec.SupervisorAlerts)
	}
	if rec.DetailedBreakdown.RiskCompliance.SeverityLevel != knowledge.SeverityCritical {
		t.Fatalf("expected critical risk severity, got %q",
			rec.DetailedBreakdown.RiskCompliance.SeverityLevel)
	}
}

func TestEvaluateCallNilMetadataDefaults(t *testing.T) {
	e := New(knowledge.Default())
	rec := e.EvaluateCall(context.Background(), cleanCall, nil)

	if rec.Metadata.AgentName != "Unknown Agent" || rec.Metadata.CallID != "UNKNOWN" {
		t.Fatalf("expected placeholder metadata, got %+v", rec.Metadata)
	}
}

func TestProviderInsightsMergedIntoCoaching(t *testing.T) {
	mock := &insight.Mock{Result: insight.Insights{
		Strengths:       []string{"Confirmed the resolution explicitly"},
		Improvements:    []string{"Verification came late in the call"},
		Recommendations: []string{"Open with the account lookup"},
		SupervisorAlerts: []types.SupervisorAlert{
			{Category: "Scam Indicators", Severity: "high"},
		},
	}}
	e := New(knowledge.Default(), WithProvider(mock))

	rec := e.EvaluateCall(context.Background(), cleanCall, nil)

	if rec.CoachingInsights.TopRecommendations[0] != "Open with the account lookup" {
		t.Fatalf("provider recommendations must come first, got %v",
			rec.CoachingInsights.TopRecommendations)
	}
	if len(rec.CoachingInsights.Strengths) != 1 ||
		rec.CoachingInsights.Strengths[0] != "Confirmed the resolution explicitly" {
		t.Fatalf("provider strengths must replace rule-based ones, got %v",
			rec.CoachingInsights.Strengths)
	}
	if len(rec.SupervisorAlerts) != 1 || rec.SupervisorAlerts[0].Category != "Scam Indicators" {
		t.Fatalf("provider alerts must be merged, got %v", rec.SupervisorAlerts)
	}
	if !rec.Overall.NeedsSupervisorReview {
		t.Fatal("a merged alert must flag review")
	}
}

func TestProviderAlertsDedupedByCategory(t *testing.T) {
	mock := &insight.Mock{Result: insight.Insights{
		SupervisorAlerts: []types.SupervisorAlert{
			{Category: "Legal Threats", Severity: "high"},
			{Category: "Scam Indicators", Severity: "high"},
		},
	}}
	e := New(knowledge.Default(), WithProvider(mock))

	rec := e.EvaluateCall(context.Background(), legalThreatCall, nil)

	if len(rec.SupervisorAlerts) != 2 {
		t.Fatalf("duplicate category must be dropped, got %v", rec.SupervisorAlerts)
	}
	// The rule-based legal alert wins over the provider duplicate.
	if rec.SupervisorAlerts[0].Severity != knowledge.SeverityCritical {
		t.Fatalf("expected the rule-based alert kept, got %+v", rec.SupervisorAlerts[0])
	}
}

func TestProviderFailureFallsBackToRules(t *testing.T) {
	e := New(knowledge.Default())
	withBroken := New(knowledge.Default(),
		WithProvider(&insight.Mock{Err: errors.New("gateway down")}))

	want := e.EvaluateCall(context.Background(), cleanCall, nil)
	got := withBroken.EvaluateCall(context.Background(), cleanCall, nil)

	if got.Overall != want.Overall {
		t.Fatalf("provider failure must not change the verdict: %+v vs %+v",
			got.Overall, want.Overall)
	}
	if len(got.CoachingInsights.TopRecommendations) != len(want.CoachingInsights.TopRecommendations) {
		t.Fatalf("expected rule-based coaching on provider failure, got %v",
			got.CoachingInsights.TopRecommendations)
	}
}

func TestRecommendationsCappedAtFive(t *testing.T) {
	mock := &insight.Mock{Result: insight.Insights{
		Recommendations: []string{"one", "two", "three", "four", "five", "six"},
	}}
	e := New(knowledge.Default(), WithProvider(mock))

	rec := e.EvaluateCall(context.Background(), cleanCall, nil)
	if len(rec.CoachingInsights.TopRecommendations) != 5 {
		t.Fatalf("expected at most five recommendations, got %d",
			len(rec.CoachingInsights.TopRecommendations))
	}
}

func TestGradeBoundaries(t *testing.T) {
	e := New(knowledge.Default())
	cases := []struct {
		score float64
		want  string
	}{
		{95, "A - Excellent"},
		{90, "A - Excellent"},
		{89.9, "B - Good"},
		{75, "B - Good"},
		{74.9, "C - Needs Improvement"},
		{60, "C - Needs Improvement"},
		{59.9, "D - Poor"},
		{40, "D - Poor"},
		{39.9, "F - Critical"},
		{0, "F - Critical"},
	}
	for _, tc := range cases {
		if got := e.grade(tc.score); got != tc.want {
			t.Errorf("grade(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
