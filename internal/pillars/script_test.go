package pillars

import (
	"strings"
	"testing"

	"autoqa-go/internal/knowledge"
)

func TestScriptAdherenceFullScript(t *testing.T) {
	s := NewScriptAdherence(knowledge.Default())

	transcript := strings.Join([]string{
		"Agent: Good morning, how may I help you?",
		"Agent: May I have your phone number please?",
		"Agent: Let me check that for you.",
		"Agent: Is there anything else I can do?",
	}, "\n")

	res := s.Evaluate(transcript)
	if res.Score != 100 {
		t.Fatalf("expected 100 with all elements present, got %v", res.Score)
	}
	if len(res.Recommendations) != 0 {
		t.Fatalf("expected no recommendations, got %v", res.Recommendations)
	}
	if len(res.Evidence) != 4 {
		t.Fatalf("expected evidence per script element, got %d entries", len(res.Evidence))
	}
	for _, ev := range res.Evidence {
		if ev.Status != "present" {
			t.Errorf("element %q: expected present, got %q", ev.Category, ev.Status)
		}
	}
}

func TestScriptAdherenceEmptyTranscript(t *testing.T) {
	s := NewScriptAdherence(knowledge.Default())

	res := s.Evaluate("")
	if res.Score != 0 {
		t.Fatalf("expected 0 for empty transcript, got %v", res.Score)
	}
	if len(res.Recommendations) != 4 {
		t.Fatalf("expected one recommendation per missing element, got %v", res.Recommendations)
	}
	if res.Recommendations[0] != "Include opening greeting in your calls" {
		t.Fatalf("unexpected recommendation text: %q", res.Recommendations[0])
	}
}

func TestScriptAdherencePartialCredit(t *testing.T) {
	s := NewScriptAdherence(knowledge.Default())

	// Greeting only: 25 of 100 points.
	res := s.Evaluate("Agent: Good morning!")
	if res.Score != 25 {
		t.Fatalf("expected 25 with greeting only, got %v", res.Score)
	}
}

func TestScriptAdherenceCaseInsensitive(t *testing.T) {
	s := NewScriptAdherence(knowledge.Default())

	upper := s.Evaluate("AGENT: GOOD MORNING!")
	lower := s.Evaluate("agent: good morning!")
	if upper.Score != lower.Score {
		t.Fatalf("matching must be case-insensitive: %v vs %v", upper.Score, lower.Score)
	}
}
