package pillars

import (
	"strings"
	"testing"

	"autoqa-go/internal/knowledge"
)

func TestSentimentImprovingTrajectory(t *testing.T) {
	s := NewSentimentHandling(knowledge.Default())

	transcript := strings.Join([]string{
		"Customer: I am frustrated, this is terrible.",
		"Customer: Nothing works.",
		"Agent: I understand, let me help you.",
		"Agent: I apologize for the trouble.",
		"Customer: Thank you, that is great.",
		"Customer: Problem solved, very helpful.",
	}, "\n")

	res := s.Evaluate(transcript)
	// improving (100)*0.40 + high empathy (100)*0.35 + no escalation (80)*0.25
	if res.Score != 95 {
		t.Fatalf("expected 95, got %v", res.Score)
	}
	if len(res.Recommendations) != 0 {
		t.Fatalf("well-handled call should not recommend, got %v", res.Recommendations)
	}
	if res.Evidence[0].Status != "improving" {
		t.Fatalf("expected improving trajectory, got %q", res.Evidence[0].Status)
	}
}

func TestSentimentDecliningWithPoorEscalation(t *testing.T) {
	s := NewSentimentHandling(knowledge.Default())

	transcript := strings.Join([]string{
		"Customer: Hello, I have a question, thanks.",
		"Customer: It is about my plan.",
		"Agent: What do you want?",
		"Agent: That is how it is.",
		"Customer: This is ridiculous, I want your manager.",
		"Customer: I am fed up and angry.",
	}, "\n")

	res := s.Evaluate(transcript)
	// declining (30)*0.40 + low empathy (30)*0.35 + poorly handled (30)*0.25
	if res.Score != 30 {
		t.Fatalf("expected 30, got %v", res.Score)
	}
	if len(res.Recommendations) != 3 {
		t.Fatalf("expected all three coaching recommendations, got %v", res.Recommendations)
	}
	if res.Evidence[0].Status != "declining" {
		t.Fatalf("expected declining trajectory, got %q", res.Evidence[0].Status)
	}
}

func TestSentimentShortTranscriptIsStable(t *testing.T) {
	s := NewSentimentHandling(knowledge.Default())

	// Under three lines every segment is the whole transcript, so the
	// trajectory is always stable.
	res := s.Evaluate("Customer: thank you")
	// stable (70)*0.40 + low empathy (30)*0.35 + no escalation (80)*0.25
	if res.Score != 58.5 {
		t.Fatalf("expected 58.5, got %v", res.Score)
	}
	if res.Evidence[0].Status != "stable" {
		t.Fatalf("expected stable trajectory, got %q", res.Evidence[0].Status)
	}
}

func TestSplitSegments(t *testing.T) {
	segs := splitSegments("a\nb\nc\nd\ne\nf")
	if segs[0] != "a\nb" || segs[1] != "c\nd" || segs[2] != "e\nf" {
		t.Fatalf("unexpected segments: %q", segs)
	}

	short := splitSegments("a\nb")
	if short[0] != "a\nb" || short[2] != "a\nb" {
		t.Fatalf("short transcripts must fill every segment, got %q", short)
	}
}

func TestSentimentEscalationWellHandled(t *testing.T) {
	s := NewSentimentHandling(knowledge.Default())

	transcript := strings.Join([]string{
		"Customer: I want to talk to your manager right now.",
		"Agent: I understand, and I apologize for the experience.",
		"Customer: Fine, thank you for sorting it out.",
	}, "\n")

	res := s.Evaluate(transcript)
	var escalation *string
	for i := range res.Evidence {
		if res.Evidence[i].Category == "Escalation Handling" {
			escalation = &res.Evidence[i].Status
		}
	}
	if escalation == nil {
		t.Fatal("expected escalation evidence")
	}
	if *escalation != "well_handled" {
		t.Fatalf("two empathy phrases should de-escalate, got %q", *escalation)
	}
}
