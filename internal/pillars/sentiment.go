package pillars

import (
	"fmt"
	"strings"

	"autoqa-go/internal/knowledge"
	"autoqa-go/internal/types"
)

// SentimentHandling tracks the customer's sentiment trajectory across the
// call, the agent's empathy signals and how escalation was handled.
type SentimentHandling struct {
	kb *knowledge.Base
}

func NewSentimentHandling(kb *knowledge.Base) *SentimentHandling {
	return &SentimentHandling{kb: kb}
}

type trajectory struct {
	start     string
	end       string
	direction string
	score     float64
}

type empathy struct {
	level   string
	phrases []string
	score   float64
}

type escalation struct {
	detected bool
	signals  []string
	handling string
	score    float64
}

// Evaluate combines trajectory (40%), empathy (35%) and escalation handling
// (25%) into the pillar score.
func (s *SentimentHandling) Evaluate(transcript string) types.PillarResult {
	res := types.PillarResult{
		Pillar:          "Sentiment Handling",
		Weight:          "20%",
		Evidence:        []types.Evidence{},
		Recommendations: []string{},
	}

	traj := s.analyzeTrajectory(splitSegments(transcript))
	emp := s.analyzeEmpathy(transcript)
	esc := s.analyzeEscalation(transcript)

	res.Score = round1(traj.score*0.40 + emp.score*0.35 + esc.score*0.25)

	res.Evidence = append(res.Evidence, types.Evidence{
		Category: "Sentiment Trajectory",
		Status:   traj.direction,
		Detail:   fmt.Sprintf("%s at start, %s at end", traj.start, traj.end),
	})
	examples := emp.phrases
	if len(examples) > 3 {
		examples = examples[:3]
	}
	res.Evidence = append(res.Evidence, types.Evidence{
		Category: "Empathy Signals",
		Status:   emp.level,
		Examples: examples,
	})
	if esc.detected {
		res.Evidence = append(res.Evidence, types.Evidence{
			Category: "Escalation Handling",
			Status:   esc.handling,
			Examples: esc.signals,
		})
	}

	if traj.direction == "declining" {
		res.Recommendations = append(res.Recommendations,
			"Customer sentiment declined during the call. Focus on addressing concerns earlier and checking in with the customer before ending the call.")
	}
	if emp.level == "low" {
		res.Recommendations = append(res.Recommendations,
			"Increase use of empathy phrases like 'I understand' and 'I apologize for the inconvenience' to show customers you care about their experience.")
	}
	if esc.handling == "poorly_handled" {
		res.Recommendations = append(res.Recommendations,
			"When customers show escalation signals (asking for manager, expressing strong dissatisfaction), acknowledge their frustration before attempting to resolve the issue.")
	}

	return res
}

// splitSegments divides the transcript into three equal line-count segments.
// Under three lines, every segment is the whole transcript. Segmentation is
// by raw line, not speaker turn; uneven turn lengths can skew which segment
// counts as start or end.
func splitSegments(transcript string) [3]string {
	lines := strings.Split(transcript, "\n")
	if len(lines) < 3 {
		return [3]string{transcript, transcript, transcript}
	}
	third := len(lines) / 3
	return [3]string{
		strings.Join(lines[:third], "\n"),
		strings.Join(lines[third:2*third], "\n"),
		strings.Join(lines[2*third:], "\n"),
	}
}

func (s *SentimentHandling) segmentSentiment(segment string) string {
	lower := strings.ToLower(segment)
	pos, neg := 0, 0
	for _, kw := range s.kb.Sentiment.Positive {
		if strings.Contains(lower, kw) {
			pos++
		}
	}
	for _, kw := range s.kb.Sentiment.Negative {
		if strings.Contains(lower, kw) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return "positive"
	case neg > pos:
		return "negative"
	default:
		return "neutral"
	}
}

func (s *SentimentHandling) analyzeTrajectory(segments [3]string) trajectory {
	ordinal := map[string]int{"negative": -1, "neutral": 0, "positive": 1}

	t := trajectory{
		start: s.segmentSentiment(segments[0]),
		end:   s.segmentSentiment(segments[2]),
	}
	switch {
	case ordinal[t.end] > ordinal[t.start]:
		t.direction = "improving"
		t.score = 100
	case ordinal[t.end] < ordinal[t.start]:
		t.direction = "declining"
		t.score = 30
	default:
		t.direction = "stable"
		t.score = 70
	}
	return t
}

func (s *SentimentHandling) analyzeEmpathy(transcript string) empathy {
	lower := strings.ToLower(transcript)
	var found []string
	for _, phrase := range s.kb.Sentiment.EmpathyPhrases {
		if strings.Contains(lower, phrase) {
			found = append(found, phrase)
		}
	}

	e := empathy{phrases: found}
	switch {
	case len(found) >= 3:
		e.level, e.score = "high", 100
	case len(found) >= 1:
		e.level, e.score = "moderate", 70
	default:
		e.level, e.score = "low", 30
	}
	return e
}

func (s *SentimentHandling) analyzeEscalation(transcript string) escalation {
	lower := strings.ToLower(transcript)
	var signals []string
	for _, sig := range s.kb.Sentiment.EscalationSignals {
		if strings.Contains(lower, sig) {
			signals = append(signals, sig)
		}
	}

	esc := escalation{detected: len(signals) > 0, signals: signals}
	if !esc.detected {
		esc.handling = "no_escalation"
		esc.score = 80
		return esc
	}

	// De-escalation quality is judged by empathy usage across the whole call.
	deEscalation := 0
	for _, phrase := range s.kb.Sentiment.EmpathyPhrases {
		if strings.Contains(lower, phrase) {
			deEscalation++
		}
	}
	switch {
	case deEscalation >= 2:
		esc.handling, esc.score = "well_handled", 90
	case deEscalation >= 1:
		esc.handling, esc.score = "partially_handled", 60
	default:
		esc.handling, esc.score = "poorly_handled", 30
	}
	return esc
}
