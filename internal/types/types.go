package types

import "time"

// Pillar keys used across evaluation records, weights and analytics.
const (
	PillarScriptAdherence       = "script_adherence"
	PillarResolutionCorrectness = "resolution_correctness"
	PillarSentimentHandling     = "sentiment_handling"
	PillarCommunicationQuality  = "communication_quality"
	PillarRiskCompliance        = "risk_compliance"
)

// PillarOrder is the canonical iteration order. Maps are never ranged over
// directly when output must be deterministic.
var PillarOrder = []string{
	PillarScriptAdherence,
	PillarResolutionCorrectness,
	PillarSentimentHandling,
	PillarCommunicationQuality,
	PillarRiskCompliance,
}

// CallMetadata is passed in by the caller and never derived here.
type CallMetadata struct {
	CallID          string `json:"call_id"`
	AgentID         string `json:"agent_id"`
	AgentName       string `json:"agent_name"`
	City            string `json:"city"`
	Timestamp       string `json:"timestamp"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

// Evidence is one observation supporting a pillar score.
type Evidence struct {
	Category string   `json:"category"`
	Status   string   `json:"status,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Examples []string `json:"examples,omitempty"`
}

// PillarResult is the typed output of a single pillar evaluation.
// SeverityLevel and RequiresReview are set by the risk pillar only.
type PillarResult struct {
	Pillar          string     `json:"pillar"`
	Weight          string     `json:"weight"`
	Score           float64    `json:"score"`
	Evidence        []Evidence `json:"evidence"`
	DetectedIssues  []string   `json:"detected_issues,omitempty"`
	Recommendations []string   `json:"recommendations"`
	SeverityLevel   string     `json:"severity_level,omitempty"`
	RequiresReview  bool       `json:"requires_review,omitempty"`
}

// SupervisorAlert flags a risk category that needs human escalation.
type SupervisorAlert struct {
	Category        string   `json:"category"`
	Severity        string   `json:"severity"`
	KeywordsMatched []string `json:"keywords_matched"`
	ActionRequired  string   `json:"action_required"`
}

// PillarScore is one pillar's contribution to the overall score.
type PillarScore struct {
	Score                float64 `json:"score"`
	Weight               float64 `json:"weight"`
	WeightedContribution float64 `json:"weighted_contribution"`
}

// Overall holds the weighted verdict for a call.
type Overall struct {
	Score                 float64 `json:"score"`
	Grade                 string  `json:"grade"`
	NeedsSupervisorReview bool    `json:"needs_supervisor_review"`
}

// Breakdown carries the full per-pillar results.
type Breakdown struct {
	ScriptAdherence       PillarResult `json:"script_adherence"`
	ResolutionCorrectness PillarResult `json:"resolution_correctness"`
	SentimentHandling     PillarResult `json:"sentiment_handling"`
	CommunicationQuality  PillarResult `json:"communication_quality"`
	RiskCompliance        PillarResult `json:"risk_compliance"`
}

// CoachingInsights are the derived strengths/improvements/recommendations.
type CoachingInsights struct {
	TopRecommendations  []string `json:"top_recommendations"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}

// EvaluationRecord is the complete, immutable output of evaluating one
// transcript. It is created exactly once and treated as append-only input
// by the analytics engine.
type EvaluationRecord struct {
	EvaluationID      string                 `json:"evaluation_id"`
	EvaluatedAt       time.Time              `json:"evaluated_at"`
	Metadata          CallMetadata           `json:"metadata"`
	Overall           Overall                `json:"overall"`
	PillarScores      map[string]PillarScore `json:"pillar_scores"`
	DetailedBreakdown Breakdown              `json:"detailed_breakdown"`
	CoachingInsights  CoachingInsights       `json:"coaching_insights"`
	SupervisorAlerts  []SupervisorAlert      `json:"supervisor_alerts"`
}
