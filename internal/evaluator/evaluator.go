// Package evaluator orchestrates the five pillar evaluations into a single
// weighted verdict and immutable evaluation record.
package evaluator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"autoqa-go/internal/insight"
	"autoqa-go/internal/knowledge"
	"autoqa-go/internal/logger"
	"autoqa-go/internal/pillars"
	"autoqa-go/internal/types"
)

const defaultProviderTimeout = 15 * time.Second

// Evaluator runs all five pillars against a transcript and aggregates them.
// It holds no per-call state and is safe for concurrent use.
type Evaluator struct {
	kb *knowledge.Base

	script        *pillars.ScriptAdherence
	resolution    *pillars.ResolutionCorrectness
	sentiment     *pillars.SentimentHandling
	communication *pillars.CommunicationQuality
	risk          *pillars.RiskCompliance

	provider        insight.Provider
	providerTimeout time.Duration

	log *logger.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithProvider wires an optional insight provider. Provider failures never
// fail the evaluation; the rule-based coaching path is used instead.
func WithProvider(p insight.Provider) Option {
	return func(e *Evaluator) { e.provider = p }
}

// WithProviderTimeout bounds the single provider call.
func WithProviderTimeout(d time.Duration) Option {
	return func(e *Evaluator) { e.providerTimeout = d }
}

func New(kb *knowledge.Base, opts ...Option) *Evaluator {
	e := &Evaluator{
		kb:              kb,
		script:          pillars.NewScriptAdherence(kb),
		resolution:      pillars.NewResolutionCorrectness(kb),
		sentiment:       pillars.NewSentimentHandling(kb),
		communication:   pillars.NewCommunicationQuality(kb),
		risk:            pillars.NewRiskCompliance(kb),
		providerTimeout: defaultProviderTimeout,
		log:             logger.New().WithComponent("evaluator"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvaluateCall evaluates a complete transcript and returns the evaluation
// record. The record is created exactly once and never mutated afterwards.
func (e *Evaluator) EvaluateCall(ctx context.Context, transcript string, meta *types.CallMetadata) types.EvaluationRecord {
	metadata := normalizeMetadata(meta)

	var (
		scriptRes, resolutionRes, sentimentRes, communicationRes, riskRes types.PillarResult

		alerts []types.SupervisorAlert
	)

	// Pillars are pure and independent; the weighted sum is order
	// independent, so parallel execution cannot change the verdict.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { scriptRes = e.script.Evaluate(transcript); return nil })
	g.Go(func() error { resolutionRes = e.resolution.Evaluate(transcript); return nil })
	g.Go(func() error { sentimentRes = e.sentiment.Evaluate(transcript); return nil })
	g.Go(func() error { communicationRes = e.communication.Evaluate(transcript); return nil })
	g.Go(func() error { riskRes, alerts = e.risk.Evaluate(transcript); return nil })
	_ = g.Wait()

	scores := map[string]float64{
		types.PillarScriptAdherence:       scriptRes.Score,
		types.PillarResolutionCorrectness: resolutionRes.Score,
		types.PillarSentimentHandling:     sentimentRes.Score,
		types.PillarCommunicationQuality:  communicationRes.Score,
		types.PillarRiskCompliance:        riskRes.Score,
	}

	weighted := 0.0
	for _, name := range types.PillarOrder {
		weighted += scores[name] * e.kb.Weights[name]
	}
	overallScore := round1(weighted)

	breakdown := types.Breakdown{
		ScriptAdherence:       scriptRes,
		ResolutionCorrectness: resolutionRes,
		SentimentHandling:     sentimentRes,
		CommunicationQuality:  communicationRes,
		RiskCompliance:        riskRes,
	}
	allResults := []types.PillarResult{scriptRes, resolutionRes, sentimentRes, communicationRes, riskRes}

	coaching, alerts := e.buildCoaching(ctx, transcript, metadata.AgentName, allResults, alerts)

	needsReview := riskRes.RequiresReview ||
		overallScore < e.kb.SupervisorAlertThreshold ||
		len(alerts) > 0

	pillarScores := make(map[string]types.PillarScore, len(types.PillarOrder))
	for _, name := range types.PillarOrder {
		w := e.kb.Weights[name]
		pillarScores[name] = types.PillarScore{
			Score:                scores[name],
			Weight:               w,
			WeightedContribution: round1(scores[name] * w),
		}
	}

	return types.EvaluationRecord{
		EvaluationID: "EVAL-" + uuid.New().String(),
		EvaluatedAt:  time.Now().UTC(),
		Metadata:     metadata,
		Overall: types.Overall{
			Score:                 overallScore,
			Grade:                 e.grade(overallScore),
			NeedsSupervisorReview: needsReview,
		},
		PillarScores:      pillarScores,
		DetailedBreakdown: breakdown,
		CoachingInsights:  coaching,
		SupervisorAlerts:  alerts,
	}
}

// buildCoaching assembles the rule-based coaching output and, when a
// provider is configured and succeeds, merges its insights in. Alerts from
// the provider are de-duplicated by category against the rule-based ones.
func (e *Evaluator) buildCoaching(ctx context.Context, transcript, agentName string, results []types.PillarResult, alerts []types.SupervisorAlert) (types.CoachingInsights, []types.SupervisorAlert) {
	var recommendations []string
	for _, r := range results {
		recommendations = append(recommendations, r.Recommendations...)
	}
	strengths := identifyStrengths(results)
	improvements := identifyImprovements(results)

	if e.provider != nil {
		ctx, cancel := context.WithTimeout(ctx, e.providerTimeout)
		ai, err := e.provider.CoachingInsights(ctx, transcript, agentName)
		cancel()
		if err != nil {
			// Degrade silently to the rule-based path.
			e.log.WithError(err).Warn("insight provider unavailable, using rule-based coaching")
		} else {
			recommendations = append(ai.Recommendations, recommendations...)
			if len(ai.Strengths) > 0 {
				strengths = ai.Strengths
			}
			if len(ai.Improvements) > 0 {
				improvements = ai.Improvements
			}
			alerts = mergeAlerts(alerts, ai.SupervisorAlerts)
		}
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return types.CoachingInsights{
		TopRecommendations:  recommendations,
		Strengths:           strengths,
		AreasForImprovement: improvements,
	}, alerts
}

func (e *Evaluator) grade(score float64) string {
	t := e.kb.Thresholds
	switch {
	case score >= t.Excellent:
		return "A - Excellent"
	case score >= t.Good:
		return "B - Good"
	case score >= t.NeedsImprovement:
		return "C - Needs Improvement"
	case score >= t.Poor:
		return "D - Poor"
	default:
		return "F - Critical"
	}
}

func identifyStrengths(results []types.PillarResult) []string {
	var strengths []string
	for _, r := range results {
		if r.Score >= 80 {
			strengths = append(strengths, fmt.Sprintf("%s: Scored %.1f/100", r.Pillar, r.Score))
		}
	}
	if len(strengths) == 0 {
		strengths = []string{"Keep working on all areas for improvement"}
	}
	return strengths
}

func identifyImprovements(results []types.PillarResult) []string {
	var improvements []string
	for _, r := range results {
		if r.Score < 70 {
			improvements = append(improvements, fmt.Sprintf("%s: Scored %.1f/100 - needs attention", r.Pillar, r.Score))
		}
	}
	if len(improvements) == 0 {
		improvements = []string{"Great job! Continue maintaining quality."}
	}
	return improvements
}

func mergeAlerts(existing, incoming []types.SupervisorAlert) []types.SupervisorAlert {
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[a.Category] = true
	}
	for _, a := range incoming {
		if !seen[a.Category] {
			existing = append(existing, a)
			seen[a.Category] = true
		}
	}
	return existing
}

func normalizeMetadata(meta *types.CallMetadata) types.CallMetadata {
	if meta == nil {
		return types.CallMetadata{
			CallID:    "UNKNOWN",
			AgentID:   "UNKNOWN",
			AgentName: "Unknown Agent",
			City:      "Unknown",
			Timestamp: "Unknown",
		}
	}
	return *meta
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
