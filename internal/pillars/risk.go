package pillars

import (
	"strings"

	"autoqa-go/internal/knowledge"
	"autoqa-go/internal/types"
)

// RiskCompliance detects red flags (legal threats, safety, abuse, churn,
// compliance violations, media threats) and raises supervisor alerts.
type RiskCompliance struct {
	kb *knowledge.Base
}

func NewRiskCompliance(kb *knowledge.Base) *RiskCompliance {
	return &RiskCompliance{kb: kb}
}

// Evaluate scans every risk category. The score starts at 100 and loses 30
// per critical category matched, 15 per high and 5 per remaining match,
// clamped at 0. Categories flagged requires_supervisor also emit a
// SupervisorAlert with the matched keywords.
func (r *RiskCompliance) Evaluate(transcript string) (types.PillarResult, []types.SupervisorAlert) {
	lower := strings.ToLower(transcript)

	res := types.PillarResult{
		Pillar:          "Risk & Compliance",
		Weight:          "10%",
		Evidence:        []types.Evidence{},
		Recommendations: []string{},
		SeverityLevel:   knowledge.SeverityNone,
	}

	var alerts []types.SupervisorAlert
	matched := 0
	critical := 0
	high := 0

	for _, flag := range r.kb.RiskFlags {
		keywords := matchAll(lower, flag.Keywords)
		if len(keywords) == 0 {
			continue
		}
		matched++
		switch flag.Severity {
		case knowledge.SeverityCritical:
			critical++
		case knowledge.SeverityHigh:
			high++
		}

		res.Evidence = append(res.Evidence, types.Evidence{
			Category: flag.Name,
			Status:   flag.Severity,
			Examples: keywords,
		})
		if rec := riskRecommendation(flag.Category); rec != "" {
			res.Recommendations = append(res.Recommendations, rec)
		}
		if flag.RequiresSupervisor {
			alerts = append(alerts, types.SupervisorAlert{
				Category:        flag.Name,
				Severity:        flag.Severity,
				KeywordsMatched: keywords,
				ActionRequired:  "Immediate supervisor review",
			})
		}
	}

	switch {
	case critical > 0:
		res.SeverityLevel = knowledge.SeverityCritical
		res.RequiresReview = true
	case high > 0:
		res.SeverityLevel = knowledge.SeverityHigh
		res.RequiresReview = true
	case matched > 0:
		res.SeverityLevel = knowledge.SeverityMedium
	}

	score := 100 - critical*30 - high*15 - (matched-critical-high)*5
	if score < 0 {
		score = 0
	}
	res.Score = float64(score)

	if matched == 0 {
		res.Evidence = append(res.Evidence, types.Evidence{
			Category: "Risk Flags",
			Status:   "clean",
			Detail:   "no risk flags or compliance concerns detected",
		})
	}

	return res, alerts
}

func riskRecommendation(category string) string {
	switch category {
	case "legal_threats":
		return "Legal threat detected. In future calls, acknowledge the customer's frustration, do not argue, and offer to escalate to a supervisor proactively."
	case "safety_issues":
		return "Safety concern mentioned. Always take safety reports seriously, document details, and escalate to the safety team immediately."
	case "compliance_violation":
		return "Potential compliance issue detected. Avoid making promises or offers that aren't part of official policy."
	case "churn_risk":
		return "Customer indicated potential churn. Focus on understanding their core issue and offer retention-focused solutions within your authority."
	}
	return ""
}
