package pillars

import (
	"fmt"
	"strings"

	"autoqa-go/internal/knowledge"
	"autoqa-go/internal/types"
)

// neutralResolutionScore is returned when no SOP issue is detected in the
// transcript. That is an expected outcome, not an error.
const neutralResolutionScore = 70

// ResolutionCorrectness checks whether the agent resolved detected issues
// according to their SOPs.
type ResolutionCorrectness struct {
	kb *knowledge.Base
}

func NewResolutionCorrectness(kb *knowledge.Base) *ResolutionCorrectness {
	return &ResolutionCorrectness{kb: kb}
}

// Evaluate detects issue types via keyword match and scores each detected
// issue: 70 points for any correct response phrase, the remaining 30 split
// evenly across required steps. The pillar score is the mean across issues.
func (r *ResolutionCorrectness) Evaluate(transcript string) types.PillarResult {
	lower := strings.ToLower(transcript)

	res := types.PillarResult{
		Pillar:          "Resolution Correctness",
		Weight:          "30%",
		Evidence:        []types.Evidence{},
		Recommendations: []string{},
	}

	var detected []knowledge.SOP
	for _, sop := range r.kb.SOPs {
		if firstMatch(lower, sop.IssueKeywords) != "" {
			detected = append(detected, sop)
			res.DetectedIssues = append(res.DetectedIssues, sop.Issue)
		}
	}

	if len(detected) == 0 {
		res.Score = neutralResolutionScore
		res.Evidence = append(res.Evidence, types.Evidence{
			Category: "SOP Compliance",
			Status:   "none",
			Detail:   "no specific SOP-related issue detected in transcript; general inquiry assumed",
		})
		return res
	}

	total := 0.0
	for _, sop := range detected {
		score, steps, correct := r.scoreIssue(lower, sop)
		total += score

		res.Evidence = append(res.Evidence, types.Evidence{
			Category: sop.Issue,
			Status:   compliantStatus(correct),
			Detail: fmt.Sprintf("correct response given: %t, steps followed: %d/%d",
				correct, len(steps), len(sop.RequiredSteps)),
			Examples: steps,
		})

		if !correct {
			res.Recommendations = append(res.Recommendations, fmt.Sprintf(
				"For '%s' issues, ensure you mention: %s",
				strings.ReplaceAll(sop.Issue, "_", " "),
				strings.Join(sop.CorrectResponses[:2], ", ")))
		}
	}

	res.Score = round1(total / float64(len(detected)))
	return res
}

// scoreIssue awards 70 points for a correct response and distributes 30
// across required steps, crediting a step when any of its words longer than
// three characters appears in the transcript. Capped at 100.
func (r *ResolutionCorrectness) scoreIssue(lower string, sop knowledge.SOP) (float64, []string, bool) {
	score := 0.0
	correct := false
	for _, resp := range sop.CorrectResponses {
		if strings.Contains(lower, strings.ToLower(resp)) {
			correct = true
			score += 70
			break
		}
	}

	var followed []string
	stepValue := 30 / float64(len(sop.RequiredSteps))
	for _, step := range sop.RequiredSteps {
		for _, word := range strings.Fields(strings.ToLower(step)) {
			if len(word) > 3 && strings.Contains(lower, word) {
				followed = append(followed, step)
				score += stepValue
				break
			}
		}
	}

	if score > 100 {
		score = 100
	}
	return score, followed, correct
}

func compliantStatus(correct bool) string {
	if correct {
		return "compliant"
	}
	return "non_compliant"
}
