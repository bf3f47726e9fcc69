package pillars

import (
	"fmt"
	"strings"

	"autoqa-go/internal/knowledge"
	"autoqa-go/internal/types"
)

// CommunicationQuality scores clarity, tone and professionalism from phrase
// level indicators.
type CommunicationQuality struct {
	kb *knowledge.Base
}

func NewCommunicationQuality(kb *knowledge.Base) *CommunicationQuality {
	return &CommunicationQuality{kb: kb}
}

// Evaluate starts from a base of 70, adds 5 per positive indicator (capped
// at +20), deducts 10 per negative indicator, 5 per jargon term and 8 per
// interruption pattern, then clamps to [0,100].
func (c *CommunicationQuality) Evaluate(transcript string) types.PillarResult {
	lower := strings.ToLower(transcript)

	res := types.PillarResult{
		Pillar:          "Communication Quality",
		Weight:          "10%",
		Evidence:        []types.Evidence{},
		Recommendations: []string{},
	}

	positive := matchAll(lower, c.kb.Communication.Positive)
	negative := matchAll(lower, c.kb.Communication.Negative)
	jargon := matchAll(lower, c.kb.Communication.JargonToAvoid)
	interruptions := matchAll(lower, c.kb.Communication.InterruptionPatterns)

	bonus := float64(len(positive) * 5)
	if bonus > 20 {
		bonus = 20
	}
	score := 70 + bonus -
		float64(len(negative)*10) -
		float64(len(jargon)*5) -
		float64(len(interruptions)*8)
	res.Score = round1(clamp(score, 0, 100))

	if len(positive) > 0 {
		examples := positive
		if len(examples) > 3 {
			examples = examples[:3]
		}
		res.Evidence = append(res.Evidence, types.Evidence{
			Category: "Positive Communication",
			Status:   "present",
			Examples: examples,
		})
	}
	if len(negative) > 0 {
		res.Evidence = append(res.Evidence, types.Evidence{
			Category: "Negative Patterns",
			Status:   "detected",
			Examples: negative,
		})
		top := negative
		if len(top) > 2 {
			top = top[:2]
		}
		res.Recommendations = append(res.Recommendations, fmt.Sprintf(
			"Avoid phrases like: %s. These can sound dismissive or unprofessional.",
			strings.Join(top, ", ")))
	}
	if len(jargon) > 0 {
		res.Evidence = append(res.Evidence, types.Evidence{
			Category: "Technical Jargon",
			Status:   "detected",
			Examples: jargon,
		})
		res.Recommendations = append(res.Recommendations, fmt.Sprintf(
			"Avoid technical jargon when speaking to customers. Consider simpler alternatives for: %s",
			strings.Join(jargon, ", ")))
	}
	if len(interruptions) > 0 {
		res.Recommendations = append(res.Recommendations,
			"Allow customers to finish speaking before responding. Signs of interruption were detected in this call.")
	}

	return res
}

func matchAll(lower string, phrases []string) []string {
	var found []string
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			found = append(found, p)
		}
	}
	return found
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
