// Package pillars implements the five independent rule-based evaluators of
// the call quality framework. Every evaluator is a pure function of the
// transcript and the knowledge base: no I/O, no mutable state, safe to run
// in parallel.
package pillars

import (
	"fmt"
	"math"
	"strings"

	"autoqa-go/internal/knowledge"
	"autoqa-go/internal/types"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ScriptAdherence checks that the agent delivered the mandatory script
// elements: greeting, identity verification, closing and problem
// acknowledgment.
type ScriptAdherence struct {
	kb *knowledge.Base
}

func NewScriptAdherence(kb *knowledge.Base) *ScriptAdherence {
	return &ScriptAdherence{kb: kb}
}

// Evaluate scans the lower-cased transcript for any listed phrase of each
// element, first match wins. Score is earned points over possible points,
// normalized to 0-100.
func (s *ScriptAdherence) Evaluate(transcript string) types.PillarResult {
	lower := strings.ToLower(transcript)

	res := types.PillarResult{
		Pillar:          "Script Adherence",
		Weight:          "30%",
		Evidence:        []types.Evidence{},
		Recommendations: []string{},
	}

	earned := 0
	possible := 0
	for _, elem := range s.kb.ScriptElements {
		possible += elem.Points
		matched := firstMatch(lower, elem.Phrases)
		if matched != "" {
			earned += elem.Points
			res.Evidence = append(res.Evidence, types.Evidence{
				Category: elem.Description,
				Status:   "present",
				Detail:   fmt.Sprintf("matched %q (%d pts)", matched, elem.Points),
			})
			continue
		}
		res.Evidence = append(res.Evidence, types.Evidence{
			Category: elem.Description,
			Status:   "missing",
			Detail:   fmt.Sprintf("%d pts lost", elem.Points),
		})
		res.Recommendations = append(res.Recommendations,
			fmt.Sprintf("Include %s in your calls", strings.ToLower(elem.Description)))
	}

	res.Score = round1(float64(earned) / float64(possible) * 100)
	return res
}

// firstMatch returns the first phrase found as a substring, or "".
func firstMatch(lower string, phrases []string) string {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return ""
}
