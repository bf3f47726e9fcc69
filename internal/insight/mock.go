package insight

import (
	"context"

	"autoqa-go/internal/types"
)

// Mock is a deterministic provider for offline demos and tests
// (USE_MOCK_LLM=true).
type Mock struct {
	Result Insights
	Err    error
}

func NewMock() *Mock {
	return &Mock{
		Result: Insights{
			Strengths:    []string{"Acknowledged the customer's problem before troubleshooting"},
			Improvements: []string{"Did not confirm the resolution before closing the call"},
			Recommendations: []string{
				"Summarize the agreed next steps before ending the call",
			},
			SupervisorAlerts: []types.SupervisorAlert{},
		},
	}
}

func (m *Mock) CoachingInsights(ctx context.Context, transcript, agentName string) (Insights, error) {
	if m.Err != nil {
		return Insights{}, m.Err
	}
	if err := ctx.Err(); err != nil {
		return Insights{}, err
	}
	return m.Result, nil
}
