// Package insight defines the optional LLM-backed coaching augmentation.
// Providers are best-effort collaborators: any failure (timeout, network,
// malformed response) is reported as an error and the orchestrator falls
// back to its rule-based coaching output.
package insight

import (
	"context"

	"autoqa-go/internal/types"
)

// Insights is the typed result an insight provider returns for a call.
type Insights struct {
	Strengths        []string                `json:"strengths"`
	Improvements     []string                `json:"improvements"`
	Recommendations  []string                `json:"recommendations"`
	SupervisorAlerts []types.SupervisorAlert `json:"supervisor_alerts"`
}

// Provider generates coaching insights for a transcript. Implementations
// must honor ctx cancellation; they are invoked with a bounded timeout and
// never retried.
type Provider interface {
	CoachingInsights(ctx context.Context, transcript, agentName string) (Insights, error)
}
