package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"autoqa-go/internal/logger"
)

const defaultGatewayTimeout = 15 * time.Second

// Gateway calls an OpenAI-compatible chat-completions endpoint and parses
// the JSON body out of the model's reply, tolerating markdown fences and
// surrounding prose. One attempt per call; the rule-based fallback makes
// retries pointless.
type Gateway struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
	Client  *http.Client
}

func NewGateway(url, apiKey, model string) *Gateway {
	return &Gateway{
		URL:     url,
		APIKey:  apiKey,
		Model:   model,
		Timeout: defaultGatewayTimeout,
		Client:  &http.Client{Timeout: defaultGatewayTimeout},
	}
}

func (g *Gateway) CoachingInsights(ctx context.Context, transcript, agentName string) (Insights, error) {
	log := logger.New().WithComponent("insight-gateway")

	if g.URL == "" || g.APIKey == "" {
		return Insights{}, fmt.Errorf("insight gateway not configured")
	}

	reqBody := map[string]any{
		"model": g.Model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a QA Supervisor. Output JSON only."},
			{"role": "user", "content": buildPrompt(transcript, agentName)},
		},
		"temperature": 0.3,
	}
	data, _ := json.Marshal(reqBody)

	timeout := g.Timeout
	if timeout == 0 {
		timeout = defaultGatewayTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(data))
	if err != nil {
		return Insights{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		log.WithError(err).Warn("insight request failed")
		return Insights{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return Insights{}, fmt.Errorf("insight gateway status %d", resp.StatusCode)
	}

	var out Insights
	if inner := extractContentFromChoices(body); inner != "" {
		if err := json.Unmarshal([]byte(inner), &out); err == nil {
			return out, nil
		}
	}
	if fallback := ExtractJSON(string(body)); fallback != "" {
		if err := json.Unmarshal([]byte(fallback), &out); err == nil {
			return out, nil
		}
	}
	return Insights{}, fmt.Errorf("no parsable JSON in insight response")
}

func buildPrompt(transcript, agentName string) string {
	// Keep the prompt bounded; very long calls carry their signal early.
	if len(transcript) > 4000 {
		transcript = transcript[:4000]
	}
	return fmt.Sprintf(`You are a QA Supervisor for a battery swapping company. Evaluate this call transcript.

TRANSCRIPT:
%s

CONTEXT:
- Agent: %s

TASK:
Provide a valid JSON response with specific observations. Do NOT include generic advice.
Format:
{
    "strengths": ["Specific thing agent did well"],
    "improvements": ["Specific thing agent missed"],
    "recommendations": ["Actionable coaching tip"],
    "supervisor_alerts": [
        {"category": "Legal Threats", "severity": "high", "keywords_matched": ["sue"]}
    ]
}
Only include supervisor_alerts when a legal threat, harassment, or scam is detected. Otherwise use an empty list.
Return ONLY valid JSON.`, transcript, agentName)
}

// extractContentFromChoices reads the openai-style choices[0].message.content
// payload and returns the JSON object inside it, if any.
func extractContentFromChoices(body []byte) string {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		return ""
	}
	return ExtractJSON(parsed.Choices[0].Message.Content)
}

// ExtractJSON finds the first balanced JSON object in a string and returns
// it, stripping common markdown fences first.
func ExtractJSON(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```yaml", "```text", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
