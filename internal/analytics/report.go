package analytics

import "time"

// Report is the full analytics output, computed on demand from the current
// evaluation pool. All averages and percentages are rounded to one decimal.
type Report struct {
	GeneratedAt           time.Time             `json:"generated_at"`
	TotalCallsAnalyzed    int                   `json:"total_calls_analyzed"`
	Overview              Overview              `json:"overview"`
	PillarAnalysis        PillarAnalysis        `json:"pillar_analysis"`
	ComplaintDistribution ComplaintDistribution `json:"complaint_distribution"`
	AgentPerformance      AgentPerformance      `json:"agent_performance"`
	CityPerformance       CityPerformance       `json:"city_performance"`
	RiskSummary           RiskSummary           `json:"risk_summary"`
	CoachingPriorities    []CoachingPriority    `json:"coaching_priorities"`
}

// ScoreDistribution buckets overall scores at the fixed grade breakpoints.
type ScoreDistribution struct {
	Excellent        int `json:"excellent_90_plus"`
	Good             int `json:"good_75_89"`
	NeedsImprovement int `json:"needs_improvement_60_74"`
	Poor             int `json:"poor_40_59"`
	Critical         int `json:"critical_below_40"`
}

type Overview struct {
	AverageScore       float64           `json:"average_score"`
	MinScore           float64           `json:"min_score"`
	MaxScore           float64           `json:"max_score"`
	CallsNeedingReview int               `json:"calls_needing_review"`
	ReviewPercentage   float64           `json:"review_percentage"`
	GradeDistribution  map[string]int    `json:"grade_distribution"`
	ScoreDistribution  ScoreDistribution `json:"score_distribution"`
}

type PillarStats struct {
	AverageScore   float64 `json:"average_score"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	BelowThreshold int     `json:"below_threshold"`
	Weight         float64 `json:"weight"`
	Impact         float64 `json:"impact"`
}

type PillarAnalysis struct {
	PillarDetails   map[string]PillarStats `json:"pillar_details"`
	WeakestPillar   string                 `json:"weakest_pillar"`
	StrongestPillar string                 `json:"strongest_pillar"`
}

type ComplaintStats struct {
	Count        int     `json:"count"`
	Percentage   float64 `json:"percentage"`
	AvgScore     float64 `json:"avg_score"`
	CategoryName string  `json:"category_name"`
}

// ComplaintRank pairs an issue key with its stats for ordered listings.
type ComplaintRank struct {
	Issue string `json:"issue"`
	ComplaintStats
}

type ComplaintDistribution struct {
	ByType              map[string]ComplaintStats `json:"by_type"`
	MostCommon          []ComplaintRank           `json:"most_common"`
	LowestHandlingScore *ComplaintRank            `json:"lowest_handling_score,omitempty"`
}

type AgentStats struct {
	AgentName          string  `json:"agent_name"`
	TotalCalls         int     `json:"total_calls"`
	AverageScore       float64 `json:"average_score"`
	MinScore           float64 `json:"min_score"`
	MaxScore           float64 `json:"max_score"`
	CallsNeedingReview int     `json:"calls_needing_review"`
	WeakestPillar      string  `json:"weakest_pillar"`
	WeakestPillarAvg   float64 `json:"weakest_pillar_avg"`
}

type AgentRank struct {
	Rank    int    `json:"rank"`
	AgentID string `json:"agent_id"`
	AgentStats
}

type AgentPerformance struct {
	ByAgent       map[string]AgentStats `json:"by_agent"`
	Leaderboard   []AgentRank           `json:"leaderboard"`
	TopPerformer  *AgentRank            `json:"top_performer,omitempty"`
	NeedsCoaching []AgentRank           `json:"needs_coaching"`
}

// IssueCount is one detected-issue tally, ordered most frequent first.
type IssueCount struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

type CityStats struct {
	TotalCalls   int          `json:"total_calls"`
	AverageScore float64      `json:"average_score"`
	MinScore     float64      `json:"min_score"`
	MaxScore     float64      `json:"max_score"`
	CommonIssues []IssueCount `json:"common_issues"`
	AgentsCount  int          `json:"agents_count"`
}

type CityRank struct {
	Rank int    `json:"rank"`
	City string `json:"city"`
	CityStats
}

type CityPerformance struct {
	ByCity                map[string]CityStats `json:"by_city"`
	Ranking               []CityRank           `json:"ranking"`
	BestCity              *CityRank            `json:"best_city,omitempty"`
	UnderperformingCities []CityRank           `json:"underperforming_cities"`
}

// FlaggedCall is one call requiring supervisor review.
type FlaggedCall struct {
	CallID string   `json:"call_id"`
	Agent  string   `json:"agent"`
	Score  float64  `json:"score"`
	Alerts []string `json:"alerts"`
}

type RiskSummary struct {
	RiskDistribution  map[string]int `json:"risk_distribution"`
	TotalFlaggedCalls int            `json:"total_flagged_calls"`
	FlaggedPercentage float64        `json:"flagged_percentage"`
	FlaggedCalls      []FlaggedCall  `json:"flagged_calls"`
}

type CoachingPriority struct {
	Priority          int    `json:"priority"`
	Area              string `json:"area"`
	Type              string `json:"type"`
	Agent             string `json:"agent,omitempty"`
	City              string `json:"city,omitempty"`
	Reason            string `json:"reason"`
	RecommendedAction string `json:"recommended_action"`
}
