// Package analytics rolls evaluation records into population-level insight:
// leaderboards, city rankings, complaint distributions and coaching
// priorities. Ingestion is append-only for the process lifetime; reports
// are computed on demand from the current pool.
package analytics

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"autoqa-go/internal/knowledge"
	"autoqa-go/internal/types"
)

// ErrNoEvaluations is returned when a report is requested before any record
// has been ingested. Callers should treat it as an expected condition, not a
// fault.
var ErrNoEvaluations = errors.New("no evaluations available")

// The coaching threshold below which agents, cities and pillars are flagged.
const coachingThreshold = 70

// Engine accumulates evaluation records and their indices. A mutex guards
// ingestion against report traversal so a report never observes a partially
// appended record.
type Engine struct {
	kb *knowledge.Base

	mu          sync.Mutex
	evaluations []types.EvaluationRecord
	byAgent     map[string][]types.EvaluationRecord
	byCity      map[string][]types.EvaluationRecord
	byIssue     map[string][]types.EvaluationRecord
}

func New(kb *knowledge.Base) *Engine {
	return &Engine{
		kb:      kb,
		byAgent: make(map[string][]types.EvaluationRecord),
		byCity:  make(map[string][]types.EvaluationRecord),
		byIssue: make(map[string][]types.EvaluationRecord),
	}
}

// AddEvaluation appends a record to the pool and indexes it by agent, city
// and every detected issue. Records are never removed.
func (e *Engine) AddEvaluation(rec types.EvaluationRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.evaluations = append(e.evaluations, rec)
	e.byAgent[rec.Metadata.AgentID] = append(e.byAgent[rec.Metadata.AgentID], rec)
	e.byCity[rec.Metadata.City] = append(e.byCity[rec.Metadata.City], rec)
	for _, issue := range rec.DetailedBreakdown.ResolutionCorrectness.DetectedIssues {
		e.byIssue[issue] = append(e.byIssue[issue], rec)
	}
}

// TotalCalls reports the current pool size.
func (e *Engine) TotalCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.evaluations)
}

// GenerateReport computes the full analytics report from the current pool.
// An empty pool yields ErrNoEvaluations.
func (e *Engine) GenerateReport() (*Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.evaluations) == 0 {
		return nil, ErrNoEvaluations
	}

	pillarAnalysis := e.analyzePillars()
	agentPerf := e.analyzeAgents()
	cityPerf := e.analyzeCities()

	return &Report{
		GeneratedAt:           time.Now().UTC(),
		TotalCallsAnalyzed:    len(e.evaluations),
		Overview:              e.overview(),
		PillarAnalysis:        pillarAnalysis,
		ComplaintDistribution: e.analyzeComplaints(),
		AgentPerformance:      agentPerf,
		CityPerformance:       cityPerf,
		RiskSummary:           e.analyzeRisks(),
		CoachingPriorities:    coachingPriorities(pillarAnalysis, agentPerf, cityPerf),
	}, nil
}

func (e *Engine) overview() Overview {
	scores := make([]float64, 0, len(e.evaluations))
	needsReview := 0
	grades := map[string]int{}
	var dist ScoreDistribution

	for _, rec := range e.evaluations {
		s := rec.Overall.Score
		scores = append(scores, s)
		if rec.Overall.NeedsSupervisorReview {
			needsReview++
		}
		grades[rec.Overall.Grade]++
		switch {
		case s >= 90:
			dist.Excellent++
		case s >= 75:
			dist.Good++
		case s >= 60:
			dist.NeedsImprovement++
		case s >= 40:
			dist.Poor++
		default:
			dist.Critical++
		}
	}

	return Overview{
		AverageScore:       round1(mean(scores)),
		MinScore:           minOf(scores),
		MaxScore:           maxOf(scores),
		CallsNeedingReview: needsReview,
		ReviewPercentage:   round1(float64(needsReview) / float64(len(scores)) * 100),
		GradeDistribution:  grades,
		ScoreDistribution:  dist,
	}
}

func (e *Engine) analyzePillars() PillarAnalysis {
	details := make(map[string]PillarStats, len(types.PillarOrder))

	type impactEntry struct {
		name   string
		impact float64
	}
	var ranked []impactEntry

	for _, name := range types.PillarOrder {
		var scores []float64
		for _, rec := range e.evaluations {
			if ps, ok := rec.PillarScores[name]; ok {
				scores = append(scores, ps.Score)
			}
		}
		if len(scores) == 0 {
			continue
		}
		avg := mean(scores)
		below := 0
		for _, s := range scores {
			if s < coachingThreshold {
				below++
			}
		}
		weight := e.kb.Weights[name]
		stats := PillarStats{
			AverageScore:   round1(avg),
			Min:            minOf(scores),
			Max:            maxOf(scores),
			BelowThreshold: below,
			Weight:         weight,
			Impact:         round1(avg * weight),
		}
		details[name] = stats
		ranked = append(ranked, impactEntry{name, stats.Impact})
	}

	// Lowest impact first; PillarOrder keeps ties deterministic.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].impact < ranked[j].impact })

	analysis := PillarAnalysis{PillarDetails: details}
	if len(ranked) > 0 {
		analysis.WeakestPillar = ranked[0].name
		analysis.StrongestPillar = ranked[len(ranked)-1].name
	}
	return analysis
}

func (e *Engine) analyzeComplaints() ComplaintDistribution {
	byType := make(map[string]ComplaintStats, len(e.byIssue))
	total := len(e.evaluations)

	for issue, recs := range e.byIssue {
		var scores []float64
		for _, rec := range recs {
			scores = append(scores, rec.Overall.Score)
		}
		byType[issue] = ComplaintStats{
			Count:        len(recs),
			Percentage:   round1(float64(len(recs)) / float64(total) * 100),
			AvgScore:     round1(mean(scores)),
			CategoryName: e.kb.CategoryName(issue),
		}
	}

	ranks := make([]ComplaintRank, 0, len(byType))
	for issue, stats := range byType {
		ranks = append(ranks, ComplaintRank{Issue: issue, ComplaintStats: stats})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].Issue < ranks[j].Issue
	})

	dist := ComplaintDistribution{ByType: byType}
	if len(ranks) > 5 {
		dist.MostCommon = ranks[:5]
	} else {
		dist.MostCommon = ranks
	}

	var lowest *ComplaintRank
	for i := range ranks {
		r := ranks[i]
		if lowest == nil || r.AvgScore < lowest.AvgScore ||
			(r.AvgScore == lowest.AvgScore && r.Issue < lowest.Issue) {
			lowest = &ranks[i]
		}
	}
	dist.LowestHandlingScore = lowest
	return dist
}

func (e *Engine) analyzeAgents() AgentPerformance {
	byAgent := make(map[string]AgentStats, len(e.byAgent))

	for agentID, recs := range e.byAgent {
		var scores []float64
		needsReview := 0
		pillarScores := map[string][]float64{}
		for _, rec := range recs {
			scores = append(scores, rec.Overall.Score)
			if rec.Overall.NeedsSupervisorReview {
				needsReview++
			}
			for _, name := range types.PillarOrder {
				if ps, ok := rec.PillarScores[name]; ok {
					pillarScores[name] = append(pillarScores[name], ps.Score)
				}
			}
		}

		weakest := ""
		weakestAvg := 0.0
		for _, name := range types.PillarOrder {
			ss := pillarScores[name]
			if len(ss) == 0 {
				continue
			}
			avg := mean(ss)
			if weakest == "" || avg < weakestAvg {
				weakest = name
				weakestAvg = avg
			}
		}

		byAgent[agentID] = AgentStats{
			AgentName:          recs[0].Metadata.AgentName,
			TotalCalls:         len(recs),
			AverageScore:       round1(mean(scores)),
			MinScore:           minOf(scores),
			MaxScore:           maxOf(scores),
			CallsNeedingReview: needsReview,
			WeakestPillar:      weakest,
			WeakestPillarAvg:   round1(weakestAvg),
		}
	}

	leaderboard := make([]AgentRank, 0, len(byAgent))
	for id, stats := range byAgent {
		leaderboard = append(leaderboard, AgentRank{AgentID: id, AgentStats: stats})
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].AverageScore != leaderboard[j].AverageScore {
			return leaderboard[i].AverageScore > leaderboard[j].AverageScore
		}
		return leaderboard[i].AgentID < leaderboard[j].AgentID
	})
	for i := range leaderboard {
		leaderboard[i].Rank = i + 1
	}

	perf := AgentPerformance{
		ByAgent:       byAgent,
		Leaderboard:   leaderboard,
		NeedsCoaching: []AgentRank{},
	}
	if len(leaderboard) > 0 {
		perf.TopPerformer = &leaderboard[0]
	}
	for _, a := range leaderboard {
		if a.AverageScore < coachingThreshold {
			perf.NeedsCoaching = append(perf.NeedsCoaching, a)
		}
	}
	return perf
}

func (e *Engine) analyzeCities() CityPerformance {
	byCity := make(map[string]CityStats, len(e.byCity))

	for city, recs := range e.byCity {
		var scores []float64
		issueCounts := map[string]int{}
		agents := map[string]bool{}
		for _, rec := range recs {
			scores = append(scores, rec.Overall.Score)
			agents[rec.Metadata.AgentID] = true
			for _, issue := range rec.DetailedBreakdown.ResolutionCorrectness.DetectedIssues {
				issueCounts[issue]++
			}
		}

		issues := make([]IssueCount, 0, len(issueCounts))
		for issue, count := range issueCounts {
			issues = append(issues, IssueCount{Issue: issue, Count: count})
		}
		sort.Slice(issues, func(i, j int) bool {
			if issues[i].Count != issues[j].Count {
				return issues[i].Count > issues[j].Count
			}
			return issues[i].Issue < issues[j].Issue
		})
		if len(issues) > 3 {
			issues = issues[:3]
		}

		byCity[city] = CityStats{
			TotalCalls:   len(recs),
			AverageScore: round1(mean(scores)),
			MinScore:     minOf(scores),
			MaxScore:     maxOf(scores),
			CommonIssues: issues,
			AgentsCount:  len(agents),
		}
	}

	ranking := make([]CityRank, 0, len(byCity))
	for city, stats := range byCity {
		ranking = append(ranking, CityRank{City: city, CityStats: stats})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].AverageScore != ranking[j].AverageScore {
			return ranking[i].AverageScore > ranking[j].AverageScore
		}
		return ranking[i].City < ranking[j].City
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}

	perf := CityPerformance{
		ByCity:                byCity,
		Ranking:               ranking,
		UnderperformingCities: []CityRank{},
	}
	if len(ranking) > 0 {
		perf.BestCity = &ranking[0]
	}
	for _, c := range ranking {
		if c.AverageScore < coachingThreshold {
			perf.UnderperformingCities = append(perf.UnderperformingCities, c)
		}
	}
	return perf
}

func (e *Engine) analyzeRisks() RiskSummary {
	riskCounts := map[string]int{}
	var flagged []FlaggedCall

	for _, rec := range e.evaluations {
		var categories []string
		for _, alert := range rec.SupervisorAlerts {
			riskCounts[alert.Category]++
			categories = append(categories, alert.Category)
		}
		if rec.Overall.NeedsSupervisorReview {
			flagged = append(flagged, FlaggedCall{
				CallID: rec.Metadata.CallID,
				Agent:  rec.Metadata.AgentName,
				Score:  rec.Overall.Score,
				Alerts: categories,
			})
		}
	}

	return RiskSummary{
		RiskDistribution:  riskCounts,
		TotalFlaggedCalls: len(flagged),
		FlaggedPercentage: round1(float64(len(flagged)) / float64(len(e.evaluations)) * 100),
		FlaggedCalls:      flagged,
	}
}

// coachingPriorities ranks interventions: the weakest pillar team-wide
// first, then up to three agents below the coaching threshold, then up to
// two underperforming cities.
func coachingPriorities(pillars PillarAnalysis, agents AgentPerformance, cities CityPerformance) []CoachingPriority {
	priorities := []CoachingPriority{}

	if weakest := pillars.WeakestPillar; weakest != "" {
		readable := titleWords(weakest)
		priorities = append(priorities, CoachingPriority{
			Priority:          1,
			Area:              readable,
			Type:              "Team-wide Training",
			Reason:            "Lowest performing pillar across all agents",
			RecommendedAction: "Schedule team training session on " + lowerWords(weakest),
		})
	}

	coaching := agents.NeedsCoaching
	if len(coaching) > 3 {
		coaching = coaching[:3]
	}
	for _, agent := range coaching {
		priorities = append(priorities, CoachingPriority{
			Priority:          2,
			Area:              agent.WeakestPillar,
			Type:              "Individual Coaching",
			Agent:             agent.AgentName,
			Reason:            "Average score " + formatScore(agent.AverageScore) + " below threshold",
			RecommendedAction: "1-on-1 coaching session focusing on " + lowerWords(agent.WeakestPillar),
		})
	}

	under := cities.UnderperformingCities
	if len(under) > 2 {
		under = under[:2]
	}
	for _, city := range under {
		priorities = append(priorities, CoachingPriority{
			Priority:          3,
			Area:              "City Hub Performance",
			Type:              "Hub-level Intervention",
			City:              city.City,
			Reason:            "Hub average " + formatScore(city.AverageScore) + " below target",
			RecommendedAction: "Investigate systemic issues at " + city.City + " hub",
		})
	}

	return priorities
}

func titleWords(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func lowerWords(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
