package analytics

import (
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
)

const (
	RiskFetchLimit   = 6
	RiskHistoryLimit = 5
)

// RiskPoint is one evaluation in the risk history chart.
type RiskPoint struct {
	Level         string    `json:"level"`
	WellnessIndex *int      `json:"wellness_index"`
	Date          time.Time `json:"date"`
}

type RiskSummary struct {
	LatestLevel   *string     `json:"latest_level"`
	WellnessIndex *int        `json:"wellness_index"`
	UpdatedAt     *time.Time  `json:"updated_at"`
	Suggestions   []string    `json:"suggestions"`
	History       []RiskPoint `json:"history"`
}

// BuildRiskSummary picks the most recent evaluation inside the window, falling
// back to the most recent one overall so the latest known risk state is never
// hidden by a short window. History holds the RiskHistoryLimit most recent
// evaluations, oldest first.
func BuildRiskSummary(evals []models.RiskEvaluation, since time.Time) RiskSummary {
	summary := RiskSummary{
		Suggestions: []string{},
		History:     []RiskPoint{},
	}
	if len(evals) == 0 {
		return summary
	}

	sorted := make([]models.RiskEvaluation, len(evals))
	copy(sorted, evals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EvaluatedAt.After(sorted[j].EvaluatedAt)
	})

	latest := sorted[0]
	for _, ev := range sorted {
		if !ev.EvaluatedAt.Before(since) {
			latest = ev
			break
		}
	}

	level := latest.RiskLevel
	index := latest.WellnessIndex
	updated := latest.EvaluatedAt
	summary.LatestLevel = &level
	summary.WellnessIndex = &index
	summary.UpdatedAt = &updated
	summary.Suggestions = append(summary.Suggestions, latest.Suggestions...)

	n := min(len(sorted), RiskHistoryLimit)
	for i := n - 1; i >= 0; i-- {
		wi := sorted[i].WellnessIndex
		summary.History = append(summary.History, RiskPoint{
			Level:         sorted[i].RiskLevel,
			WellnessIndex: &wi,
			Date:          sorted[i].EvaluatedAt,
		})
	}

	return summary
}

// withoutWellness drops every wellness index from the summary.
func (s RiskSummary) withoutWellness() RiskSummary {
	s.WellnessIndex = nil
	history := make([]RiskPoint, len(s.History))
	for i, p := range s.History {
		p.WellnessIndex = nil
		history[i] = p
	}
	s.History = history
	return s
}
