package analytics

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
)

func evalAt(level string, index int, at time.Time, suggestions ...string) models.RiskEvaluation {
	return models.RiskEvaluation{RiskLevel: level, WellnessIndex: index, EvaluatedAt: at, Suggestions: suggestions}
}

func TestBuildRiskSummaryEmpty(t *testing.T) {
	got := BuildRiskSummary(nil, time.Now())
	if got.LatestLevel != nil || got.WellnessIndex != nil || got.UpdatedAt != nil {
		t.Errorf("expected null latest fields, got %+v", got)
	}
	if got.Suggestions == nil || len(got.Suggestions) != 0 {
		t.Errorf("suggestions = %#v, want empty", got.Suggestions)
	}
	if got.History == nil || len(got.History) != 0 {
		t.Errorf("history = %#v, want empty", got.History)
	}
}

func TestBuildRiskSummaryPrefersInWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	since := now.AddDate(0, 0, -7)
	evals := []models.RiskEvaluation{
		evalAt("Low", 80, now.AddDate(0, 0, -2), "keep journaling"),
		evalAt("High", 35, now.AddDate(0, 0, -20)),
	}

	got := BuildRiskSummary(evals, since)
	if got.LatestLevel == nil || *got.LatestLevel != "Low" {
		t.Fatalf("latest level = %v, want Low", got.LatestLevel)
	}
	if *got.WellnessIndex != 80 {
		t.Errorf("wellness index = %d, want 80", *got.WellnessIndex)
	}
	if !got.UpdatedAt.Equal(now.AddDate(0, 0, -2)) {
		t.Errorf("updated at = %v", got.UpdatedAt)
	}
	if len(got.Suggestions) != 1 || got.Suggestions[0] != "keep journaling" {
		t.Errorf("suggestions = %v", got.Suggestions)
	}
}

func TestBuildRiskSummaryFallsBackToMostRecent(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	since := ResolveWindow("7d", now, SelfDefaultWindowDays)
	evals := []models.RiskEvaluation{
		evalAt("Moderate", 52, now.AddDate(0, 0, -40)),
	}

	got := BuildRiskSummary(evals, since)
	if got.LatestLevel == nil || *got.LatestLevel != "Moderate" {
		t.Errorf("latest level = %v, want Moderate", got.LatestLevel)
	}
}

func TestBuildRiskSummaryHistory(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	var evals []models.RiskEvaluation
	for i := 0; i < 6; i++ {
		evals = append(evals, evalAt("Low", 70+i, now.AddDate(0, 0, -i)))
	}

	got := BuildRiskSummary(evals, now.AddDate(0, 0, -30))
	if len(got.History) != RiskHistoryLimit {
		t.Fatalf("history len = %d, want %d", len(got.History), RiskHistoryLimit)
	}
	for i := 1; i < len(got.History); i++ {
		if !got.History[i-1].Date.Before(got.History[i].Date) {
			t.Errorf("history not oldest first at %d", i)
		}
	}
	if *got.History[0].WellnessIndex != 74 {
		t.Errorf("oldest kept = %d, want 74", *got.History[0].WellnessIndex)
	}
	if *got.History[4].WellnessIndex != 70 {
		t.Errorf("newest = %d, want 70", *got.History[4].WellnessIndex)
	}
}

func TestRiskSummaryWithoutWellness(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	full := BuildRiskSummary([]models.RiskEvaluation{evalAt("High", 30, now)}, now.AddDate(0, 0, -1))

	stripped := full.withoutWellness()
	if stripped.WellnessIndex != nil {
		t.Error("wellness index should be nil")
	}
	if stripped.History[0].WellnessIndex != nil {
		t.Error("history wellness index should be nil")
	}
	if stripped.LatestLevel == nil || *stripped.LatestLevel != "High" {
		t.Error("latest level should survive")
	}
	if full.History[0].WellnessIndex == nil {
		t.Error("original summary must not be modified")
	}
}
