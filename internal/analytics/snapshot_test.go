package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/google/uuid"
)

type fakeMoodStore struct {
	mu      sync.Mutex
	entries []models.MoodEntry
	err     error
	calls   int
	since   time.Time
	until   time.Time
}

func (f *fakeMoodStore) ListMoodEntries(_ context.Context, _ uuid.UUID, since, until time.Time) ([]models.MoodEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.since, f.until = since, until
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeRiskStore struct {
	evals []models.RiskEvaluation
	err   error
	limit int
}

func (f *fakeRiskStore) ListRecentRiskEvaluations(_ context.Context, _ uuid.UUID, limit int) ([]models.RiskEvaluation, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.evals, nil
}

// Sunday evening.
var testNow = time.Date(2024, 6, 16, 20, 0, 0, 0, time.UTC)

func newTestEngine(moods *fakeMoodStore, risks *fakeRiskStore) *Engine {
	return NewEngine(moods, risks, WithClock(func() time.Time { return testNow }))
}

func fullAccess() *PermissionSet {
	p := FullAccess()
	return &p
}

func TestComputeSnapshotEmptyHistory(t *testing.T) {
	engine := newTestEngine(&fakeMoodStore{}, &fakeRiskStore{})

	for _, window := range []string{"7d", "30d", "1y"} {
		snap, err := engine.ComputeSnapshot(context.Background(), Request{
			SubjectID:   uuid.New(),
			Permissions: fullAccess(),
			Window:      window,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", window, err)
		}

		if snap.Stats.TotalEntries != 0 {
			t.Errorf("%s: total entries = %d", window, snap.Stats.TotalEntries)
		}
		if len(snap.WeeklyMoods) != 7 {
			t.Fatalf("%s: weekly moods = %v", window, snap.WeeklyMoods)
		}
		for i, v := range snap.WeeklyMoods {
			if v != 0 {
				t.Errorf("%s: weekly[%d] = %v", window, i, v)
			}
		}
		if snap.Stats.WellnessScore != nil || snap.Stats.AverageMood != nil {
			t.Errorf("%s: expected null wellness stats", window)
		}
		if snap.RiskSummary.LatestLevel != nil {
			t.Errorf("%s: latest level = %v, want nil", window, *snap.RiskSummary.LatestLevel)
		}
		if len(snap.Insights) != 1 || snap.Insights[0].Title != "Stay connected" {
			t.Errorf("%s: insights = %v", window, titles(snap.Insights))
		}
	}
}

func TestComputeSnapshotSundayBucket(t *testing.T) {
	moods := &fakeMoodStore{entries: []models.MoodEntry{
		entryAt("Happy", time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC)),
	}}
	engine := newTestEngine(moods, &fakeRiskStore{})

	snap, err := engine.ComputeSnapshot(context.Background(), Request{SubjectID: uuid.New(), Permissions: fullAccess(), Window: "7d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{0, 0, 0, 0, 0, 0, 5}
	for i := range want {
		if snap.WeeklyMoods[i] != want[i] {
			t.Errorf("weekly[%d] = %v, want %v", i, snap.WeeklyMoods[i], want[i])
		}
	}
	if snap.Stats.WellnessScore == nil || *snap.Stats.WellnessScore != 100 {
		t.Errorf("wellness score = %v, want 100", snap.Stats.WellnessScore)
	}
	if snap.Stats.MostFrequentMood == nil || *snap.Stats.MostFrequentMood != "Happy" {
		t.Errorf("most frequent mood = %v", snap.Stats.MostFrequentMood)
	}
}

func TestComputeSnapshotAlertsOnlySkipsMoodRead(t *testing.T) {
	moods := &fakeMoodStore{entries: []models.MoodEntry{entryAt("Happy", testNow.Add(-time.Hour))}}
	risks := &fakeRiskStore{evals: []models.RiskEvaluation{evalAt("High", 30, testNow.AddDate(0, 0, -1))}}
	engine := newTestEngine(moods, risks)

	snap, err := engine.ComputeSnapshot(context.Background(), Request{
		SubjectID: uuid.New(),
		Visibility: &VisibilityConfig{
			ShareAlertsOnly:    boolPtr(true),
			ShareMoodTrends:    boolPtr(true),
			ShareWellnessScore: boolPtr(true),
		},
		Window: "30d",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Permissions.AllowTrends || snap.Permissions.AllowWellness || !snap.Permissions.AlertsOnly {
		t.Errorf("permissions = %+v", snap.Permissions)
	}
	if moods.calls != 0 {
		t.Errorf("mood store queried %d times, want 0", moods.calls)
	}
	if risks.limit != RiskFetchLimit {
		t.Errorf("risk limit = %d, want %d", risks.limit, RiskFetchLimit)
	}
	if snap.Stats.TotalEntries != 0 {
		t.Errorf("total entries = %d", snap.Stats.TotalEntries)
	}
	if snap.RiskSummary.LatestLevel == nil || *snap.RiskSummary.LatestLevel != "High" {
		t.Errorf("latest level = %v", snap.RiskSummary.LatestLevel)
	}
	if snap.RiskSummary.WellnessIndex != nil {
		t.Error("wellness index should be hidden")
	}
	if len(snap.Insights) != 1 || snap.Insights[0].Title != "Alert spotlight" {
		t.Errorf("insights = %v", titles(snap.Insights))
	}
}

func TestComputeSnapshotTrendsHidden(t *testing.T) {
	var entries []models.MoodEntry
	for i := 0; i < 20; i++ {
		entries = append(entries, entryAt("Happy", testNow.AddDate(0, 0, -i), "sleep", "friends"))
	}
	engine := newTestEngine(&fakeMoodStore{entries: entries}, &fakeRiskStore{})

	snap, err := engine.ComputeSnapshot(context.Background(), Request{
		SubjectID:  uuid.New(),
		Visibility: &VisibilityConfig{ShareMoodTrends: boolPtr(false)},
		Window:     "30d",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.WeeklyMoods) != 0 || len(snap.MoodDistribution) != 0 || len(snap.TopFactors) != 0 || len(snap.RecentMoods) != 0 {
		t.Errorf("trend fields should be empty: %+v", snap)
	}
	if snap.Stats.CurrentStreak != nil || snap.Stats.MostFrequentMood != nil {
		t.Error("trend stats should be null")
	}
	if snap.Stats.WellnessScore == nil || *snap.Stats.WellnessScore != 100 {
		t.Errorf("wellness score = %v, want 100", snap.Stats.WellnessScore)
	}
	if snap.Stats.TotalEntries != 20 {
		t.Errorf("total entries = %d, want 20", snap.Stats.TotalEntries)
	}
}

func TestComputeSnapshotShapeIndependentOfPermissions(t *testing.T) {
	engine := newTestEngine(&fakeMoodStore{}, &fakeRiskStore{})
	snap, err := engine.ComputeSnapshot(context.Background(), Request{
		SubjectID:  uuid.New(),
		Visibility: &VisibilityConfig{ShareAlertsOnly: boolPtr(true)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"weekly_moods", "recent_moods", "mood_distribution", "top_factors", "insights"} {
		if string(doc[key]) == "null" || doc[key] == nil {
			t.Errorf("%s should be an empty list, got %s", key, doc[key])
		}
	}

	var stats map[string]json.RawMessage
	if err := json.Unmarshal(doc["stats"], &stats); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}
	for _, key := range []string{"wellness_score", "average_mood", "current_streak", "most_frequent_mood"} {
		v, ok := stats[key]
		if !ok {
			t.Errorf("stats.%s missing", key)
		} else if string(v) != "null" {
			t.Errorf("stats.%s = %s, want null", key, v)
		}
	}
	if snap.Window != "30d" {
		t.Errorf("window = %q, want default 30d", snap.Window)
	}
}

func TestComputeSnapshotRiskFallback(t *testing.T) {
	risks := &fakeRiskStore{evals: []models.RiskEvaluation{
		evalAt("Moderate", 48, testNow.AddDate(0, 0, -40)),
	}}
	engine := newTestEngine(&fakeMoodStore{}, risks)

	snap, err := engine.ComputeSnapshot(context.Background(), Request{SubjectID: uuid.New(), Permissions: fullAccess(), Window: "7d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.RiskSummary.LatestLevel == nil || *snap.RiskSummary.LatestLevel != "Moderate" {
		t.Errorf("latest level = %v, want Moderate", snap.RiskSummary.LatestLevel)
	}
	if snap.RiskSummary.WellnessIndex == nil || *snap.RiskSummary.WellnessIndex != 48 {
		t.Errorf("wellness index = %v, want 48", snap.RiskSummary.WellnessIndex)
	}
}

func TestComputeSnapshotInsightCap(t *testing.T) {
	var entries []models.MoodEntry
	for i := 3; i >= 0; i-- {
		entries = append(entries, entryAt("Happy", testNow.AddDate(0, 0, -i), "sleep"))
	}
	risks := &fakeRiskStore{evals: []models.RiskEvaluation{evalAt("High", 30, testNow.AddDate(0, 0, -1))}}
	engine := newTestEngine(&fakeMoodStore{entries: entries}, risks)

	snap, err := engine.ComputeSnapshot(context.Background(), Request{SubjectID: uuid.New(), Permissions: fullAccess(), Window: "7d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Positive momentum", "Streak celebration", "Top factor"}
	got := titles(snap.Insights)
	if len(got) != MaxInsights {
		t.Fatalf("insights = %v, want %d", got, MaxInsights)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("insight %d = %q, want %q", i, got[i], want[i])
		}
	}
	if *snap.Stats.CurrentStreak != 4 {
		t.Errorf("streak = %d, want 4", *snap.Stats.CurrentStreak)
	}
}

func TestComputeSnapshotStats(t *testing.T) {
	entries := []models.MoodEntry{
		entryAt("Sad", testNow.AddDate(0, 0, -6)),
		entryAt("Happy", testNow.AddDate(0, 0, -5)),
		entryAt("Neutral", testNow.AddDate(0, 0, -4)),
		entryAt("Happy", testNow.AddDate(0, 0, -3)),
		entryAt("Tired", testNow.AddDate(0, 0, -2)),
		entryAt("Happy", testNow.AddDate(0, 0, -1)),
		entryAt("Angry", testNow),
	}
	moods := &fakeMoodStore{entries: entries}
	engine := newTestEngine(moods, &fakeRiskStore{})

	snap, err := engine.ComputeSnapshot(context.Background(), Request{SubjectID: uuid.New(), Permissions: fullAccess(), Window: "7d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (2+5+3+5+2+5+1)/7 = 23/7
	if *snap.Stats.AverageMood != 3.29 {
		t.Errorf("average mood = %v, want 3.29", *snap.Stats.AverageMood)
	}
	if *snap.Stats.WellnessScore != 66 {
		t.Errorf("wellness score = %d, want 66", *snap.Stats.WellnessScore)
	}
	if *snap.Stats.CurrentStreak != 0 {
		t.Errorf("streak = %d, want 0", *snap.Stats.CurrentStreak)
	}
	if len(snap.RecentMoods) != RecentMoodLimit || snap.RecentMoods[0].Mood != "Angry" {
		t.Errorf("recent moods = %+v", snap.RecentMoods)
	}
	if !moods.since.Equal(testNow.AddDate(0, 0, -7)) || !moods.until.Equal(testNow) {
		t.Errorf("queried [%v, %v]", moods.since, moods.until)
	}
}

func TestComputeSnapshotFetchFailures(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		moods *fakeMoodStore
		risks *fakeRiskStore
	}{
		{"mood store", &fakeMoodStore{err: boom}, &fakeRiskStore{}},
		{"risk store", &fakeMoodStore{}, &fakeRiskStore{err: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(tt.moods, tt.risks)
			snap, err := engine.ComputeSnapshot(context.Background(), Request{SubjectID: uuid.New(), Permissions: fullAccess()})
			if err == nil {
				t.Fatal("expected error")
			}
			if snap != nil {
				t.Error("no partial snapshot should be returned")
			}
			if !errors.Is(err, ErrFetchFailed) || !errors.Is(err, boom) {
				t.Errorf("error %v should wrap ErrFetchFailed and the cause", err)
			}
		})
	}
}

func TestComputeSnapshotBlankFactorsDoNotHideTopFactor(t *testing.T) {
	moods := &fakeMoodStore{entries: []models.MoodEntry{
		{Mood: models.MoodNeutral, Factors: []string{"", "work"}, RecordedAt: testNow.Add(-26 * time.Hour)},
		{Mood: models.MoodNeutral, Factors: []string{""}, RecordedAt: testNow.Add(-2 * time.Hour)},
	}}
	engine := newTestEngine(moods, &fakeRiskStore{})

	snap, err := engine.ComputeSnapshot(context.Background(), Request{
		SubjectID:   uuid.New(),
		Permissions: fullAccess(),
		Window:      "7d",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.TopFactors) != 1 || snap.TopFactors[0].Label != "work" {
		t.Fatalf("top factors = %v, want only work", snap.TopFactors)
	}
	found := false
	for _, in := range snap.Insights {
		if in.Title == "Top factor" {
			found = true
		}
		if in.Title == "Stay connected" {
			t.Error("fallback insight shown despite a real factor")
		}
	}
	if !found {
		t.Errorf("insights = %v, want a top factor insight", snap.Insights)
	}
}
