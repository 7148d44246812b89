package analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const RecentMoodLimit = 5

// ErrFetchFailed wraps every backing-store read failure.
var ErrFetchFailed = errors.New("analytics fetch failed")

// MoodStore reads mood entries for a subject within [since, until], ordered
// by recorded_at ascending.
type MoodStore interface {
	ListMoodEntries(ctx context.Context, subjectID uuid.UUID, since, until time.Time) ([]models.MoodEntry, error)
}

// RiskStore reads the most recent risk evaluations for a subject, newest first.
type RiskStore interface {
	ListRecentRiskEvaluations(ctx context.Context, subjectID uuid.UUID, limit int) ([]models.RiskEvaluation, error)
}

type Stats struct {
	TotalEntries     int      `json:"total_entries"`
	WellnessScore    *int     `json:"wellness_score"`
	AverageMood      *float64 `json:"average_mood"`
	CurrentStreak    *int     `json:"current_streak"`
	MostFrequentMood *string  `json:"most_frequent_mood"`
}

type RecentMood struct {
	Mood       string    `json:"mood"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Snapshot is the aggregated view of one subject over one window. Fields a
// permission denies are null or empty, never absent, so every snapshot has the
// same shape.
type Snapshot struct {
	SubjectID        uuid.UUID     `json:"subject_id"`
	Permissions      PermissionSet `json:"permissions"`
	Window           string        `json:"window"`
	Since            time.Time     `json:"since"`
	Stats            Stats         `json:"stats"`
	WeeklyMoods      []float64     `json:"weekly_moods"`
	RecentMoods      []RecentMood  `json:"recent_moods"`
	MoodDistribution []LabelCount  `json:"mood_distribution"`
	TopFactors       []LabelCount  `json:"top_factors"`
	RiskSummary      RiskSummary   `json:"risk_summary"`
	Insights         []Insight     `json:"insights"`
	GeneratedAt      time.Time     `json:"generated_at"`
}

// Request describes one snapshot computation. Permissions, when set, is used
// as-is and Visibility is ignored.
type Request struct {
	SubjectID         uuid.UUID
	Visibility        *VisibilityConfig
	Permissions       *PermissionSet
	Window            string
	DefaultWindowDays int
}

type Engine struct {
	moods MoodStore
	risks RiskStore
	rules []Rule
	now   func() time.Time
	loc   *time.Location
}

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the calendar used for weekday buckets and streak days.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func WithRules(rules []Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

func NewEngine(moods MoodStore, risks RiskStore, opts ...Option) *Engine {
	e := &Engine{
		moods: moods,
		risks: risks,
		rules: DefaultRules(),
		now:   time.Now,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeSnapshot builds the snapshot for one subject and window. Either read
// failing fails the whole call with an error wrapping ErrFetchFailed.
func (e *Engine) ComputeSnapshot(ctx context.Context, req Request) (*Snapshot, error) {
	now := e.now()

	perms := NormalizePermissions(req.Visibility)
	if req.Permissions != nil {
		perms = *req.Permissions
	}

	defaultDays := req.DefaultWindowDays
	if defaultDays <= 0 {
		defaultDays = SupporterDefaultWindowDays
	}
	window := strings.TrimSpace(req.Window)
	if window == "" {
		window = DefaultWindowToken(defaultDays)
	}
	since := ResolveWindow(window, now, defaultDays)

	var entries []models.MoodEntry
	var evals []models.RiskEvaluation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = e.fetchEntries(gctx, req.SubjectID, perms, since, now)
		return err
	})
	g.Go(func() error {
		var err error
		evals, err = e.risks.ListRecentRiskEvaluations(gctx, req.SubjectID, RiskFetchLimit)
		if err != nil {
			return fmt.Errorf("%w: risk evaluations: %w", ErrFetchFailed, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		SubjectID:        req.SubjectID,
		Permissions:      perms,
		Window:           window,
		Since:            since,
		Stats:            Stats{TotalEntries: len(entries)},
		WeeklyMoods:      []float64{},
		RecentMoods:      []RecentMood{},
		MoodDistribution: []LabelCount{},
		TopFactors:       []LabelCount{},
		GeneratedAt:      now,
	}

	if perms.AllowWellness && len(entries) > 0 {
		avg := averageScore(entries)
		rounded := round2(avg)
		score := int(math.Round(avg / 5 * 100))
		snap.Stats.AverageMood = &rounded
		snap.Stats.WellnessScore = &score
	}

	if perms.AllowTrends {
		snap.WeeklyMoods = WeeklyAverages(entries, e.loc)
		snap.RecentMoods = recentMoods(entries, RecentMoodLimit)
		snap.MoodDistribution = MoodDistribution(entries)
		snap.TopFactors = TopFactors(entries)

		streak := CurrentStreak(entries, e.loc)
		snap.Stats.CurrentStreak = &streak
		if len(snap.MoodDistribution) > 0 {
			top := snap.MoodDistribution[0].Label
			snap.Stats.MostFrequentMood = &top
		}
	}

	snap.RiskSummary = BuildRiskSummary(evals, since)
	if !perms.AllowWellness {
		snap.RiskSummary = snap.RiskSummary.withoutWellness()
	}

	in := NarrationInput{
		Permissions:     perms,
		WellnessScore:   snap.Stats.WellnessScore,
		LatestRiskLevel: snap.RiskSummary.LatestLevel,
	}
	if snap.Stats.CurrentStreak != nil {
		in.CurrentStreak = *snap.Stats.CurrentStreak
	}
	if len(snap.TopFactors) > 0 {
		in.TopFactor = snap.TopFactors[0].Label
	}
	snap.Insights = Narrate(in, e.rules)

	return snap, nil
}

// fetchEntries issues no query at all when the permission set grants nothing.
func (e *Engine) fetchEntries(ctx context.Context, subjectID uuid.UUID, perms PermissionSet, since, until time.Time) ([]models.MoodEntry, error) {
	if !perms.Any() {
		return []models.MoodEntry{}, nil
	}

	entries, err := e.moods.ListMoodEntries(ctx, subjectID, since, until)
	if err != nil {
		return nil, fmt.Errorf("%w: mood entries: %w", ErrFetchFailed, err)
	}
	return entries, nil
}

func averageScore(entries []models.MoodEntry) float64 {
	total := 0
	for _, e := range entries {
		total += ScoreOf(e.Mood)
	}
	return float64(total) / float64(len(entries))
}

// recentMoods returns up to limit entries, newest first.
func recentMoods(entries []models.MoodEntry, limit int) []RecentMood {
	sorted := make([]models.MoodEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	recent := make([]RecentMood, 0, len(sorted))
	for _, e := range sorted {
		recent = append(recent, RecentMood{
			Mood:       e.Mood,
			Score:      ScoreOf(e.Mood),
			RecordedAt: e.RecordedAt,
		})
	}
	return recent
}
