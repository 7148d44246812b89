package analytics

import (
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
)

// CurrentStreak counts the most recent consecutive calendar days (in loc) whose
// mood qualifies as non-negative.
//
// Entries are walked newest first. A day counts once, as soon as any of its
// entries scores at least QualifyingScore; further entries on that day are
// skipped. The walk stops at the first day with no qualifying entry or at the
// first gap between days.
func CurrentStreak(entries []models.MoodEntry, loc *time.Location) int {
	sorted := make([]models.MoodEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
	})

	streak := 0
	var prevDay time.Time
	started := false
	dayQualified := false

	for _, e := range sorted {
		day := dayKey(e.RecordedAt, loc)

		if started && day.Equal(prevDay) {
			if !dayQualified && ScoreOf(e.Mood) >= QualifyingScore {
				dayQualified = true
				streak++
			}
			continue
		}

		if started {
			if !dayQualified || !day.Equal(prevDay.AddDate(0, 0, -1)) {
				break
			}
		}

		prevDay = day
		started = true
		dayQualified = ScoreOf(e.Mood) >= QualifyingScore
		if dayQualified {
			streak++
		}
	}

	return streak
}

// dayKey truncates t to local midnight in loc.
func dayKey(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
