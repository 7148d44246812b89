package analytics

import (
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
)

// WeekdayIndex maps a time to a Monday-first bucket index: Monday=0 .. Sunday=6.
// time.Weekday counts Sunday as 0, so Sunday wraps to the end.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeeklyAverages buckets entries by weekday in loc and returns the mean score
// of each bucket rounded to two decimals, or 0 for empty buckets.
func WeeklyAverages(entries []models.MoodEntry, loc *time.Location) []float64 {
	var sums [7]float64
	var counts [7]int

	for _, e := range entries {
		idx := WeekdayIndex(e.RecordedAt.In(loc))
		sums[idx] += float64(ScoreOf(e.Mood))
		counts[idx]++
	}

	averages := make([]float64, 7)
	for i := range averages {
		if counts[i] > 0 {
			averages[i] = round2(sums[i] / float64(counts[i]))
		}
	}
	return averages
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
