package analytics

import (
	"sort"
	"strings"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
)

const TopFactorLimit = 4

// LabelCount is one row of a ranked frequency table.
type LabelCount struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// MoodDistribution tallies literal mood labels, most frequent first.
func MoodDistribution(entries []models.MoodEntry) []LabelCount {
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Mood)
	}
	return rankCounts(labels)
}

// TopFactors tallies contributing-factor tags across entries and keeps the
// TopFactorLimit most frequent. Blank tags are ignored.
func TopFactors(entries []models.MoodEntry) []LabelCount {
	var tags []string
	for _, e := range entries {
		for _, tag := range e.Factors {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			tags = append(tags, tag)
		}
	}

	ranked := rankCounts(tags)
	if len(ranked) > TopFactorLimit {
		ranked = ranked[:TopFactorLimit]
	}
	return ranked
}

// rankCounts sorts by count descending; ties keep first-encounter order.
func rankCounts(labels []string) []LabelCount {
	ranked := make([]LabelCount, 0)
	index := make(map[string]int)

	for _, label := range labels {
		if i, ok := index[label]; ok {
			ranked[i].Value++
			continue
		}
		index[label] = len(ranked)
		ranked = append(ranked, LabelCount{Label: label, Value: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	return ranked
}
