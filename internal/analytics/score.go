package analytics

import "github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"

// QualifyingScore is the lowest score that counts as a non-negative mood.
const QualifyingScore = 3

var moodScores = map[string]int{
	models.MoodHappy:   5,
	models.MoodNeutral: 3,
	models.MoodSad:     2,
	models.MoodAngry:   1,
	models.MoodTired:   2,
}

// ScoreOf maps a mood label to the 1-5 scale. Unknown labels score as neutral.
func ScoreOf(mood string) int {
	if score, ok := moodScores[mood]; ok {
		return score
	}
	return moodScores[models.MoodNeutral]
}
