package analytics

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const MaxInsights = 3

type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneWarning  Tone = "warning"
)

// Insight is one human-readable observation about a snapshot.
type Insight struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Tone    Tone   `json:"tone"`
}

// NarrationInput is the slice of a snapshot the rules look at.
type NarrationInput struct {
	Permissions     PermissionSet
	WellnessScore   *int
	CurrentStreak   int
	TopFactor       string
	LatestRiskLevel *string
}

// Rule produces an insight when Applies holds.
type Rule struct {
	Name    string
	Applies func(in NarrationInput) bool
	Produce func(in NarrationInput) Insight
}

var elevatedRiskLevels = []string{"high", "severe", "critical"}

var factorPolicy = bluemonday.StrictPolicy()

// DefaultRules returns the narrator rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "wellness",
			Applies: func(in NarrationInput) bool {
				return in.Permissions.AllowWellness && in.WellnessScore != nil
			},
			Produce: wellnessInsight,
		},
		{
			Name: "streak",
			Applies: func(in NarrationInput) bool {
				return in.Permissions.AllowTrends && in.CurrentStreak >= 3
			},
			Produce: func(in NarrationInput) Insight {
				return Insight{
					Title:   "Streak celebration",
					Message: fmt.Sprintf("%d days in a row of steady or better moods.", in.CurrentStreak),
					Tone:    TonePositive,
				}
			},
		},
		{
			Name: "top_factor",
			Applies: func(in NarrationInput) bool {
				return in.Permissions.AllowTrends && in.TopFactor != ""
			},
			Produce: func(in NarrationInput) Insight {
				return Insight{
					Title:   "Top factor",
					Message: fmt.Sprintf("\u201c%s\u201d comes up most often in recent check-ins.", sanitizeFactor(in.TopFactor)),
					Tone:    ToneNeutral,
				}
			},
		},
		{
			Name: "alert_spotlight",
			Applies: func(in NarrationInput) bool {
				return in.LatestRiskLevel != nil && IsElevatedRisk(*in.LatestRiskLevel)
			},
			Produce: func(in NarrationInput) Insight {
				return Insight{
					Title:   "Alert spotlight",
					Message: fmt.Sprintf("The latest risk evaluation is %s. A check-in soon could help.", strings.ToLower(*in.LatestRiskLevel)),
					Tone:    ToneWarning,
				}
			},
		},
	}
}

// Narrate evaluates rules in order and stops after MaxInsights. When no rule
// fires it returns the single "Stay connected" fallback.
func Narrate(in NarrationInput, rules []Rule) []Insight {
	insights := make([]Insight, 0, MaxInsights)
	for _, rule := range rules {
		if len(insights) == MaxInsights {
			break
		}
		if rule.Applies(in) {
			insights = append(insights, rule.Produce(in))
		}
	}

	if len(insights) == 0 {
		insights = append(insights, Insight{
			Title:   "Stay connected",
			Message: "There is not much to report yet. Regular check-ins keep everyone in the loop.",
			Tone:    ToneNeutral,
		})
	}
	return insights
}

// IsElevatedRisk reports whether a risk level should be spotlighted.
func IsElevatedRisk(level string) bool {
	for _, l := range elevatedRiskLevels {
		if strings.EqualFold(strings.TrimSpace(level), l) {
			return true
		}
	}
	return false
}

func wellnessInsight(in NarrationInput) Insight {
	score := *in.WellnessScore
	switch {
	case score >= 75:
		return Insight{
			Title:   "Positive momentum",
			Message: fmt.Sprintf("Wellness score is %d. Recent check-ins are trending in a good direction.", score),
			Tone:    TonePositive,
		}
	case score >= 55:
		return Insight{
			Title:   "Steady but watchful",
			Message: fmt.Sprintf("Wellness score is %d. Things look steady, keep an eye on changes.", score),
			Tone:    ToneNeutral,
		}
	default:
		return Insight{
			Title:   "Needs extra support",
			Message: fmt.Sprintf("Wellness score is %d. This may be a good time to reach out.", score),
			Tone:    ToneWarning,
		}
	}
}

// sanitizeFactor strips markup from a free-text tag before it is quoted.
func sanitizeFactor(tag string) string {
	s := html.UnescapeString(factorPolicy.Sanitize(tag))
	return strings.Join(strings.Fields(s), " ")
}
