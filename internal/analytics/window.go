package analytics

import (
	"strconv"
	"strings"
	"time"
)

const (
	SelfDefaultWindowDays      = 7
	SupporterDefaultWindowDays = 30

	// Longest window a token may request, per unit.
	MaxWindowDays   = 3650
	MaxWindowMonths = 120
	MaxWindowYears  = 10
)

// ResolveWindow turns a relative range token such as "7d", "3m" or "1y" into
// the absolute lower bound of the window ending at now.
//
// A token without a leading count, or with a zero count, resolves to
// defaultDays. A count followed by an unknown or missing unit is read as days.
// Counts beyond ten years are clamped to ten years.
func ResolveWindow(token string, now time.Time, defaultDays int) time.Time {
	token = strings.TrimSpace(token)

	end := 0
	for end < len(token) && token[end] >= '0' && token[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(token[:end])
	if err != nil || n <= 0 {
		return now.AddDate(0, 0, -defaultDays)
	}

	switch strings.ToLower(token[end:]) {
	case "m":
		return now.AddDate(0, -min(n, MaxWindowMonths), 0)
	case "y":
		return now.AddDate(-min(n, MaxWindowYears), 0, 0)
	default:
		return now.AddDate(0, 0, -min(n, MaxWindowDays))
	}
}

// DefaultWindowToken renders a day count as a window token.
func DefaultWindowToken(days int) string {
	return strconv.Itoa(days) + "d"
}
