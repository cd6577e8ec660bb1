package entities

import "time"

// DateLayout is the calendar-date format used to key daily challenges.
const DateLayout = "2006-01-02"

// DailyChallenge is the fixed question set for one calendar day.
type DailyChallenge struct {
	Date        string     `json:"date"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// ChallengeDate formats t as the UTC calendar date a challenge is keyed by.
func ChallengeDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
