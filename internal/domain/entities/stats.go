package entities

import "time"

// MaxHistory is the number of performance summaries kept in RollingStats.
const MaxHistory = 50

// PerformanceSummary is the trimmed view of a session kept in the history log.
type PerformanceSummary struct {
	Date            time.Time `json:"date"`
	Score           int       `json:"score"`
	Accuracy        float64   `json:"accuracy"`
	AvgResponseTime float64   `json:"avgResponseTime"`
}

// RollingStats holds the cross-session aggregates of a user.
type RollingStats struct {
	TotalGames            int                  `json:"totalGames"`
	TotalCorrect          int                  `json:"totalCorrect"`
	TotalQuestions        int                  `json:"totalQuestions"`
	TotalScore            int                  `json:"totalScore"`
	BestScore             int                  `json:"bestScore"`
	AverageResponseTime   float64              `json:"averageResponseTime"`
	HistoricalPerformance []PerformanceSummary `json:"historicalPerformance"`
}

// AverageAccuracy is derived from the totals; zero before the first question.
func (s RollingStats) AverageAccuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalQuestions)
}

// Trends holds signed improvement signals derived from recent history.
type Trends struct {
	Score        float64   `json:"score"`
	Accuracy     float64   `json:"accuracy"`
	ResponseTime float64   `json:"responseTime"` // negated: positive means getting faster
	LastUpdated  time.Time `json:"lastUpdated"`
}
