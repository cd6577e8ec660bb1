package entities

import "time"

// Mode is the kind of game a session was played in.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
	ModeDaily  Mode = "daily"
)

// Timed reports whether questions in this mode run against a countdown.
func (m Mode) Timed() bool {
	return m == ModeSingle || m == ModeDaily
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeSingle, ModeMulti, ModeDaily:
		return true
	default:
		return false
	}
}

// SkippedIndex is the selected index recorded for skipped or timed-out questions.
const SkippedIndex = -1

// AnswerRecord is the outcome of one question. It is never mutated once appended.
type AnswerRecord struct {
	QuestionIndex int      `json:"questionIndex" validate:"gte=0"`
	Category      Category `json:"questionType" validate:"required"`
	Difficulty    float64  `json:"difficulty" validate:"gte=0,lte=1"`
	SelectedIndex int      `json:"userAnswer" validate:"gte=-1"`
	CorrectIndex  int      `json:"correctAnswer" validate:"gte=0"`
	IsCorrect     bool     `json:"isCorrect"`
	ResponseTime  float64  `json:"responseTime" validate:"gte=0"` // seconds, 0 when skipped
}

// Skipped reports whether the question was skipped or timed out.
func (a AnswerRecord) Skipped() bool {
	return a.SelectedIndex == SkippedIndex
}

// CategoryMastery is the per-category tally shown after a session.
type CategoryMastery struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Mastery int `json:"mastery"` // percentage 0-100
}

// SessionResult is produced once per completed session and is immutable afterwards.
type SessionResult struct {
	Mode            Mode                         `json:"mode" validate:"required"`
	Score           int                          `json:"score" validate:"gte=0"`
	Accuracy        float64                      `json:"accuracy" validate:"gte=0,lte=1"`
	AvgResponseTime float64                      `json:"avgResponseTime" validate:"gte=0"`
	TotalTime       float64                      `json:"totalTime" validate:"gte=0"`
	Mastery         map[Category]CategoryMastery `json:"typeMastery"`
	Coins           int                          `json:"coins" validate:"gte=0"`
	XP              int                          `json:"xp" validate:"gte=0"`
	Date            time.Time                    `json:"date" validate:"required"`
	Answers         []AnswerRecord               `json:"answers" validate:"required,min=1,dive"`
}

// CorrectCount returns how many answers in the result were correct.
func (r *SessionResult) CorrectCount() int {
	n := 0
	for _, a := range r.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// Summary trims the result to the entry kept in the performance log.
func (r *SessionResult) Summary() PerformanceSummary {
	return PerformanceSummary{
		Date:            r.Date,
		Score:           r.Score,
		Accuracy:        r.Accuracy,
		AvgResponseTime: r.AvgResponseTime,
	}
}
