package entities

import (
	"slices"
	"time"
)

// Phase is the state of the session scorer.
type Phase int

const (
	PhaseIdle           Phase = iota // no session running
	PhaseInProgress                  // session created, first question not shown yet
	PhaseAwaitingAnswer              // question shown, countdown running
	PhaseScoring                     // answer scored, feedback being displayed
	PhaseFinalizing                  // all questions done, result being computed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in_progress"
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseScoring:
		return "scoring"
	case PhaseFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

// GameSession is the session-scoped state owned by the scorer.
// Transitions take a value and return a new one.
type GameSession struct {
	Mode              Mode
	Phase             Phase
	Generation        uint64 // bumped on every question transition, guards timer callbacks
	Difficulty        float64
	Questions         []Question
	QuestionIndex     int
	Answers           []AnswerRecord
	Score             int
	Streak            int
	TotalCorrect      int
	StartedAt         time.Time
	QuestionStartedAt time.Time
}

// Active reports whether a session is running.
func (s GameSession) Active() bool {
	return s.Phase != PhaseIdle
}

// CurrentQuestion returns the question being played, if any.
func (s GameSession) CurrentQuestion() (Question, bool) {
	if s.QuestionIndex < 0 || s.QuestionIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.QuestionIndex], true
}

// IsLastQuestion reports whether the current question is the final one.
func (s GameSession) IsLastQuestion() bool {
	return s.QuestionIndex == len(s.Questions)-1
}

// Clone returns a copy that shares no slices with s.
func (s GameSession) Clone() GameSession {
	s.Questions = slices.Clone(s.Questions)
	s.Answers = slices.Clone(s.Answers)
	return s
}
