package service

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

var (
	ErrInvalidTransition    = errors.New("operation not allowed in current session state")
	ErrNoActiveSession      = errors.New("no active session")
	ErrInvalidOption        = errors.New("selected option does not exist")
	ErrInvalidQuestionCount = errors.New("question count must be positive")
)

const (
	basePoints       = 100
	timeBonusWindow  = 30.0 // seconds
	timeBonusPerSec  = 2
	streakBonusStep  = 10
	streakBonusLimit = 50

	coinScoreDivisor   = 10
	xpScoreDivisor     = 5
	xpTimeBudget       = 300.0 // seconds
	xpTimeBonusPerSec  = 0.1
	accuracyCoinFactor = 100
)

// AnswerOutcome describes how a single question was resolved.
type AnswerOutcome struct {
	Record      entities.AnswerRecord
	Points      int
	TimeBonus   int
	StreakBonus int
	Streak      int
	TimedOut    bool
	Last        bool // the session has no more questions
	Explanation string
}

// Outcome labels used for metrics.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeSkipped   = "skipped"
	OutcomeTimeout   = "timeout"
)

// Label classifies the outcome.
func (o AnswerOutcome) Label() string {
	switch {
	case o.TimedOut:
		return OutcomeTimeout
	case o.Record.Skipped():
		return OutcomeSkipped
	case o.Record.IsCorrect:
		return OutcomeCorrect
	default:
		return OutcomeIncorrect
	}
}

// QuestionScore returns the points for a correct answer given the streak
// after counting it.
func QuestionScore(difficulty, responseTime float64, streak int) (points, timeBonus, streakBonus int) {
	base := int(math.Round(basePoints * difficulty))
	timeBonus = max(0, int(math.Round(timeBonusWindow-responseTime))*timeBonusPerSec)
	streakBonus = min(streak*streakBonusStep, streakBonusLimit)
	return base + timeBonus + streakBonus, timeBonus, streakBonus
}

// SessionRewards returns the coins and XP earned for a finished session.
func SessionRewards(score int, accuracy, totalTime float64) (coins, xp int) {
	coins = int(math.Round(float64(score)/coinScoreDivisor)) + int(math.Round(accuracy*accuracyCoinFactor))
	timeBonus := max(0, math.Round(xpTimeBudget-totalTime)*xpTimeBonusPerSec)
	xp = int(math.Round(float64(score)/xpScoreDivisor + timeBonus))
	return coins, xp
}

// startSession resets all session-scoped state and presents the first question.
func startSession(
	mode entities.Mode,
	difficulty float64,
	questions []entities.Question,
	generation uint64,
	now time.Time,
) (entities.GameSession, error) {
	if len(questions) == 0 {
		return entities.GameSession{}, ErrInvalidQuestionCount
	}

	s := entities.GameSession{
		Mode:       mode,
		Phase:      entities.PhaseInProgress,
		Generation: generation,
		Difficulty: difficulty,
		Questions:  slices.Clone(questions),
		Answers:    make([]entities.AnswerRecord, 0, len(questions)),
		StartedAt:  now,
	}

	return presentQuestion(s, 0, now), nil
}

func presentQuestion(s entities.GameSession, index int, now time.Time) entities.GameSession {
	s.Phase = entities.PhaseAwaitingAnswer
	s.QuestionIndex = index
	s.QuestionStartedAt = now
	s.Generation++
	return s
}

// submitAnswer scores the selected option for the current question.
func submitAnswer(s entities.GameSession, selected int, now time.Time) (entities.GameSession, AnswerOutcome, error) {
	if s.Phase != entities.PhaseAwaitingAnswer {
		return s, AnswerOutcome{}, ErrInvalidTransition
	}

	q, ok := s.CurrentQuestion()
	if !ok {
		return s, AnswerOutcome{}, ErrInvalidTransition
	}
	if !q.HasOption(selected) {
		return s, AnswerOutcome{}, fmt.Errorf("%w: %d", ErrInvalidOption, selected)
	}

	responseTime := max(0, now.Sub(s.QuestionStartedAt).Seconds())
	rec := entities.AnswerRecord{
		QuestionIndex: s.QuestionIndex,
		Category:      q.Category,
		Difficulty:    q.Difficulty,
		SelectedIndex: selected,
		CorrectIndex:  q.CorrectIndex,
		IsCorrect:     selected == q.CorrectIndex,
		ResponseTime:  responseTime,
	}

	out := AnswerOutcome{Record: rec, Last: s.IsLastQuestion(), Explanation: q.Explanation}

	if rec.IsCorrect {
		s.Streak++
		s.TotalCorrect++
		out.Points, out.TimeBonus, out.StreakBonus = QuestionScore(q.Difficulty, responseTime, s.Streak)
		s.Score += out.Points
	} else {
		s.Streak = 0
	}
	out.Streak = s.Streak

	s.Answers = append(slices.Clip(s.Answers), rec)
	s.Phase = entities.PhaseScoring
	s.Generation++

	return s, out, nil
}

// skipQuestion records the current question as skipped and moves on at once.
func skipQuestion(s entities.GameSession, now time.Time) (entities.GameSession, AnswerOutcome, error) {
	if s.Phase != entities.PhaseAwaitingAnswer {
		return s, AnswerOutcome{}, ErrInvalidTransition
	}

	q, ok := s.CurrentQuestion()
	if !ok {
		return s, AnswerOutcome{}, ErrInvalidTransition
	}

	rec := entities.AnswerRecord{
		QuestionIndex: s.QuestionIndex,
		Category:      q.Category,
		Difficulty:    q.Difficulty,
		SelectedIndex: entities.SkippedIndex,
		CorrectIndex:  q.CorrectIndex,
	}
	out := AnswerOutcome{Record: rec, Last: s.IsLastQuestion(), Explanation: q.Explanation}

	s.Answers = append(slices.Clip(s.Answers), rec)
	s.Streak = 0
	s.Generation++

	s = advance(s, now)
	return s, out, nil
}

// advance moves past a resolved question to the next one or to finalization.
func advance(s entities.GameSession, now time.Time) entities.GameSession {
	if s.IsLastQuestion() {
		s.Phase = entities.PhaseFinalizing
		s.Generation++
		return s
	}
	return presentQuestion(s, s.QuestionIndex+1, now)
}

// finalize computes the session result and returns the scorer to idle.
func finalize(s entities.GameSession, now time.Time) (entities.GameSession, entities.SessionResult, error) {
	if s.Phase != entities.PhaseFinalizing {
		return s, entities.SessionResult{}, ErrInvalidTransition
	}

	accuracy := 0.0
	if len(s.Questions) > 0 {
		accuracy = float64(s.TotalCorrect) / float64(len(s.Questions))
	}

	avgResponseTime := 0.0
	answered := 0
	for _, a := range s.Answers {
		if a.Skipped() {
			continue
		}
		avgResponseTime += a.ResponseTime
		answered++
	}
	if answered > 0 {
		avgResponseTime /= float64(answered)
	}

	totalTime := max(0, now.Sub(s.StartedAt).Seconds())
	coins, xp := SessionRewards(s.Score, accuracy, totalTime)

	result := entities.SessionResult{
		Mode:            s.Mode,
		Score:           s.Score,
		Accuracy:        accuracy,
		AvgResponseTime: avgResponseTime,
		TotalTime:       totalTime,
		Mastery:         SessionMastery(s.Answers),
		Coins:           coins,
		XP:              xp,
		Date:            now,
		Answers:         slices.Clone(s.Answers),
	}

	idle := entities.GameSession{Phase: entities.PhaseIdle, Generation: s.Generation + 1}
	return idle, result, nil
}

// abortSession drops the running session without producing a result.
func abortSession(s entities.GameSession) entities.GameSession {
	return entities.GameSession{Phase: entities.PhaseIdle, Generation: s.Generation + 1}
}

// buildQuestions generates count questions cycling through the category plan.
// Difficulty rises slightly towards the end of the session and is clamped to
// each category's range.
func buildQuestions(
	gen QuestionGenerator,
	plan []entities.Category,
	difficulty float64,
	count int,
) ([]entities.Question, error) {
	if count <= 0 {
		return nil, ErrInvalidQuestionCount
	}
	if len(plan) == 0 {
		plan = entities.AllCategories()
	}

	questions := make([]entities.Question, 0, count)
	for i := 0; i < count; i++ {
		category := plan[i%len(plan)]
		progressive := difficulty * (1 + float64(i)/float64(count*2))
		d := category.ClampDifficulty(progressive)

		q, err := gen.Generate(category, d)
		if err != nil {
			return nil, fmt.Errorf("generate %s question: %w", category, err)
		}
		q.Category = category
		q.Difficulty = d

		questions = append(questions, q)
	}

	return questions, nil
}
