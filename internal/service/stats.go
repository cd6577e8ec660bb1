package service

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

var ErrInvalidSessionResult = errors.New("invalid session result")

// StatsStore owns a user's RollingStats. Nothing else writes them.
type StatsStore struct {
	mu       sync.RWMutex
	stats    entities.RollingStats
	validate *validator.Validate
}

// NewStatsStore creates a store seeded with previously persisted statistics.
func NewStatsStore(initial entities.RollingStats) *StatsStore {
	initial.HistoricalPerformance = slices.Clone(initial.HistoricalPerformance)
	if n := len(initial.HistoricalPerformance); n > entities.MaxHistory {
		initial.HistoricalPerformance = initial.HistoricalPerformance[n-entities.MaxHistory:]
	}

	return &StatsStore{
		stats:    initial,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Snapshot returns a copy of the current statistics.
func (s *StatsStore) Snapshot() entities.RollingStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.stats
	out.HistoricalPerformance = slices.Clone(s.stats.HistoricalPerformance)
	return out
}

// RecordSession folds a finished session into the statistics.
// Malformed results are rejected before anything is changed.
func (s *StatsStore) RecordSession(result *entities.SessionResult) error {
	if result == nil {
		return fmt.Errorf("%w: nil result", ErrInvalidSessionResult)
	}
	if err := s.validate.Struct(result); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSessionResult, err)
	}
	for i, a := range result.Answers {
		if a.IsCorrect && a.SelectedIndex != a.CorrectIndex {
			return fmt.Errorf("%w: answer %d marked correct with a wrong option", ErrInvalidSessionResult, i)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.stats
	st.TotalGames++
	st.TotalScore += result.Score
	st.BestScore = max(st.BestScore, result.Score)
	st.TotalCorrect += result.CorrectCount()
	st.TotalQuestions += len(result.Answers)

	// A session without timed answers has no average and leaves the running one unchanged.
	if sessionAvg, ok := timedAverage(result.Answers); ok {
		n := float64(st.TotalGames)
		st.AverageResponseTime = st.AverageResponseTime*(n-1)/n + sessionAvg/n
	}

	st.HistoricalPerformance = append(st.HistoricalPerformance, result.Summary())
	if n := len(st.HistoricalPerformance); n > entities.MaxHistory {
		st.HistoricalPerformance = slices.Clone(st.HistoricalPerformance[n-entities.MaxHistory:])
	}

	return nil
}

func timedAverage(answers []entities.AnswerRecord) (float64, bool) {
	sum, n := 0.0, 0
	for _, a := range answers {
		if a.ResponseTime > 0 {
			sum += a.ResponseTime
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
