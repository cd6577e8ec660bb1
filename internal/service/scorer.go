package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

var ErrUnknownMode = errors.New("unknown game mode")

const defaultHint = "Look for the key facts in the question and rule out the clearly wrong options."

// ScorerConfig holds the timing and cost constants of a session.
type ScorerConfig struct {
	QuestionTimeLimit  time.Duration // countdown for timed modes
	AnswerDisplayDelay time.Duration // feedback pause after an answer
	HintCost           int
}

// DefaultScorerConfig returns the standard game timings.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		QuestionTimeLimit:  30 * time.Second,
		AnswerDisplayDelay: 2 * time.Second,
		HintCost:           50,
	}
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules callbacks on real timers.
func SystemScheduler() Scheduler {
	return systemScheduler{}
}

// ScorerOption customises a Scorer.
type ScorerOption func(*Scorer)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) ScorerOption {
	return func(sc *Scorer) { sc.scheduler = s }
}

// WithClock replaces the time source.
func WithClock(c Clock) ScorerOption {
	return func(sc *Scorer) { sc.clock = c }
}

// Scorer owns the single running game session. Timer callbacks carry the
// session generation they were scheduled for and do nothing once it moved on.
type Scorer struct {
	mu        sync.Mutex
	state     entities.GameSession
	countdown Timer
	delay     Timer

	generator QuestionGenerator
	planner   SessionPlanner
	observer  SessionObserver
	wallet    Wallet
	scheduler Scheduler
	clock     Clock
	cfg       ScorerConfig
	logger    *zap.Logger
}

// NewScorer creates an idle scorer.
func NewScorer(
	generator QuestionGenerator,
	planner SessionPlanner,
	observer SessionObserver,
	wallet Wallet,
	cfg ScorerConfig,
	logger *zap.Logger,
	opts ...ScorerOption,
) *Scorer {
	s := &Scorer{
		state:     entities.GameSession{Phase: entities.PhaseIdle},
		generator: generator,
		planner:   planner,
		observer:  observer,
		wallet:    wallet,
		scheduler: SystemScheduler(),
		clock:     time.Now,
		cfg:       cfg,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartGame replaces any running session with a fresh one of count questions
// at the difficulty estimated from the player's statistics.
func (s *Scorer) StartGame(mode entities.Mode, count int) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if count <= 0 {
		return ErrInvalidQuestionCount
	}

	difficulty := EstimateDifficulty(s.planner.DifficultyInput())
	questions, err := buildQuestions(s.generator, s.planner.CategoryPlan(), difficulty, count)
	if err != nil {
		return fmt.Errorf("build questions: %w", err)
	}

	s.logger.Info("starting game",
		zap.String("mode", string(mode)),
		zap.Int("questions", count),
		zap.Float64("difficulty", difficulty),
	)

	return s.start(mode, difficulty, questions)
}

// StartWithQuestions starts a session over a fixed question set, such as the daily challenge.
func (s *Scorer) StartWithQuestions(mode entities.Mode, questions []entities.Question) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	difficulty := 0.0
	for _, q := range questions {
		difficulty += q.Difficulty
	}
	if len(questions) > 0 {
		difficulty /= float64(len(questions))
	}

	return s.start(mode, difficulty, questions)
}

func (s *Scorer) start(mode entities.Mode, difficulty float64, questions []entities.Question) error {
	s.mu.Lock()

	next, err := startSession(mode, difficulty, questions, s.state.Generation+1, s.clock())
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.stopTimersLocked()
	s.state = next
	events := []func(){s.presentLocked()}

	s.mu.Unlock()
	dispatch(events)

	return nil
}

// SubmitAnswer scores the selected option. It is rejected unless a question
// is awaiting an answer.
func (s *Scorer) SubmitAnswer(selected int) (AnswerOutcome, error) {
	s.mu.Lock()

	next, out, err := submitAnswer(s.state, selected, s.clock())
	if err != nil {
		s.mu.Unlock()
		return AnswerOutcome{}, err
	}

	s.stop(&s.countdown)
	s.state = next

	gen := next.Generation
	s.mu.Unlock()

	// The delay is armed only after the outcome is delivered, so observers
	// never see the next question before the answer that led to it.
	s.observer.AnswerRecorded(out)

	s.mu.Lock()
	if s.state.Generation == gen && s.state.Phase == entities.PhaseScoring {
		s.delay = s.scheduler.AfterFunc(s.cfg.AnswerDisplayDelay, func() { s.onDisplayDelay(gen) })
	}
	s.mu.Unlock()

	return out, nil
}

// SkipQuestion records the current question as skipped and moves on immediately.
func (s *Scorer) SkipQuestion() (AnswerOutcome, error) {
	s.mu.Lock()
	out, events, err := s.skipLocked(false)
	s.mu.Unlock()

	if err != nil {
		return AnswerOutcome{}, err
	}
	dispatch(events)

	return out, nil
}

// RequestHint charges the hint cost and returns the hint of the current question.
func (s *Scorer) RequestHint() (string, error) {
	// The wallet never calls back into the scorer, so the charge is made
	// under the lock and cannot land on a question that has already moved on.
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.state.CurrentQuestion()
	if s.state.Phase != entities.PhaseAwaitingAnswer || !ok {
		return "", ErrInvalidTransition
	}

	if err := s.wallet.DeductCoins(s.cfg.HintCost); err != nil {
		return "", err
	}

	if q.Hint == "" {
		return defaultHint, nil
	}
	return q.Hint, nil
}

// Abort drops the running session without a result.
func (s *Scorer) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Active() {
		return ErrNoActiveSession
	}

	s.stopTimersLocked()
	s.state = abortSession(s.state)
	s.logger.Info("session aborted")

	return nil
}

// State returns a copy of the current session state.
func (s *Scorer) State() entities.GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// TimeLeft returns the remaining countdown of the current question,
// or zero when no countdown is running.
func (s *Scorer) TimeLeft() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != entities.PhaseAwaitingAnswer || !s.state.Mode.Timed() {
		return 0
	}
	return max(0, s.cfg.QuestionTimeLimit-s.clock().Sub(s.state.QuestionStartedAt))
}

func (s *Scorer) onCountdown(gen uint64) {
	s.mu.Lock()
	if s.state.Generation != gen {
		s.mu.Unlock()
		s.logger.Debug("stale countdown ignored", zap.Uint64("generation", gen))
		return
	}

	_, events, err := s.skipLocked(true)
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("countdown skip rejected", zap.Error(err))
		return
	}
	dispatch(events)
}

func (s *Scorer) onDisplayDelay(gen uint64) {
	s.mu.Lock()
	if s.state.Generation != gen || s.state.Phase != entities.PhaseScoring {
		s.mu.Unlock()
		s.logger.Debug("stale display delay ignored", zap.Uint64("generation", gen))
		return
	}

	s.delay = nil
	s.state = advance(s.state, s.clock())
	events := []func(){s.continueLocked()}
	s.mu.Unlock()

	dispatch(events)
}

func (s *Scorer) skipLocked(timedOut bool) (AnswerOutcome, []func(), error) {
	next, out, err := skipQuestion(s.state, s.clock())
	if err != nil {
		return AnswerOutcome{}, nil, err
	}
	out.TimedOut = timedOut

	s.stop(&s.countdown)
	s.state = next

	events := []func(){
		func() { s.observer.AnswerRecorded(out) },
		s.continueLocked(),
	}
	return out, events, nil
}

// continueLocked presents the next question or finalizes, depending on the phase.
func (s *Scorer) continueLocked() func() {
	if s.state.Phase == entities.PhaseFinalizing {
		return s.finalizeLocked()
	}
	return s.presentLocked()
}

func (s *Scorer) presentLocked() func() {
	q, _ := s.state.CurrentQuestion()
	index, total := s.state.QuestionIndex, len(s.state.Questions)

	var limit time.Duration
	if s.state.Mode.Timed() {
		limit = s.cfg.QuestionTimeLimit
		gen := s.state.Generation
		s.countdown = s.scheduler.AfterFunc(limit, func() { s.onCountdown(gen) })
	}

	return func() { s.observer.QuestionPresented(q, index, total, limit) }
}

func (s *Scorer) finalizeLocked() func() {
	idle, result, err := finalize(s.state, s.clock())
	if err != nil {
		s.logger.Error("finalize session", zap.Error(err))
		return func() {}
	}

	s.stopTimersLocked()
	s.state = idle

	s.logger.Info("session finished",
		zap.String("mode", string(result.Mode)),
		zap.Int("score", result.Score),
		zap.Float64("accuracy", result.Accuracy),
	)

	return func() { s.observer.SessionFinished(result) }
}

func (s *Scorer) stopTimersLocked() {
	s.stop(&s.countdown)
	s.stop(&s.delay)
}

func (s *Scorer) stop(t *Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

func dispatch(events []func()) {
	for _, e := range events {
		e()
	}
}
