package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
	"github.com/aliskhannn/logic-master/internal/repository"
)

const defaultSaveTimeout = 5 * time.Second

// GameService owns the player's profile and reacts to scorer events.
// It plans new sessions, pays for hints and folds finished sessions into
// the persisted profile.
type GameService struct {
	mu      sync.Mutex
	profile *entities.UserProfile
	stats   *StatsStore

	repo     ProfileRepository
	notifier Notifier
	renderer Renderer
	metrics  GameMetrics
	clock    Clock
	logger   *zap.Logger

	saveTimeout time.Duration
}

// NewGameService creates a service holding a fresh profile until Init loads the stored one.
func NewGameService(
	repo ProfileRepository,
	notifier Notifier,
	renderer Renderer,
	metrics GameMetrics,
	logger *zap.Logger,
) *GameService {
	profile := entities.NewUserProfile(time.Now())
	return &GameService{
		profile:     profile,
		stats:       NewStatsStore(profile.Stats),
		repo:        repo,
		notifier:    notifier,
		renderer:    renderer,
		metrics:     metrics,
		clock:       time.Now,
		logger:      logger,
		saveTimeout: defaultSaveTimeout,
	}
}

// SetClock replaces the time source.
func (s *GameService) SetClock(c Clock) {
	s.clock = c
}

// Init loads the stored profile. A missing or corrupted profile is replaced
// by a fresh default one, which is saved right away.
func (s *GameService) Init(ctx context.Context) error {
	now := s.clock()

	profile, err := s.repo.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrProfileNotFound):
		s.logger.Info("no stored profile, creating a new one")
		profile = entities.NewUserProfile(now)
	case errors.Is(err, repository.ErrProfileCorrupted):
		s.logger.Warn("stored profile is corrupted, starting over", zap.Error(err))
		profile = entities.NewUserProfile(now)
	default:
		return fmt.Errorf("load profile: %w", err)
	}

	profile.LastLogin = now

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = profile
	s.stats = NewStatsStore(profile.Stats)

	if err := s.repo.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	s.logger.Info("profile loaded",
		zap.String("profile_id", profile.ID),
		zap.Int("level", profile.Level),
		zap.Int("games", profile.Stats.TotalGames),
	)

	return nil
}

// Profile returns a copy of the current profile.
func (s *GameService) Profile() entities.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// DifficultyInput implements SessionPlanner.
func (s *GameService) DifficultyInput() DifficultyInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildDifficultyInput(s.stats.Snapshot(), s.profile.LearningProfile)
}

// CategoryPlan implements SessionPlanner.
func (s *GameService) CategoryPlan() []entities.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RecommendCategories(s.profile.LearningProfile)
}

// DeductCoins implements Wallet. The new balance is saved immediately.
func (s *GameService) DeductCoins(amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.profile.DeductCoins(amount); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.repo.Save(ctx, s.profile); err != nil {
		s.logger.Error("failed to save profile after purchase", zap.Error(err))
	}

	return nil
}

// QuestionPresented implements SessionObserver.
func (s *GameService) QuestionPresented(q entities.Question, index, total int, timeLimit time.Duration) {
	s.renderer.RenderQuestion(q, index, total, timeLimit)
}

// AnswerRecorded implements SessionObserver.
func (s *GameService) AnswerRecorded(outcome AnswerOutcome) {
	s.metrics.AnswerRecorded(outcome.Label())
	s.renderer.RenderOutcome(outcome)
}

// SessionFinished implements SessionObserver.
func (s *GameService) SessionFinished(result entities.SessionResult) {
	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.FinishSession(ctx, &result); err != nil {
		s.logger.Error("failed to finish session", zap.Error(err))
		s.notifier.Notify(ctx, "The game result could not be recorded.", entities.SeverityError)
	}
}

// FinishSession folds a finished session into the profile, saves it and
// reports the result. Only a malformed result is returned as an error;
// save failures are logged and notified.
func (s *GameService) FinishSession(ctx context.Context, result *entities.SessionResult) error {
	s.mu.Lock()

	if err := s.stats.RecordSession(result); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("record session: %w", err)
	}

	p := s.profile
	p.Stats = s.stats.Snapshot()

	completed := UpdateAchievements(p.Achievements, NewAchievementInput(result, p.Stats))

	report := AggregateMastery(result.Answers, p.LearningProfile)
	p.LearningProfile.Strengths = report.Strengths
	p.LearningProfile.Weaknesses = report.Weaknesses

	p.AppendHistory(*result)
	p.AddCoins(result.Coins)
	levels := p.AddExperience(result.XP)

	saveErr := s.repo.Save(ctx, p)
	snapshot := p.Clone()

	s.mu.Unlock()

	s.metrics.SessionFinished(result.Mode, result.Score)
	for _, a := range completed {
		s.metrics.AchievementCompleted(a.ID)
	}

	s.logger.Info("session recorded",
		zap.Int("score", result.Score),
		zap.Int("coins", result.Coins),
		zap.Int("xp", result.XP),
		zap.Int("levels_gained", levels),
		zap.Int("achievements_completed", len(completed)),
	)

	for _, a := range completed {
		s.notifier.Notify(ctx, fmt.Sprintf("Achievement unlocked: %s", a.Name), entities.SeveritySuccess)
	}
	if levels > 0 {
		s.notifier.Notify(ctx, fmt.Sprintf("Level up! You are now level %d.", snapshot.Level), entities.SeveritySuccess)
	}

	if saveErr != nil {
		s.logger.Error("failed to save profile", zap.Error(saveErr))
		s.notifier.Notify(ctx, "Progress could not be saved.", entities.SeverityWarning)
	}

	s.renderer.RenderResult(*result, snapshot)

	return nil
}

// PerformanceHistory returns the performance log, oldest first.
func (s *GameService) PerformanceHistory() []entities.PerformanceSummary {
	s.mu.Lock()
	stats := s.stats
	s.mu.Unlock()

	return stats.Snapshot().HistoricalPerformance
}

// UpdateTrends stores freshly computed trends in the learning profile and saves it.
func (s *GameService) UpdateTrends(ctx context.Context, trends entities.Trends) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.LearningProfile.Trends = &trends

	if err := s.repo.Save(ctx, s.profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
