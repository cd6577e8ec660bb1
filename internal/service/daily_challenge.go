package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
	"github.com/aliskhannn/logic-master/internal/repository"
)

var dailyPlan = []struct {
	category   entities.Category
	difficulty float64
}{
	{entities.CategoryDeduction, 0.7},
	{entities.CategoryPattern, 0.6},
	{entities.CategoryFallacy, 0.8},
}

// DailyChallengeService serves one fixed challenge per calendar day.
type DailyChallengeService struct {
	repo      DailyChallengeRepository
	generator QuestionGenerator
	clock     Clock
	logger    *zap.Logger
}

// NewDailyChallengeService creates a new daily challenge service.
func NewDailyChallengeService(
	repo DailyChallengeRepository,
	generator QuestionGenerator,
	logger *zap.Logger,
) *DailyChallengeService {
	return &DailyChallengeService{
		repo:      repo,
		generator: generator,
		clock:     time.Now,
		logger:    logger,
	}
}

// SetClock replaces the time source.
func (s *DailyChallengeService) SetClock(c Clock) {
	s.clock = c
}

// Today returns the cached challenge for the current UTC date, generating
// and caching it on first request.
func (s *DailyChallengeService) Today(ctx context.Context) (*entities.DailyChallenge, error) {
	date := entities.ChallengeDate(s.clock())

	challenge, err := s.repo.Get(ctx, date)
	if err == nil {
		return challenge, nil
	}
	if !errors.Is(err, repository.ErrChallengeNotFound) {
		return nil, fmt.Errorf("get daily challenge: %w", err)
	}
	if err != repository.ErrChallengeNotFound {
		s.logger.Warn("cached daily challenge is unusable, regenerating",
			zap.String("date", date),
			zap.Error(err),
		)
	}

	challenge, err = s.generate(date)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, challenge); err != nil {
		s.logger.Warn("failed to cache daily challenge",
			zap.String("date", date),
			zap.Error(err),
		)
	}

	s.logger.Info("daily challenge generated", zap.String("date", date))

	return challenge, nil
}

func (s *DailyChallengeService) generate(date string) (*entities.DailyChallenge, error) {
	questions := make([]entities.Question, 0, len(dailyPlan))
	for _, p := range dailyPlan {
		q, err := s.generator.Generate(p.category, p.difficulty)
		if err != nil {
			return nil, fmt.Errorf("generate %s question: %w", p.category, err)
		}
		q.Category = p.category
		q.Difficulty = p.difficulty
		questions = append(questions, q)
	}

	return &entities.DailyChallenge{
		Date:        date,
		Title:       "Daily Logic Challenge",
		Description: "Three hand-picked puzzles: a deduction, a pattern and a fallacy.",
		Questions:   questions,
	}, nil
}
