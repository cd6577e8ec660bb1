package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

// TrendStore exposes the performance log and accepts computed trends.
type TrendStore interface {
	PerformanceHistory() []entities.PerformanceSummary
	UpdateTrends(ctx context.Context, trends entities.Trends) error
}

// AnalyticsService periodically refreshes the learning-profile trends.
type AnalyticsService struct {
	store    TrendStore
	schedule string
	clock    Clock
	logger   *zap.Logger
}

// NewAnalyticsService creates a new analytics service running on a cron schedule.
func NewAnalyticsService(store TrendStore, schedule string, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:    store,
		schedule: schedule,
		clock:    time.Now,
		logger:   logger,
	}
}

// Analyze recomputes the trends. It reports false without saving anything
// when fewer than two sessions were played.
func (s *AnalyticsService) Analyze(ctx context.Context) (entities.Trends, bool, error) {
	trends, ok := AnalyzeTrends(s.store.PerformanceHistory(), s.clock())
	if !ok {
		return entities.Trends{}, false, nil
	}

	if err := s.store.UpdateTrends(ctx, trends); err != nil {
		return entities.Trends{}, false, fmt.Errorf("update trends: %w", err)
	}

	return trends, true, nil
}

// Start runs Analyze on the configured schedule until ctx is cancelled.
func (s *AnalyticsService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		trends, ok, err := s.Analyze(ctx)
		switch {
		case err != nil:
			s.logger.Error("failed to analyze trends", zap.Error(err))
		case ok:
			s.logger.Info("trends updated",
				zap.Float64("score", trends.Score),
				zap.Float64("accuracy", trends.Accuracy),
				zap.Float64("response_time", trends.ResponseTime),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	s.logger.Info("analytics scheduler started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("analytics scheduler stopped")

	return nil
}
