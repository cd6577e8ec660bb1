package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

type fakeTrendStore struct {
	history []entities.PerformanceSummary
	saved   []entities.Trends
	err     error
}

func (s *fakeTrendStore) PerformanceHistory() []entities.PerformanceSummary {
	return s.history
}

func (s *fakeTrendStore) UpdateTrends(_ context.Context, trends entities.Trends) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, trends)
	return nil
}

func TestAnalytics_NotEnoughHistory(t *testing.T) {
	store := &fakeTrendStore{history: []entities.PerformanceSummary{{Score: 100}}}
	svc := NewAnalyticsService(store, "@every 1h", zap.NewNop())

	_, ok, err := svc.Analyze(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.saved)
}

func TestAnalytics_SavesTrends(t *testing.T) {
	store := &fakeTrendStore{history: []entities.PerformanceSummary{
		{Score: 100, Accuracy: 0.5, AvgResponseTime: 12},
		{Score: 200, Accuracy: 0.7, AvgResponseTime: 8},
	}}
	clock := newFakeClock()
	svc := NewAnalyticsService(store, "@every 1h", zap.NewNop())
	svc.clock = clock.Now

	trends, ok, err := svc.Analyze(context.Background())

	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 100, trends.Score, 1e-9)
	assert.InDelta(t, 0.2, trends.Accuracy, 1e-9)
	assert.InDelta(t, 4, trends.ResponseTime, 1e-9)
	assert.Equal(t, clock.Now(), trends.LastUpdated)
	assert.Equal(t, []entities.Trends{trends}, store.saved)
}

func TestAnalytics_SaveError(t *testing.T) {
	boom := errors.New("boom")
	store := &fakeTrendStore{
		history: []entities.PerformanceSummary{{Score: 1}, {Score: 2}},
		err:     boom,
	}
	svc := NewAnalyticsService(store, "@every 1h", zap.NewNop())

	_, ok, err := svc.Analyze(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestAnalytics_StartStopsWithContext(t *testing.T) {
	svc := NewAnalyticsService(&fakeTrendStore{}, "@every 1h", zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestAnalytics_StartRejectsBadSchedule(t *testing.T) {
	svc := NewAnalyticsService(&fakeTrendStore{}, "not a schedule", zap.NewNop())

	err := svc.Start(context.Background())

	assert.Error(t, err)
}
