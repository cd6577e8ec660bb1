package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

func TestCalculateTrend(t *testing.T) {
	_, ok := CalculateTrend(nil)
	assert.False(t, ok)

	_, ok = CalculateTrend([]float64{42})
	assert.False(t, ok)

	trend, ok := CalculateTrend([]float64{100, 200, 400})
	require.True(t, ok)
	assert.InDelta(t, 150.0, trend, 1e-9)

	trend, ok = CalculateTrend([]float64{0.9, 0.8, 0.5})
	require.True(t, ok)
	assert.Negative(t, trend)
}

func TestAnalyzeTrends(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	_, ok := AnalyzeTrends([]entities.PerformanceSummary{{Score: 10}}, now)
	assert.False(t, ok)

	history := []entities.PerformanceSummary{
		{Score: 9999, Accuracy: 0, AvgResponseTime: 99}, // outside the window
		{Score: 100, Accuracy: 0.5, AvgResponseTime: 10},
		{Score: 200, Accuracy: 0.6, AvgResponseTime: 8},
		{Score: 300, Accuracy: 0.7, AvgResponseTime: 6},
		{Score: 400, Accuracy: 0.8, AvgResponseTime: 4},
		{Score: 500, Accuracy: 0.9, AvgResponseTime: 2},
	}

	trends, ok := AnalyzeTrends(history, now)
	require.True(t, ok)

	assert.InDelta(t, 100.0, trends.Score, 1e-9)
	assert.InDelta(t, 0.1, trends.Accuracy, 1e-9)
	assert.InDelta(t, 2.0, trends.ResponseTime, 1e-9, "getting faster is a positive trend")
	assert.Equal(t, now, trends.LastUpdated)
}
