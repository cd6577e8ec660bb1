package service

import (
	"time"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

// trendWindow is how many recent sessions feed the trend signals.
const trendWindow = 5

// CalculateTrend returns the average step-to-step change of an oldest-first sequence.
// Positive means rising. ok is false when fewer than two samples are given.
func CalculateTrend(samples []float64) (trend float64, ok bool) {
	if len(samples) < 2 {
		return 0, false
	}

	sum := 0.0
	for i := 1; i < len(samples); i++ {
		sum += samples[i] - samples[i-1]
	}

	return sum / float64(len(samples)-1), true
}

// AnalyzeTrends derives score, accuracy and response-time trends from the
// newest entries of the performance log. The response-time trend is negated
// so that a positive value always means improvement.
func AnalyzeTrends(history []entities.PerformanceSummary, now time.Time) (entities.Trends, bool) {
	if len(history) < 2 {
		return entities.Trends{}, false
	}

	recent := history
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}

	scores := make([]float64, len(recent))
	accuracies := make([]float64, len(recent))
	times := make([]float64, len(recent))
	for i, h := range recent {
		scores[i] = float64(h.Score)
		accuracies[i] = h.Accuracy
		times[i] = h.AvgResponseTime
	}

	score, _ := CalculateTrend(scores)
	accuracy, _ := CalculateTrend(accuracies)
	responseTime, _ := CalculateTrend(times)

	return entities.Trends{
		Score:        score,
		Accuracy:     accuracy,
		ResponseTime: -responseTime,
		LastUpdated:  now,
	}, true
}
