package service

import (
	"math"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

const (
	baseDifficulty = 0.5
	minDifficulty  = 0.1
	maxDifficulty  = 1.0

	timeFactorMax     = 0.2
	accuracyFactorMax = 0.3
	historyFactorMax  = 0.2
	domainFactorMax   = 0.1

	// slowestCountedResponse is the response time (seconds) at which the time factor reaches zero.
	slowestCountedResponse = 10.0
)

// Defaults used when a profile has no history yet.
const (
	defaultResponseTime       = 5.0
	defaultAccuracyRate       = 0.7
	defaultHistoryPerformance = 60.0
	defaultDomainStrength     = 70.0
)

// DifficultyInput is the statistics snapshot the estimator works on.
type DifficultyInput struct {
	AverageResponseTime float64  // seconds, >= 0
	AccuracyRate        float64  // 0-1
	HistoryPerformance  float64  // 0-100
	DomainStrength      *float64 // 0-100, nil when unknown
}

// EstimateDifficulty maps a statistics snapshot to a difficulty in [0.1, 1.0].
// Faster answers, higher accuracy and stronger history all raise it.
func EstimateDifficulty(in DifficultyInput) float64 {
	responseTime := finiteOr(in.AverageResponseTime, slowestCountedResponse)
	timeFactor := min(
		timeFactorMax,
		(slowestCountedResponse-min(responseTime, slowestCountedResponse))/slowestCountedResponse*timeFactorMax,
	)

	accuracyFactor := finiteOr(in.AccuracyRate, 0) * accuracyFactorMax
	historyFactor := finiteOr(in.HistoryPerformance, 0) / 100 * historyFactorMax

	total := baseDifficulty + timeFactor + accuracyFactor + historyFactor

	if in.DomainStrength != nil {
		total += finiteOr(*in.DomainStrength, 0) / 100 * domainFactorMax
	}

	return min(max(total, minDifficulty), maxDifficulty)
}

// BuildDifficultyInput derives the estimator input from a user's stored statistics.
// Profiles without games fall back to moderate defaults.
func BuildDifficultyInput(stats entities.RollingStats, lp entities.LearningProfile) DifficultyInput {
	in := DifficultyInput{
		AverageResponseTime: defaultResponseTime,
		AccuracyRate:        defaultAccuracyRate,
		HistoryPerformance:  defaultHistoryPerformance,
	}

	if stats.TotalGames > 0 {
		if stats.AverageResponseTime > 0 {
			in.AverageResponseTime = stats.AverageResponseTime
		}
		in.AccuracyRate = stats.AverageAccuracy()
	}

	if n := len(stats.HistoricalPerformance); n > 0 {
		sum := 0.0
		for _, h := range stats.HistoricalPerformance {
			sum += h.Accuracy
		}
		in.HistoryPerformance = sum / float64(n) * 100
	}

	strength := defaultDomainStrength
	if n := len(lp.Strengths); n > 0 {
		sum := 0.0
		for _, s := range lp.Strengths {
			sum += s.Accuracy
		}
		strength = sum / float64(n) * 100
	}
	in.DomainStrength = &strength

	return in
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
