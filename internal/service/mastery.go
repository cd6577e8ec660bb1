package service

import (
	"math"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

const (
	strengthThreshold = 0.85
	weaknessThreshold = 0.70
)

// CategoryPerformance is the per-category breakdown of one session.
type CategoryPerformance struct {
	Category        entities.Category
	Correct         int
	Total           int
	Accuracy        float64
	AvgResponseTime float64 // over answers with a positive response time, 0 if none
}

// MasteryReport is the output of AggregateMastery.
type MasteryReport struct {
	Categories []CategoryPerformance // in order of first appearance
	Mastery    map[entities.Category]entities.CategoryMastery
	Strengths  []entities.CategoryInsight
	Weaknesses []entities.CategoryInsight
}

// AggregateMastery groups a session's answers by category and merges the
// resulting strengths and weaknesses into the prior lists. Entries from this
// session come first; prior entries survive only for categories this session
// did not re-qualify, and each list is capped at MaxInsights.
func AggregateMastery(answers []entities.AnswerRecord, prior entities.LearningProfile) MasteryReport {
	perf := categoryPerformance(answers)

	report := MasteryReport{
		Categories: perf,
		Mastery:    masteryFromPerformance(perf),
	}

	var strengths, weaknesses []entities.CategoryInsight
	for _, p := range perf {
		insight := entities.CategoryInsight{
			Category: p.Category,
			Accuracy: p.Accuracy,
			AvgTime:  p.AvgResponseTime,
		}
		switch {
		case p.Accuracy >= strengthThreshold:
			strengths = append(strengths, insight)
		case p.Accuracy < weaknessThreshold:
			weaknesses = append(weaknesses, insight)
		}
	}

	report.Strengths = mergeInsights(strengths, prior.Strengths)
	report.Weaknesses = mergeInsights(weaknesses, prior.Weaknesses)

	return report
}

// SessionMastery computes the per-category mastery map shown on the result screen.
func SessionMastery(answers []entities.AnswerRecord) map[entities.Category]entities.CategoryMastery {
	return masteryFromPerformance(categoryPerformance(answers))
}

func categoryPerformance(answers []entities.AnswerRecord) []CategoryPerformance {
	type tally struct {
		correct, total, timed int
		timeSum               float64
	}

	order := make([]entities.Category, 0)
	tallies := make(map[entities.Category]*tally)

	for _, a := range answers {
		t, ok := tallies[a.Category]
		if !ok {
			t = &tally{}
			tallies[a.Category] = t
			order = append(order, a.Category)
		}

		t.total++
		if a.IsCorrect {
			t.correct++
		}
		if a.ResponseTime > 0 {
			t.timed++
			t.timeSum += a.ResponseTime
		}
	}

	out := make([]CategoryPerformance, 0, len(order))
	for _, c := range order {
		t := tallies[c]
		p := CategoryPerformance{
			Category: c,
			Correct:  t.correct,
			Total:    t.total,
			Accuracy: float64(t.correct) / float64(t.total),
		}
		if t.timed > 0 {
			p.AvgResponseTime = t.timeSum / float64(t.timed)
		}
		out = append(out, p)
	}

	return out
}

func masteryFromPerformance(perf []CategoryPerformance) map[entities.Category]entities.CategoryMastery {
	m := make(map[entities.Category]entities.CategoryMastery, len(perf))
	for _, p := range perf {
		m[p.Category] = entities.CategoryMastery{
			Correct: p.Correct,
			Total:   p.Total,
			Mastery: int(math.Round(p.Accuracy * 100)),
		}
	}
	return m
}

func mergeInsights(fresh, prior []entities.CategoryInsight) []entities.CategoryInsight {
	out := make([]entities.CategoryInsight, 0, entities.MaxInsights)
	seen := make(map[entities.Category]bool, len(fresh)+len(prior))

	for _, list := range [][]entities.CategoryInsight{fresh, prior} {
		for _, in := range list {
			if len(out) == entities.MaxInsights {
				return out
			}
			if seen[in.Category] {
				continue
			}
			seen[in.Category] = true
			out = append(out, in)
		}
	}

	return out
}
