package service

import (
	"math"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

// AchievementInput is what the achievement rules look at after a session.
type AchievementInput struct {
	Answers         []entities.AnswerRecord
	Accuracy        float64
	AvgResponseTime float64
	GamesPlayed     int // cumulative, including the session just recorded
}

// NewAchievementInput builds the rule input from a finished session and the updated stats.
func NewAchievementInput(result *entities.SessionResult, stats entities.RollingStats) AchievementInput {
	return AchievementInput{
		Answers:         result.Answers,
		Accuracy:        result.Accuracy,
		AvgResponseTime: result.AvgResponseTime,
		GamesPlayed:     stats.TotalGames,
	}
}

// achievementRule advances progress and returns whether the rule's goal is met this session.
type achievementRule func(a *entities.Achievement, in AchievementInput) bool

var achievementRules = map[entities.AchievementKind]achievementRule{
	entities.AchievementStreak:   streakRule,
	entities.AchievementAccuracy: accuracyRule,
	entities.AchievementSpeed:    speedRule,
	entities.AchievementVolume:   volumeRule,
}

// UpdateAchievements applies every rule to the achievements in place and
// returns the ones that became completed during this call. Completion is
// sticky and achievements of unknown kinds are left untouched.
func UpdateAchievements(achievements []entities.Achievement, in AchievementInput) []entities.Achievement {
	var newlyCompleted []entities.Achievement

	for i := range achievements {
		a := &achievements[i]

		rule, ok := achievementRules[a.Kind]
		if !ok {
			continue
		}

		wasCompleted := a.Completed
		if rule(a, in) {
			a.Completed = true
		}
		a.Completed = a.Completed || wasCompleted

		if a.Completed && !wasCompleted {
			newlyCompleted = append(newlyCompleted, *a)
		}
	}

	return newlyCompleted
}

// LongestStreak returns the longest run of consecutive correct answers.
func LongestStreak(answers []entities.AnswerRecord) int {
	current, longest := 0, 0
	for _, a := range answers {
		if !a.IsCorrect {
			current = 0
			continue
		}
		current++
		longest = max(longest, current)
	}
	return longest
}

func streakRule(a *entities.Achievement, in AchievementInput) bool {
	a.Progress = max(a.Progress, LongestStreak(in.Answers))
	return a.Progress >= a.Target
}

func accuracyRule(a *entities.Achievement, in AchievementInput) bool {
	a.Progress = max(a.Progress, int(math.Round(in.Accuracy*100)))
	return a.Progress >= a.Target
}

// speedRule shows partial credit in Progress while completion is judged
// strictly on this session's average response time.
func speedRule(a *entities.Achievement, in AchievementInput) bool {
	if !hasTimedAnswer(in.Answers) {
		return false
	}

	progress := int(math.Round(float64(a.Target) / max(in.AvgResponseTime, 1) * 100))
	a.Progress = min(100, max(a.Progress, progress))

	return in.AvgResponseTime <= float64(a.Target)
}

func volumeRule(a *entities.Achievement, in AchievementInput) bool {
	a.Progress = max(a.Progress, min(in.GamesPlayed, a.Target))
	return a.Progress >= a.Target
}

func hasTimedAnswer(answers []entities.AnswerRecord) bool {
	for _, a := range answers {
		if !a.Skipped() && a.ResponseTime > 0 {
			return true
		}
	}
	return false
}
