package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

func achievementByKind(t *testing.T, achs []entities.Achievement, kind entities.AchievementKind) entities.Achievement {
	t.Helper()
	for _, a := range achs {
		if a.Kind == kind {
			return a
		}
	}
	require.FailNow(t, "achievement not found", kind)
	return entities.Achievement{}
}

func sequence(correct ...bool) []entities.AnswerRecord {
	out := make([]entities.AnswerRecord, len(correct))
	for i, c := range correct {
		out[i] = entities.AnswerRecord{IsCorrect: c, ResponseTime: 3, Difficulty: 0.5}
	}
	return out
}

func TestLongestStreak(t *testing.T) {
	assert.Equal(t, 3, LongestStreak(sequence(true, true, true, false, true, true)))
	assert.Equal(t, 0, LongestStreak(sequence(false, false)))
	assert.Equal(t, 0, LongestStreak(nil))
	assert.Equal(t, 4, LongestStreak(sequence(false, true, true, true, true)))
}

func TestUpdateAchievements_StreakScenario(t *testing.T) {
	achs := entities.DefaultAchievements()

	UpdateAchievements(achs, AchievementInput{
		Answers:         sequence(true, true, true, false, true, true),
		Accuracy:        5.0 / 6.0,
		AvgResponseTime: 3,
		GamesPlayed:     1,
	})

	streak := achievementByKind(t, achs, entities.AchievementStreak)
	assert.Equal(t, 3, streak.Progress)
	assert.False(t, streak.Completed)

	accuracy := achievementByKind(t, achs, entities.AchievementAccuracy)
	assert.Equal(t, 83, accuracy.Progress)

	volume := achievementByKind(t, achs, entities.AchievementVolume)
	assert.Equal(t, 1, volume.Progress)
}

func TestUpdateAchievements_SpeedScenario(t *testing.T) {
	achs := entities.DefaultAchievements()

	completed := UpdateAchievements(achs, AchievementInput{
		Answers:         sequence(true),
		Accuracy:        1,
		AvgResponseTime: 4,
		GamesPlayed:     1,
	})

	speed := achievementByKind(t, achs, entities.AchievementSpeed)
	assert.Equal(t, 100, speed.Progress)
	assert.True(t, speed.Completed)

	ids := make([]string, 0, len(completed))
	for _, a := range completed {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"speed-5", "accuracy-90"}, ids)
}

func TestUpdateAchievements_SpeedPartialCredit(t *testing.T) {
	achs := entities.DefaultAchievements()

	UpdateAchievements(achs, AchievementInput{Answers: sequence(true), AvgResponseTime: 10})

	speed := achievementByKind(t, achs, entities.AchievementSpeed)
	assert.Equal(t, 50, speed.Progress)
	assert.False(t, speed.Completed)
}

func TestUpdateAchievements_SpeedIgnoresUntimedSessions(t *testing.T) {
	achs := entities.DefaultAchievements()
	skipped := []entities.AnswerRecord{{SelectedIndex: entities.SkippedIndex}}

	UpdateAchievements(achs, AchievementInput{Answers: skipped, AvgResponseTime: 0})

	speed := achievementByKind(t, achs, entities.AchievementSpeed)
	assert.Zero(t, speed.Progress)
	assert.False(t, speed.Completed)
}

func TestUpdateAchievements_CompletionIsSticky(t *testing.T) {
	achs := entities.DefaultAchievements()

	UpdateAchievements(achs, AchievementInput{Answers: sequence(true), Accuracy: 1, AvgResponseTime: 2, GamesPlayed: 1})
	completed := UpdateAchievements(achs, AchievementInput{Answers: sequence(false), Accuracy: 0, AvgResponseTime: 20, GamesPlayed: 2})

	assert.Empty(t, completed)
	assert.True(t, achievementByKind(t, achs, entities.AchievementSpeed).Completed)
	assert.True(t, achievementByKind(t, achs, entities.AchievementAccuracy).Completed)
	assert.Equal(t, 100, achievementByKind(t, achs, entities.AchievementAccuracy).Progress)
}

func TestUpdateAchievements_ProgressNeverDecreases(t *testing.T) {
	achs := entities.DefaultAchievements()
	sessions := []AchievementInput{
		{Answers: sequence(true, true, true, true), Accuracy: 1, AvgResponseTime: 6, GamesPlayed: 1},
		{Answers: sequence(false, true), Accuracy: 0.5, AvgResponseTime: 12, GamesPlayed: 2},
		{Answers: sequence(true, true), Accuracy: 0.8, AvgResponseTime: 3, GamesPlayed: 3},
		{Answers: sequence(false), Accuracy: 0, AvgResponseTime: 30, GamesPlayed: 4},
	}

	for _, in := range sessions {
		before := make(map[string]int)
		for _, a := range achs {
			before[a.ID] = a.Progress
		}

		UpdateAchievements(achs, in)

		for _, a := range achs {
			assert.GreaterOrEqual(t, a.Progress, before[a.ID], a.ID)
		}
	}
}

func TestUpdateAchievements_VolumeReachesTarget(t *testing.T) {
	achs := entities.DefaultAchievements()

	completed := UpdateAchievements(achs, AchievementInput{GamesPlayed: 60})

	volume := achievementByKind(t, achs, entities.AchievementVolume)
	assert.Equal(t, 50, volume.Progress)
	assert.True(t, volume.Completed)
	assert.Len(t, completed, 1)
}

func TestUpdateAchievements_UnknownKindUntouched(t *testing.T) {
	achs := []entities.Achievement{{ID: "custom", Kind: "collector", Progress: 3, Target: 10}}

	UpdateAchievements(achs, AchievementInput{GamesPlayed: 100})

	assert.Equal(t, 3, achs[0].Progress)
	assert.False(t, achs[0].Completed)
}
