package entities

// AchievementKind selects the rule used to advance an achievement.
type AchievementKind string

const (
	AchievementStreak   AchievementKind = "streak"   // longest correct run in a session
	AchievementAccuracy AchievementKind = "accuracy" // best session accuracy, percent
	AchievementSpeed    AchievementKind = "speed"    // session average response time, seconds
	AchievementVolume   AchievementKind = "volume"   // games played overall
)

// Achievement is a long-running goal. Completed is sticky.
type Achievement struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Kind        AchievementKind `json:"type"`
	Progress    int             `json:"progress"`
	Target      int             `json:"target"`
	Completed   bool            `json:"completed"`
}

// DefaultAchievements returns the achievement set every new profile starts with.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:          "streak-10",
			Name:        "Streak Star",
			Description: "Answer 10 questions in a row correctly in one game",
			Kind:        AchievementStreak,
			Target:      10,
		},
		{
			ID:          "accuracy-90",
			Name:        "Precise Thinker",
			Description: "Reach 90% accuracy in a game",
			Kind:        AchievementAccuracy,
			Target:      90,
		},
		{
			ID:          "speed-5",
			Name:        "Lightning Mind",
			Description: "Keep the average answer time at or below 5 seconds",
			Kind:        AchievementSpeed,
			Target:      5,
		},
		{
			ID:          "games-50",
			Name:        "Logic Addict",
			Description: "Finish 50 games",
			Kind:        AchievementVolume,
			Target:      50,
		},
	}
}
