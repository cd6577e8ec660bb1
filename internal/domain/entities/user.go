package entities

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	// StartingCoins is the balance of a fresh profile.
	StartingCoins = 1000

	xpPerLevel        = 500
	coinsPerLevelGain = 100
)

var (
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrInvalidProfile    = errors.New("invalid profile")
)

// Settings are user interface preferences.
type Settings struct {
	Sound         bool   `json:"sound"`
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
}

// Inventory holds purchased items and earned badges.
type Inventory struct {
	Items  []string `json:"items"`
	Badges []string `json:"badges"`
}

// UserProfile is the whole persisted state of a player.
type UserProfile struct {
	ID              string          `json:"id"`
	Username        string          `json:"username"`
	Level           int             `json:"level"`
	Experience      int             `json:"experience"`
	Coins           int             `json:"coins"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastLogin       time.Time       `json:"lastLogin"`
	GameHistory     []SessionResult `json:"gameHistory"`
	Achievements    []Achievement   `json:"achievements"`
	Inventory       Inventory       `json:"inventory"`
	Settings        Settings        `json:"settings"`
	Stats           RollingStats    `json:"stats"`
	LearningProfile LearningProfile `json:"learningProfile"`
}

// NewUserProfile creates a fresh profile with default achievements and balance.
func NewUserProfile(now time.Time) *UserProfile {
	return &UserProfile{
		ID:           "user-" + uuid.NewString(),
		Username:     fmt.Sprintf("Player%06d", rand.Intn(1_000_000)),
		Level:        1,
		Coins:        StartingCoins,
		CreatedAt:    now,
		LastLogin:    now,
		GameHistory:  []SessionResult{},
		Achievements: DefaultAchievements(),
		Inventory:    Inventory{Items: []string{}, Badges: []string{}},
		Settings:     Settings{Sound: true, Notifications: true, Theme: "light"},
		Stats:        RollingStats{HistoricalPerformance: []PerformanceSummary{}},
		LearningProfile: LearningProfile{
			Strengths:     []CategoryInsight{},
			Weaknesses:    []CategoryInsight{},
			Preferences:   []Category{},
			LearningGoals: []Category{},
		},
	}
}

// AddCoins credits the balance.
func (p *UserProfile) AddCoins(amount int) {
	p.Coins += amount
}

// DeductCoins debits the balance. The balance is left untouched when it is too low.
func (p *UserProfile) DeductCoins(amount int) error {
	if p.Coins < amount {
		return ErrInsufficientCoins
	}
	p.Coins -= amount
	return nil
}

// AddExperience credits XP and applies level-ups.
// Each level costs level*500 XP and rewards the previous level*100 coins.
// It returns the number of levels gained.
func (p *UserProfile) AddExperience(amount int) int {
	p.Experience += amount
	if p.Level < 1 {
		p.Level = 1
	}

	gained := 0
	for p.Experience >= p.Level*xpPerLevel {
		p.Experience -= p.Level * xpPerLevel
		p.Coins += p.Level * coinsPerLevelGain
		p.Level++
		gained++
	}

	return gained
}

// AppendHistory stores a finished session, keeping the newest MaxHistory entries.
func (p *UserProfile) AppendHistory(result SessionResult) {
	p.GameHistory = append(p.GameHistory, result)
	if n := len(p.GameHistory); n > MaxHistory {
		p.GameHistory = append([]SessionResult(nil), p.GameHistory[n-MaxHistory:]...)
	}
}

// Normalize fills sections missing from older or partial profiles.
func (p *UserProfile) Normalize() {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.GameHistory == nil {
		p.GameHistory = []SessionResult{}
	}
	if p.Stats.HistoricalPerformance == nil {
		p.Stats.HistoricalPerformance = []PerformanceSummary{}
	}
	if n := len(p.Stats.HistoricalPerformance); n > MaxHistory {
		p.Stats.HistoricalPerformance = p.Stats.HistoricalPerformance[n-MaxHistory:]
	}
	if p.Inventory.Items == nil {
		p.Inventory.Items = []string{}
	}
	if p.Inventory.Badges == nil {
		p.Inventory.Badges = []string{}
	}

	known := make(map[string]bool, len(p.Achievements))
	for _, a := range p.Achievements {
		known[a.ID] = true
	}
	for _, a := range DefaultAchievements() {
		if !known[a.ID] {
			p.Achievements = append(p.Achievements, a)
		}
	}

	p.LearningProfile.normalize()
}

// Validate checks the invariants a loaded profile must satisfy.
func (p *UserProfile) Validate() error {
	s := p.Stats
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidProfile)
	case s.TotalGames < 0, s.TotalCorrect < 0, s.TotalQuestions < 0, s.TotalScore < 0, s.BestScore < 0:
		return fmt.Errorf("%w: negative counters", ErrInvalidProfile)
	case s.TotalCorrect > s.TotalQuestions:
		return fmt.Errorf("%w: total correct exceeds total questions", ErrInvalidProfile)
	case s.AverageResponseTime < 0:
		return fmt.Errorf("%w: negative average response time", ErrInvalidProfile)
	case p.Coins < 0:
		return fmt.Errorf("%w: negative balance", ErrInvalidProfile)
	}
	return nil
}

// Clone returns a deep copy of the profile.
func (p *UserProfile) Clone() UserProfile {
	out := *p
	out.GameHistory = slices.Clone(p.GameHistory)
	out.Achievements = slices.Clone(p.Achievements)
	out.Inventory.Items = slices.Clone(p.Inventory.Items)
	out.Inventory.Badges = slices.Clone(p.Inventory.Badges)
	out.Stats.HistoricalPerformance = slices.Clone(p.Stats.HistoricalPerformance)

	lp := &out.LearningProfile
	lp.Strengths = slices.Clone(lp.Strengths)
	lp.Weaknesses = slices.Clone(lp.Weaknesses)
	lp.Preferences = slices.Clone(lp.Preferences)
	lp.LearningGoals = slices.Clone(lp.LearningGoals)
	if lp.Trends != nil {
		t := *lp.Trends
		lp.Trends = &t
	}

	return out
}
