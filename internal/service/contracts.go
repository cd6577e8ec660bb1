package service

import (
	"context"
	"time"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

// QuestionGenerator produces a question for a category at a difficulty.
type QuestionGenerator interface {
	Generate(category entities.Category, difficulty float64) (entities.Question, error)
}

// ProfileRepository loads and saves the single persisted user profile.
type ProfileRepository interface {
	Load(ctx context.Context) (*entities.UserProfile, error)
	Save(ctx context.Context, profile *entities.UserProfile) error
}

// DailyChallengeRepository caches daily challenges by calendar date.
type DailyChallengeRepository interface {
	Get(ctx context.Context, date string) (*entities.DailyChallenge, error)
	Save(ctx context.Context, challenge *entities.DailyChallenge) error
}

// Notifier delivers fire-and-forget messages to the player.
type Notifier interface {
	Notify(ctx context.Context, message string, severity entities.Severity)
}

// Renderer displays session progress and results. It never feeds data back.
type Renderer interface {
	RenderQuestion(q entities.Question, index, total int, timeLimit time.Duration)
	RenderOutcome(outcome AnswerOutcome)
	RenderResult(result entities.SessionResult, profile entities.UserProfile)
}

// SessionPlanner supplies the per-user inputs a new session is built from.
type SessionPlanner interface {
	DifficultyInput() DifficultyInput
	CategoryPlan() []entities.Category
}

// SessionObserver is told about every scorer event, after the state change.
type SessionObserver interface {
	QuestionPresented(q entities.Question, index, total int, timeLimit time.Duration)
	AnswerRecorded(outcome AnswerOutcome)
	SessionFinished(result entities.SessionResult)
}

// Wallet debits the player's coins.
type Wallet interface {
	DeductCoins(amount int) error
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock returns the current time.
type Clock func() time.Time

// GameMetrics records gameplay counters.
type GameMetrics interface {
	AnswerRecorded(outcome string)
	SessionFinished(mode entities.Mode, score int)
	AchievementCompleted(id string)
}
