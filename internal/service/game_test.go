package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
	"github.com/aliskhannn/logic-master/internal/repository"
	"github.com/aliskhannn/logic-master/internal/storage"
)

var errStoreDown = errors.New("store down")

type flakyStore struct {
	*storage.MemoryStore
	failGet bool
	failSet bool
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.failGet {
		return nil, errStoreDown
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet {
		return errStoreDown
	}
	return s.MemoryStore.Set(ctx, key, value)
}

type gameFixture struct {
	svc      *GameService
	store    *flakyStore
	repo     *repository.ProfileRepository
	notifier *recordingNotifier
	renderer *recordingRenderer
	metrics  *recordingMetrics
	clock    *fakeClock
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()

	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	f := &gameFixture{
		store:    store,
		repo:     repository.NewProfileRepository(store),
		notifier: &recordingNotifier{},
		renderer: &recordingRenderer{},
		metrics:  &recordingMetrics{},
		clock:    newFakeClock(),
	}
	f.svc = NewGameService(f.repo, f.notifier, f.renderer, f.metrics, zap.NewNop())
	f.svc.SetClock(f.clock.Now)

	return f
}

func (f *gameFixture) seed(t *testing.T, p *entities.UserProfile) {
	t.Helper()
	require.NoError(t, f.repo.Save(context.Background(), p))
}

func (f *gameFixture) stored(t *testing.T) *entities.UserProfile {
	t.Helper()
	p, err := f.repo.Load(context.Background())
	require.NoError(t, err)
	return p
}

func TestGameService_InitCreatesProfile(t *testing.T) {
	f := newGameFixture(t)

	require.NoError(t, f.svc.Init(context.Background()))

	p := f.svc.Profile()
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, entities.StartingCoins, p.Coins)
	assert.Equal(t, f.clock.Now(), p.LastLogin)
	assert.Len(t, p.Achievements, 4)

	assert.Equal(t, p.ID, f.stored(t).ID)
}

func TestGameService_InitLoadsStoredProfile(t *testing.T) {
	f := newGameFixture(t)
	seeded := entities.NewUserProfile(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	seeded.Coins = 42
	seeded.Level = 3
	f.seed(t, seeded)

	require.NoError(t, f.svc.Init(context.Background()))

	p := f.svc.Profile()
	assert.Equal(t, seeded.ID, p.ID)
	assert.Equal(t, 42, p.Coins)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, f.clock.Now(), f.stored(t).LastLogin)
}

func TestGameService_InitReplacesCorruptedProfile(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.store.Set(context.Background(), "userProfile", []byte("{not json")))

	require.NoError(t, f.svc.Init(context.Background()))

	assert.Equal(t, entities.StartingCoins, f.stored(t).Coins)
}

func TestGameService_InitFailsOnStoreError(t *testing.T) {
	f := newGameFixture(t)
	f.store.failGet = true

	err := f.svc.Init(context.Background())

	assert.ErrorIs(t, err, errStoreDown)
}

func TestGameService_FinishSession(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.svc.Init(context.Background()))

	result := sessionResult(300, 5, true, true)
	result.Coins = 40
	result.XP = 70

	require.NoError(t, f.svc.FinishSession(context.Background(), result))

	p := f.svc.Profile()
	assert.Equal(t, entities.StartingCoins+40, p.Coins)
	assert.Equal(t, 70, p.Experience)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 1, p.Stats.TotalGames)
	assert.Equal(t, 300, p.Stats.BestScore)
	require.Len(t, p.GameHistory, 1)
	assert.Equal(t, 300, p.GameHistory[0].Score)
	require.Len(t, p.LearningProfile.Strengths, 1)
	assert.Equal(t, entities.CategoryDeduction, p.LearningProfile.Strengths[0].Category)

	assert.Equal(t, []notification{
		{message: "Achievement unlocked: Precise Thinker", severity: entities.SeveritySuccess},
		{message: "Achievement unlocked: Lightning Mind", severity: entities.SeveritySuccess},
	}, f.notifier.sent)
	assert.Equal(t, 1, f.metrics.sessions)
	assert.Equal(t, []string{"accuracy-90", "speed-5"}, f.metrics.achievements)

	require.Len(t, f.renderer.results, 1)
	assert.Equal(t, p.Coins, f.renderer.profiles[0].Coins)

	stored := f.stored(t)
	assert.Equal(t, p.Coins, stored.Coins)
	assert.Equal(t, 1, stored.Stats.TotalGames)
	assert.Len(t, stored.GameHistory, 1)
}

func TestGameService_PerformanceHistoryFollowsReload(t *testing.T) {
	f := newGameFixture(t)
	seeded := entities.NewUserProfile(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	seeded.Stats.HistoricalPerformance = []entities.PerformanceSummary{
		{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Score: 120, Accuracy: 80},
	}
	f.seed(t, seeded)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.svc.Init(context.Background()))
		}()
		go func() {
			defer wg.Done()
			_ = f.svc.PerformanceHistory()
		}()
	}
	wg.Wait()

	assert.Equal(t, seeded.Stats.HistoricalPerformance, f.svc.PerformanceHistory())
}

func TestGameService_FinishSessionLevelUp(t *testing.T) {
	f := newGameFixture(t)
	seeded := entities.NewUserProfile(f.clock.Now())
	seeded.Experience = 450
	f.seed(t, seeded)
	require.NoError(t, f.svc.Init(context.Background()))

	result := sessionResult(100, 20, true, false)
	result.XP = 70

	require.NoError(t, f.svc.FinishSession(context.Background(), result))

	p := f.svc.Profile()
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 20, p.Experience)
	assert.Equal(t, entities.StartingCoins+100, p.Coins)
	assert.Contains(t, f.notifier.sent, notification{
		message:  "Level up! You are now level 2.",
		severity: entities.SeveritySuccess,
	})
}

func TestGameService_FinishSessionRejectsInvalidResult(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.svc.Init(context.Background()))
	before := f.svc.Profile()

	err := f.svc.FinishSession(context.Background(), &entities.SessionResult{Mode: entities.ModeSingle})

	assert.ErrorIs(t, err, ErrInvalidSessionResult)
	assert.Equal(t, before, f.svc.Profile())
	assert.Empty(t, f.renderer.results)
	assert.Zero(t, f.metrics.sessions)
}

func TestGameService_SessionFinishedReportsInvalidResult(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.svc.Init(context.Background()))

	f.svc.SessionFinished(entities.SessionResult{Mode: entities.ModeSingle})

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, entities.SeverityError, f.notifier.sent[0].severity)
}

func TestGameService_FinishSessionSaveFailure(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.svc.Init(context.Background()))
	f.store.failSet = true

	result := sessionResult(100, 20, false)
	require.NoError(t, f.svc.FinishSession(context.Background(), result))

	assert.Equal(t, 1, f.svc.Profile().Stats.TotalGames)
	assert.Equal(t, []notification{
		{message: "Progress could not be saved.", severity: entities.SeverityWarning},
	}, f.notifier.sent)
	assert.Len(t, f.renderer.results, 1)

	f.store.failSet = false
	assert.Zero(t, f.stored(t).Stats.TotalGames)
}

func TestGameService_DeductCoins(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.svc.Init(context.Background()))

	require.NoError(t, f.svc.DeductCoins(50))
	assert.Equal(t, entities.StartingCoins-50, f.svc.Profile().Coins)
	assert.Equal(t, entities.StartingCoins-50, f.stored(t).Coins)

	err := f.svc.DeductCoins(entities.StartingCoins)
	assert.ErrorIs(t, err, entities.ErrInsufficientCoins)
	assert.Equal(t, entities.StartingCoins-50, f.svc.Profile().Coins)
}

func TestGameService_ObserverForwardsEvents(t *testing.T) {
	f := newGameFixture(t)
	q, _ := fakeGenerator{}.Generate(entities.CategoryPattern, 0.5)

	f.svc.QuestionPresented(q, 0, 3, 30*time.Second)
	f.svc.AnswerRecorded(AnswerOutcome{Record: entities.AnswerRecord{SelectedIndex: entities.SkippedIndex}, TimedOut: true})

	assert.Equal(t, 1, f.renderer.questions)
	assert.Len(t, f.renderer.outcomes, 1)
	assert.Equal(t, []string{OutcomeTimeout}, f.metrics.answers)
}

func TestGameService_Planner(t *testing.T) {
	f := newGameFixture(t)
	seeded := entities.NewUserProfile(f.clock.Now())
	seeded.LearningProfile.Weaknesses = []entities.CategoryInsight{{Category: entities.CategoryFallacy, Accuracy: 0.3}}
	f.seed(t, seeded)
	require.NoError(t, f.svc.Init(context.Background()))

	assert.Equal(t, []entities.Category{entities.CategoryFallacy}, f.svc.CategoryPlan())
	assert.Equal(t, BuildDifficultyInput(seeded.Stats, seeded.LearningProfile), f.svc.DifficultyInput())
}

func TestGameService_UpdateTrends(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.svc.Init(context.Background()))

	trends := entities.Trends{Score: 12, Accuracy: 0.1, ResponseTime: 1, LastUpdated: f.clock.Now()}
	require.NoError(t, f.svc.UpdateTrends(context.Background(), trends))

	stored := f.stored(t)
	require.NotNil(t, stored.LearningProfile.Trends)
	assert.Equal(t, 12.0, stored.LearningProfile.Trends.Score)
}
