package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
	"github.com/aliskhannn/logic-master/internal/repository"
	"github.com/aliskhannn/logic-master/internal/storage"
)

type countingGenerator struct {
	fakeGenerator
	calls int
}

func (g *countingGenerator) Generate(category entities.Category, difficulty float64) (entities.Question, error) {
	g.calls++
	return g.fakeGenerator.Generate(category, difficulty)
}

func newDailyFixture() (*DailyChallengeService, *countingGenerator, *flakyStore, *fakeClock) {
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	gen := &countingGenerator{}
	clock := newFakeClock()

	svc := NewDailyChallengeService(repository.NewDailyChallengeRepository(store), gen, zap.NewNop())
	svc.SetClock(clock.Now)

	return svc, gen, store, clock
}

func TestDailyChallenge_GeneratesOncePerDay(t *testing.T) {
	svc, gen, _, clock := newDailyFixture()
	ctx := context.Background()

	first, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", first.Date)
	require.Len(t, first.Questions, 3)
	assert.Equal(t, entities.CategoryDeduction, first.Questions[0].Category)
	assert.Equal(t, 0.7, first.Questions[0].Difficulty)
	assert.Equal(t, entities.CategoryPattern, first.Questions[1].Category)
	assert.Equal(t, entities.CategoryFallacy, first.Questions[2].Category)
	assert.Equal(t, 3, gen.calls)

	clock.Advance(5 * time.Hour)
	second, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, gen.calls)

	clock.Advance(24 * time.Hour)
	next, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", next.Date)
	assert.Equal(t, 6, gen.calls)
}

func TestDailyChallenge_RegeneratesCorruptedEntry(t *testing.T) {
	svc, gen, store, _ := newDailyFixture()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "dailyChallenge_2026-03-14", []byte("garbage")))

	challenge, err := svc.Today(ctx)

	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", challenge.Date)
	assert.Equal(t, 3, gen.calls)
}

func TestDailyChallenge_LogsWhyEntryWasRegenerated(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	svc := NewDailyChallengeService(repository.NewDailyChallengeRepository(store), &countingGenerator{}, zap.New(core))
	svc.SetClock(newFakeClock().Now)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "dailyChallenge_2026-03-14", []byte("garbage")))

	_, err := svc.Today(ctx)
	require.NoError(t, err)

	entries := logs.FilterMessage("cached daily challenge is unusable, regenerating").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "invalid character")
}

func TestDailyChallenge_FirstRequestIsNotWarned(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	svc := NewDailyChallengeService(repository.NewDailyChallengeRepository(store), &countingGenerator{}, zap.New(core))
	svc.SetClock(newFakeClock().Now)

	_, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestDailyChallenge_CacheFailureStillServes(t *testing.T) {
	svc, _, store, _ := newDailyFixture()
	store.failSet = true

	challenge, err := svc.Today(context.Background())

	require.NoError(t, err)
	assert.Len(t, challenge.Questions, 3)
}

func TestDailyChallenge_ReadFailure(t *testing.T) {
	svc, _, store, _ := newDailyFixture()
	store.failGet = true

	_, err := svc.Today(context.Background())

	assert.ErrorIs(t, err, errStoreDown)
}
