package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
	"github.com/aliskhannn/logic-master/internal/storage"
)

const dailyChallengePrefix = "dailyChallenge_"

var ErrChallengeNotFound = errors.New("daily challenge not found")

// DailyChallengeRepository caches daily challenges keyed by calendar date.
type DailyChallengeRepository struct {
	store KVStore
}

// NewDailyChallengeRepository creates a new DailyChallengeRepository.
func NewDailyChallengeRepository(store KVStore) *DailyChallengeRepository {
	return &DailyChallengeRepository{store: store}
}

// Get returns the challenge cached for date (YYYY-MM-DD).
// An unreadable cache entry is reported as not found so it gets regenerated.
func (r *DailyChallengeRepository) Get(ctx context.Context, date string) (*entities.DailyChallenge, error) {
	data, err := r.store.Get(ctx, dailyChallengePrefix+date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("get daily challenge: %w", err)
	}

	var challenge entities.DailyChallenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChallengeNotFound, err)
	}
	if challenge.Date != date {
		return nil, fmt.Errorf("%w: cached entry is for %q", ErrChallengeNotFound, challenge.Date)
	}

	return &challenge, nil
}

// Save caches the challenge under its date.
func (r *DailyChallengeRepository) Save(ctx context.Context, challenge *entities.DailyChallenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("marshal daily challenge: %w", err)
	}

	if err := r.store.Set(ctx, dailyChallengePrefix+challenge.Date, data); err != nil {
		return fmt.Errorf("set daily challenge: %w", err)
	}

	return nil
}
