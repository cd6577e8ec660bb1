package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
	"github.com/aliskhannn/logic-master/internal/storage"
)

const profileKey = "userProfile"

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrProfileCorrupted = errors.New("profile corrupted")
)

// ProfileRepository stores the single user profile as a JSON blob.
type ProfileRepository struct {
	store KVStore
}

// NewProfileRepository creates a new ProfileRepository on top of a key-value store.
func NewProfileRepository(store KVStore) *ProfileRepository {
	return &ProfileRepository{store: store}
}

// Load reads the stored profile. Sections missing from older blobs are
// filled in; a blob that cannot be decoded or breaks profile invariants
// yields ErrProfileCorrupted.
func (r *ProfileRepository) Load(ctx context.Context) (*entities.UserProfile, error) {
	data, err := r.store.Get(ctx, profileKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var profile entities.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileCorrupted, err)
	}

	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileCorrupted, err)
	}

	return &profile, nil
}

// Save writes the profile, replacing the stored one.
func (r *ProfileRepository) Save(ctx context.Context, profile *entities.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if err := r.store.Set(ctx, profileKey, data); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}

	return nil
}
