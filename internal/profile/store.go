package profile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"learner/internal/kvstore"
)

// StorageKey is the key the profile blob is stored under.
const StorageKey = "react-learning-profile"

// Store loads and saves the profile through a key-value backend.
type Store struct {
	kv  kvstore.Store
	log *zap.Logger
}

// NewStore returns a Store over kv. A nil logger discards decode warnings.
func NewStore(kv kvstore.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log}
}

// Load returns the stored profile, or defaults when nothing is stored or the
// backing document is corrupt. Malformed fields fall back to defaults and are
// logged.
func (s *Store) Load(ctx context.Context) (UserProfile, error) {
	data, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return Defaults(), nil
	}
	if errors.Is(err, kvstore.ErrCorrupt) {
		s.log.Warn("profile store unreadable; using defaults", zap.Error(err))
		return Defaults(), nil
	}
	if err != nil {
		return UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	p, warnings := Decode(data)
	for _, warning := range warnings {
		s.log.Warn("profile field defaulted", zap.String("detail", warning))
	}
	return p, nil
}

// Save replaces the stored profile.
func (s *Store) Save(ctx context.Context, p UserProfile) error {
	data, err := Encode(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Update loads the profile, applies fn and saves the result when fn reports a
// change.
func (s *Store) Update(ctx context.Context, fn func(UserProfile) (UserProfile, bool)) (UserProfile, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return UserProfile{}, err
	}
	next, changed := fn(current)
	if !changed {
		return current, nil
	}
	if err := s.Save(ctx, next); err != nil {
		return UserProfile{}, err
	}
	return next, nil
}

// Reset removes the stored profile.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}
