package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// StateRepositoryImpl implements domain.StateRepository using Redis. Exactly
// one named record holds the {user, session} snapshot; it is overwritten
// whenever either field changes and cleared on sign-out.
type StateRepositoryImpl struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewStateRepository creates a new persisted-state repository. The namespace
// keeps the snapshot key apart from other records in the same database.
func NewStateRepository(client *redis.Client, namespace string, ttl time.Duration) domain.StateRepository {
	return &StateRepositoryImpl{
		client: client,
		key:    namespace + ":storage",
		ttl:    ttl,
	}
}

// Save implements domain.StateRepository
func (r *StateRepositoryImpl) Save(ctx context.Context, snapshot *domain.StateSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal auth snapshot: %w", err)
	}

	return r.client.Set(ctx, r.key, data, r.ttl).Err()
}

// Load implements domain.StateRepository
func (r *StateRepositoryImpl) Load(ctx context.Context) (*domain.StateSnapshot, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}

	var snapshot domain.StateSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth snapshot: %w", err)
	}

	return &snapshot, nil
}

// Clear implements domain.StateRepository
func (r *StateRepositoryImpl) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
