package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// RedirectRepositoryImpl implements domain.RedirectRepository: a single-slot
// record holding the URL to return to after sign-in. Reads are one-shot via
// GETDEL so a stored redirect can never be replayed.
type RedirectRepositoryImpl struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedirectRepository creates a new redirect-URL repository.
func NewRedirectRepository(client *redis.Client, namespace string, ttl time.Duration) domain.RedirectRepository {
	return &RedirectRepositoryImpl{
		client: client,
		key:    namespace + ":redirect_url",
		ttl:    ttl,
	}
}

// Store implements domain.RedirectRepository
func (r *RedirectRepositoryImpl) Store(ctx context.Context, url string) error {
	return r.client.Set(ctx, r.key, url, r.ttl).Err()
}

// Take implements domain.RedirectRepository
func (r *RedirectRepositoryImpl) Take(ctx context.Context) (string, error) {
	url, err := r.client.GetDel(ctx, r.key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrRedirectNotFound
		}
		return "", err
	}
	return url, nil
}
