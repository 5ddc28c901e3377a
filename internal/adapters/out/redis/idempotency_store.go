// Package redis remembers which order an Idempotency-Key produced.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

const (
	keyIdemOrderCreate = "idem:order:create:%s:%s"

	DefaultTTL = 24 * time.Hour
)

// NewClient connects lazily; the first command dials.
func NewClient(addr string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

type IdempotencyStore struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyStore keeps entries for ttl, or DefaultTTL when ttl is not
// positive.
func NewIdempotencyStore(client goredis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Lookup(ctx context.Context, userID kernel.UUID, key string) (kernel.UUID, bool, error) {
	if key == "" {
		return kernel.UUID{}, false, errs.NewValueIsRequiredError("idempotency key")
	}
	if err := userID.Validate(); err != nil {
		return kernel.UUID{}, false, err
	}

	value, err := s.client.Get(ctx, fmt.Sprintf(keyIdemOrderCreate, userID, key)).Result()
	if errors.Is(err, goredis.Nil) {
		return kernel.UUID{}, false, nil
	}
	if err != nil {
		return kernel.UUID{}, false, err
	}

	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, false, fmt.Errorf("idempotency entry %q: %w", key, err)
	}
	return id, true, nil
}

// Remember stores the order id for the user's key unless it is already
// taken; the first order created for a key wins.
func (s *IdempotencyStore) Remember(ctx context.Context, userID kernel.UUID, key string, orderID kernel.UUID) error {
	if key == "" {
		return errs.NewValueIsRequiredError("idempotency key")
	}
	if err := errors.Join(userID.Validate(), orderID.Validate()); err != nil {
		return err
	}
	return s.client.SetNX(ctx, fmt.Sprintf(keyIdemOrderCreate, userID, key), orderID.String(), s.ttl).Err()
}
