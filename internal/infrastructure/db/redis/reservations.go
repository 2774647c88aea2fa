package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// codeKeyPrefix namespaces voting-code reservations.
	// Key format: voting_code:<code>
	codeKeyPrefix = "voting_code:"

	collisionsKey = "voting_code:collisions"
	collisionsTTL = 24 * time.Hour
)

// Reservations tracks claimed voting codes in Redis. SETNX makes the claim
// atomic: when two generators race on the same code, exactly one write
// succeeds and the loser retries with a different derivation.
type Reservations struct {
	client *redis.Client
}

// NewReservations creates a Reservations wrapping the given Redis client.
func NewReservations(client *redis.Client) *Reservations {
	return &Reservations{client: client}
}

// Reserve claims code for ttl. It returns false when the code is already
// held by a live reservation.
func (r *Reservations) Reserve(ctx context.Context, code string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, codeKeyPrefix+code, code, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve %q: %w", code, err)
	}
	return ok, nil
}

// IncrCollisions bumps the rolling collision counter. The counter expires a
// day after its first increment so it reflects recent contention only.
func (r *Reservations) IncrCollisions(ctx context.Context) (int64, error) {
	n, err := r.client.Incr(ctx, collisionsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("incr collisions: %w", err)
	}
	if n == 1 {
		_ = r.client.Expire(ctx, collisionsKey, collisionsTTL).Err()
	}
	return n, nil
}
