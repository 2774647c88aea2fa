package ports

import (
	"context"
	"time"
)

// CodeReservations tracks which voting codes are currently claimed. The
// reservation write is the sole source of truth for "reserved": two
// concurrent generators racing on the same code must be resolved by the
// cache's own set-if-absent atomicity, never by client-side locking.
type CodeReservations interface {
	// Reserve atomically claims code for ttl. It returns false when the code
	// is already held by another reservation.
	Reserve(ctx context.Context, code string, ttl time.Duration) (bool, error)
	// IncrCollisions bumps the rolling collision counter and returns its
	// new value.
	IncrCollisions(ctx context.Context) (int64, error)
}
