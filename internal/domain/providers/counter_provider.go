package providers

import (
	"context"
)

// FeedCounter defines the shared counter of how many times the mascot was fed
type FeedCounter interface {
	// Increment atomically adds one and returns the new value
	Increment(ctx context.Context) (int64, error)

	// Current returns the counter value, zero when it was never set
	Current(ctx context.Context) (int64, error)
}
