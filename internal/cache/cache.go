package cache

import (
	"context"
	"errors"

	"loja/internal/models"
)

// CartCache is a non-authoritative read cache for cart summaries. The
// database remains the arbiter of consistency; every cart mutation must
// invalidate the entry. Entries are snapshots: a catalog price change does
// not invalidate them, so a cached total can lag the live price by up to
// the entry's TTL. Orders are never priced from here.
type CartCache interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Set(ctx context.Context, userID string, cart *models.Cart) error
	Invalidate(ctx context.Context, userID string) error
}

// ErrCacheMiss reports that no entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")
