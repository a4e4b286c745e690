package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"loja/internal/cache"
	"loja/internal/errs"
	"loja/internal/models"
	"loja/internal/repositories"
)

// CartService owns the mutable pre-checkout state of each user: items,
// quantities and the shipping address link.
type CartService struct {
	cartRepo    repositories.CartRepository
	catalogRepo repositories.CatalogRepository
	addressRepo repositories.AddressRepository
	cache       cache.CartCache // optional; nil disables caching
}

// NewCartService creates a new CartService.
func NewCartService(
	cartRepo repositories.CartRepository,
	catalogRepo repositories.CatalogRepository,
	addressRepo repositories.AddressRepository,
	cartCache cache.CartCache,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		addressRepo: addressRepo,
		cache:       cartCache,
	}
}

// AddItem puts quantity of a variant into the user's cart, creating the
// cart on first use. Adding a variant that is already present increments
// the existing row instead of duplicating it. Returns the updated cart.
func (s *CartService) AddItem(ctx context.Context, userID, variantID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, errs.Validation("quantity", "must be at least 1")
	}
	if variantID == "" {
		return nil, errs.Validation("productVariantId", "is required")
	}

	// The variant must exist in the catalog before it can be carted.
	if _, err := s.catalogRepo.GetVariantByID(variantID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.AddItem(userID, variantID, quantity); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	return s.cartRepo.GetByUserID(userID)
}

// LinkShippingAddress points the user's cart at one of their addresses.
// Re-linking the same address is a no-op success; a different address
// overwrites the link. An empty cart cannot take an address.
func (s *CartService) LinkShippingAddress(ctx context.Context, userID, addressID string) error {
	if addressID == "" {
		return errs.Validation("shippingAddressId", "is required")
	}

	// Ownership check; a foreign address reads as missing.
	if _, err := s.addressRepo.GetByIDForUser(addressID, userID); err != nil {
		return err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if len(cart.Items) == 0 {
		return fmt.Errorf("cannot link a shipping address to an empty cart: %w", errs.ErrInvalidState)
	}

	if cart.ShippingAddressID != nil && *cart.ShippingAddressID == addressID {
		return nil
	}

	if err := s.cartRepo.LinkShippingAddress(cart.ID, addressID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// GetCart returns the user's cart with items and the computed total.
// Returns errs.ErrNotFound when the user has never carted anything;
// callers decide how to render "no cart" versus "empty cart".
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cart cache get error for user %s: %v", userID, err)
		}
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, cart); err != nil {
			log.Printf("cart cache set error for user %s: %v", userID, err)
		}
	}
	return cart, nil
}

// CreateShippingAddress stores a new delivery address for the user. This
// is the identification step of checkout; the address becomes linkable to
// the cart once stored.
func (s *CartService) CreateShippingAddress(ctx context.Context, userID string, address *models.ShippingAddress) error {
	address.UserID = userID
	return s.addressRepo.Create(address)
}

// invalidate drops the cached cart after a mutation. Cache failures are
// logged and ignored; the database stays authoritative.
func (s *CartService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.Printf("cart cache invalidate error for user %s: %v", userID, err)
	}
}
