package models

import "gorm.io/gorm"

// Cart is the mutable pre-checkout state of one user. There is at most one
// cart per user; it is created implicitly on the first item addition and is
// never hard-deleted, only emptied.
type Cart struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID            string     `json:"user_id" gorm:"type:varchar(36);uniqueIndex" validate:"required,uuid"`
	ShippingAddressID *string    `json:"shipping_address_id" gorm:"type:varchar(36)"`
	Items             []CartItem `json:"items" gorm:"foreignKey:CartID"`
	gorm.Model
}

// CartItem is one product variant in a cart. A cart holds at most one row
// per variant; adding the same variant again increments Quantity instead.
type CartItem struct {
	ID               string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CartID           string         `json:"cart_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_variant" validate:"required,uuid"`
	ProductVariantID string         `json:"product_variant_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_variant" validate:"required,uuid"`
	ProductVariant   ProductVariant `json:"product_variant" gorm:"foreignKey:ProductVariantID"`
	Quantity         int            `json:"quantity" validate:"required,gte=1"`
	gorm.Model
}

// TotalInCents sums the live catalog prices of all items. Carts price
// against the current catalog; only orders freeze prices.
func (c *Cart) TotalInCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.ProductVariant.PriceInCents * int64(item.Quantity)
	}
	return total
}
