package models

import (
	"time"
)

// OrderStatus is the lifecycle state of an order. This service only performs
// the pending -> paid transition; the remaining states are reached by
// fulfillment processes outside this codebase.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Order is an immutable snapshot of a cart at checkout time. Items and the
// denormalized total never change after creation; only Status moves.
type Order struct {
	ID                string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string      `json:"user_id" gorm:"type:varchar(36);index"`
	Status            OrderStatus `json:"status" gorm:"type:varchar(20)"`
	TotalInCents      int64       `json:"total_in_cents"`
	ShippingAddressID string      `json:"shipping_address_id" gorm:"type:varchar(36)"`
	// CheckoutSessionID records the most recent processor session created for
	// this order. Reconciliation trusts only the processor-echoed metadata;
	// this column exists so an operator can trace a session whose metadata
	// came back empty.
	CheckoutSessionID string      `json:"-" gorm:"type:varchar(255)"`
	Items             []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// OrderItem is a frozen line item. Name, description, image and unit price
// are copied from the catalog at order creation so later catalog edits can
// never alter a placed order.
type OrderItem struct {
	ID               string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID          string `json:"order_id" gorm:"type:varchar(36);index"`
	ProductVariantID string `json:"product_variant_id" gorm:"type:varchar(36)"`
	ProductName      string `json:"product_name" gorm:"type:varchar(255)"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	PriceInCents     int64  `json:"price_in_cents"`
	Quantity         int    `json:"quantity"`
}
