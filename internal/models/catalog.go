package models

import "gorm.io/gorm"

// Product is a catalog entry. The catalog is maintained by an external
// system; this service only reads it when snapshotting prices.
type Product struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	gorm.Model
}

// ProductVariant is a purchasable variation of a product (color, size, ...).
// PriceInCents is the current catalog price in minor currency units.
type ProductVariant struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID    string  `json:"product_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	Product      Product `json:"product" gorm:"foreignKey:ProductID"`
	Name         string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	PriceInCents int64   `json:"price_in_cents" validate:"required,gt=0"`
	ImageURL     string  `json:"image_url" validate:"omitempty,url"`
	gorm.Model
}
