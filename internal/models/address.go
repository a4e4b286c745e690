package models

import "gorm.io/gorm"

// ShippingAddress is a delivery address owned by a user. Carts hold a
// reference to one of these, never a copy.
type ShippingAddress struct {
	ID            string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID        string `json:"user_id" gorm:"type:varchar(36);index" validate:"required,uuid"`
	RecipientName string `json:"recipient_name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Street        string `json:"street" gorm:"type:varchar(255)" validate:"required,max=255"`
	City          string `json:"city" gorm:"type:varchar(100)" validate:"required,max=100"`
	State         string `json:"state" gorm:"type:varchar(100)" validate:"required,max=100"`
	ZipCode       string `json:"zip_code" gorm:"type:varchar(20)" validate:"required,max=20"`
	gorm.Model
}
