package models

import "time"

type Order struct {
	ID              int64     `json:"id"`
	Reference       string    `json:"reference" example:"ord_V1StGXR8Z5jdHi6B"`
	PostcardID      int64     `json:"postcard_id"`
	Quantity        int       `json:"quantity"`
	RecipientName   string    `json:"recipient_name"`
	ShippingAddress string    `json:"shipping_address"`
	ContactEmail    *string   `json:"contact_email,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
