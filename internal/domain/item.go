package domain

import "time"

type InventoryItem struct {
	ItemID     string     `json:"id" dynamodbav:"item_id"`
	UserID     string     `json:"user_id" dynamodbav:"user_id"`
	Name       string     `json:"name" dynamodbav:"name"`
	Barcode    string     `json:"barcode,omitempty" dynamodbav:"barcode"`
	Category   string     `json:"category,omitempty" dynamodbav:"category"`
	LocationID string     `json:"location_id,omitempty" dynamodbav:"location_id"`
	Quantity   float64    `json:"quantity" dynamodbav:"quantity"`
	Unit       string     `json:"unit,omitempty" dynamodbav:"unit"`
	// ExpiresAt is nil for items without an expiration concern (never reminded).
	ExpiresAt *time.Time `json:"expires_at,omitempty" dynamodbav:"expires_at"`
	PhotoKey  string     `json:"photo_key,omitempty" dynamodbav:"photo_key"`
	Notes     string     `json:"notes,omitempty" dynamodbav:"notes"`
	CreatedAt time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateItemRequest struct {
	Name       string  `json:"name" validate:"required_without=Barcode"`
	Barcode    string  `json:"barcode"`
	Category   string  `json:"category"`
	LocationID string  `json:"location_id"`
	Quantity   float64 `json:"quantity" validate:"omitempty,gt=0"`
	Unit       string  `json:"unit"`
	ExpiresAt  *string `json:"expires_at"` // YYYY-MM-DD
	Notes      string  `json:"notes"`
}

type UpdateItemRequest struct {
	Name       *string  `json:"name"`
	Category   *string  `json:"category"`
	LocationID *string  `json:"location_id"`
	Quantity   *float64 `json:"quantity" validate:"omitempty,gt=0"`
	Unit       *string  `json:"unit"`
	ExpiresAt  *string  `json:"expires_at"` // YYYY-MM-DD; empty string clears it
	Notes      *string  `json:"notes"`
}
