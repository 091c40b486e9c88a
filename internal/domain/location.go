package domain

// Location is a storage area items can be filed under (fridge, freezer, pantry, ...).
// Managed by admins, readable by everyone.
type Location struct {
	LocationID string `json:"id" dynamodbav:"location_id"`
	Name       string `json:"name" dynamodbav:"name"`
}

type LocationInput struct {
	Name string `json:"name" validate:"required"`
}
