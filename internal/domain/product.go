package domain

// Product is the result of a barcode lookup against the product database.
// It is never persisted as-is; item creation copies the fields it wants.
type Product struct {
	Barcode    string `json:"barcode"`
	Name       string `json:"name"`
	Brand      string `json:"brand,omitempty"`
	Category   string `json:"category,omitempty"`
	Quantity   string `json:"quantity,omitempty"` // display string, e.g. "500 g"
	ImageURL   string `json:"image_url,omitempty"`
	Nutriscore string `json:"nutriscore,omitempty"`
}
