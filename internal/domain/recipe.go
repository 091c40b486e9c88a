package domain

// RecipeSuggestion is a single recipe proposed from the user's current inventory.
type RecipeSuggestion struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PhotoURL     string   `json:"photo_url,omitempty"`
}
