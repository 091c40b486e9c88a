// Package recipe turns the user's current inventory into cooking suggestions
// via an OpenAI-compatible chat API, with optional photo decoration.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/expiration"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/openai"
)

const maxSuggestions = 5

type Service interface {
	Suggest(ctx context.Context, userID string, count int) ([]domain.RecipeSuggestion, error)
}

type itemStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error)
}

type chatClient interface {
	Chat(ctx context.Context, messages []openai.Message) (string, error)
}

type photoSearcher interface {
	SearchPhoto(ctx context.Context, query string) (string, error)
}

type service struct {
	items  itemStore
	chat   chatClient
	photos photoSearcher // nil disables photo decoration
}

func NewService(items itemStore, chat chatClient, photos photoSearcher) Service {
	return &service{items: items, chat: chat, photos: photos}
}

func (s *service) Suggest(ctx context.Context, userID string, count int) ([]domain.RecipeSuggestion, error) {
	if s.chat == nil {
		return nil, fmt.Errorf("recipe suggestions not configured: %w", domain.ErrBadRequest)
	}
	if count < 1 || count > maxSuggestions {
		count = 3
	}
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ingredients := usableIngredients(items)
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("inventory is empty: %w", domain.ErrBadRequest)
	}

	raw, err := s.chat.Chat(ctx, []openai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt(ingredients, count)},
	})
	if err != nil {
		return nil, fmt.Errorf("recipe generation failed: %w", err)
	}
	suggestions, err := parseSuggestions(raw)
	if err != nil {
		return nil, err
	}

	// Photo decoration is best effort; a miss leaves PhotoURL empty.
	if s.photos != nil {
		for i := range suggestions {
			url, err := s.photos.SearchPhoto(ctx, suggestions[i].Title)
			if err != nil {
				slog.Debug("recipe photo lookup failed", "title", suggestions[i].Title, "err", err)
				continue
			}
			suggestions[i].PhotoURL = url
		}
	}
	return suggestions, nil
}

// usableIngredients lists the names of items that have not expired yet,
// expiring-soon ones first so the model prioritises them.
func usableIngredients(items []domain.InventoryItem) []string {
	p := expiration.PartitionItems(items, time.Now())
	names := make([]string, 0, len(p.ExpiringSoon)+len(p.Later))
	for _, item := range p.ExpiringSoon {
		names = append(names, item.Name)
	}
	for _, item := range p.Later {
		names = append(names, item.Name)
	}
	return names
}

const systemPrompt = "You are a cooking assistant. Respond with a JSON array only, no prose. " +
	`Each element: {"title": string, "description": string, "ingredients": [string], "instructions": [string]}.`

func userPrompt(ingredients []string, count int) string {
	return fmt.Sprintf(
		"Suggest %d recipes using mainly these ingredients (the first ones listed expire soonest, prefer them): %s. "+
			"Assume common pantry staples are available.",
		count, strings.Join(ingredients, ", "))
}

// parseSuggestions decodes the model output, tolerating markdown code fences.
func parseSuggestions(raw string) ([]domain.RecipeSuggestion, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var suggestions []domain.RecipeSuggestion
	if err := json.Unmarshal([]byte(trimmed), &suggestions); err != nil {
		return nil, fmt.Errorf("model returned unparseable recipes: %w", err)
	}
	return suggestions, nil
}
