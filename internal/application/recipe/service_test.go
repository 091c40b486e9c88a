package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockItemStore struct{ mock.Mock }

func (m *mockItemStore) ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if items, _ := args.Get(0).([]domain.InventoryItem); items != nil {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockChatClient struct{ mock.Mock }

func (m *mockChatClient) Chat(ctx context.Context, messages []openai.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

type mockPhotoSearcher struct{ mock.Mock }

func (m *mockPhotoSearcher) SearchPhoto(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

const sampleReply = `[{"title":"Milk Pancakes","description":"Quick pancakes.","ingredients":["milk","flour"],"instructions":["Mix.","Fry."]}]`

func fridgeItems() []domain.InventoryItem {
	soon := time.Now().Add(48 * time.Hour)
	later := time.Now().Add(30 * 24 * time.Hour)
	return []domain.InventoryItem{
		{ItemID: "i1", Name: "Milk", ExpiresAt: &soon},
		{ItemID: "i2", Name: "Flour", ExpiresAt: &later},
	}
}

func TestSuggest_ParsesAndDecorates(t *testing.T) {
	items := &mockItemStore{}
	chat := &mockChatClient{}
	photos := &mockPhotoSearcher{}
	items.On("ListByUser", mock.Anything, "u1").Return(fridgeItems(), nil)
	chat.On("Chat", mock.Anything, mock.Anything).Return(sampleReply, nil)
	photos.On("SearchPhoto", mock.Anything, "Milk Pancakes").Return("https://images.example.com/pancakes.jpg", nil)

	svc := NewService(items, chat, photos)
	got, err := svc.Suggest(context.Background(), "u1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Milk Pancakes", got[0].Title)
	assert.Equal(t, "https://images.example.com/pancakes.jpg", got[0].PhotoURL)
}

func TestSuggest_PhotoFailureLeavesURLEmpty(t *testing.T) {
	items := &mockItemStore{}
	chat := &mockChatClient{}
	photos := &mockPhotoSearcher{}
	items.On("ListByUser", mock.Anything, "u1").Return(fridgeItems(), nil)
	chat.On("Chat", mock.Anything, mock.Anything).Return(sampleReply, nil)
	photos.On("SearchPhoto", mock.Anything, mock.Anything).Return("", assert.AnError)

	svc := NewService(items, chat, photos)
	got, err := svc.Suggest(context.Background(), "u1", 1)
	require.NoError(t, err)
	assert.Empty(t, got[0].PhotoURL)
}

func TestSuggest_EmptyInventory(t *testing.T) {
	items := &mockItemStore{}
	items.On("ListByUser", mock.Anything, "u1").Return([]domain.InventoryItem{}, nil)

	svc := NewService(items, &mockChatClient{}, nil)
	_, err := svc.Suggest(context.Background(), "u1", 3)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSuggest_ExpiredItemsExcluded(t *testing.T) {
	expired := time.Now().Add(-72 * time.Hour)
	items := &mockItemStore{}
	items.On("ListByUser", mock.Anything, "u1").Return([]domain.InventoryItem{
		{ItemID: "i1", Name: "Old yogurt", ExpiresAt: &expired},
	}, nil)

	svc := NewService(items, &mockChatClient{}, nil)
	_, err := svc.Suggest(context.Background(), "u1", 3)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestParseSuggestions_PlainJSON(t *testing.T) {
	got, err := parseSuggestions(sampleReply)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"milk", "flour"}, got[0].Ingredients)
}

func TestParseSuggestions_MarkdownFences(t *testing.T) {
	got, err := parseSuggestions("```json\n" + sampleReply + "\n```")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Milk Pancakes", got[0].Title)
}

func TestParseSuggestions_Garbage(t *testing.T) {
	_, err := parseSuggestions("Sure! Here are some ideas:")
	assert.Error(t, err)
}

func TestUsableIngredients_SoonFirst(t *testing.T) {
	names := usableIngredients(fridgeItems())
	assert.Equal(t, []string{"Milk", "Flour"}, names)
}
