package user

import (
	"context"
	"testing"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u, _ := args.Get(0).([]domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) SoftDelete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) SoftDeleteByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Register tests ---

func TestRegister_HappyPath(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "alice@example.com" && u.Role == domain.RoleUser &&
			u.AuthProvider == "local" && u.Enable && u.PasswordHash != "secret123"
	})).Return(nil)

	svc := NewService(repo, &mockSessionStore{})
	u, err := svc.Register(context.Background(), domain.CreateUserRequest{
		Email: "alice@example.com", Password: "secret123", FirstName: "Alice", LastName: "Smith",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.UserID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
	repo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{UserID: "u1"}, nil)

	svc := NewService(repo, &mockSessionStore{})
	_, err := svc.Register(context.Background(), domain.CreateUserRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

// --- Update tests ---

func TestUpdate_EmailTakenByAnotherUser(t *testing.T) {
	repo := &mockUserStore{}
	email := "taken@example.com"
	repo.On("GetByEmail", mock.Anything, email).Return(&domain.User{UserID: "u2"}, nil)

	svc := NewService(repo, &mockSessionStore{})
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_SameUserKeepsEmail(t *testing.T) {
	repo := &mockUserStore{}
	email := "alice@example.com"
	u := &domain.User{UserID: "u1", Email: email}
	repo.On("GetByEmail", mock.Anything, email).Return(u, nil)
	repo.On("Update", mock.Anything, "u1", map[string]interface{}{"email": email}).Return(nil)
	repo.On("Get", mock.Anything, "u1").Return(u, nil)

	svc := NewService(repo, &mockSessionStore{})
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Email: &email})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_NoFields_ReturnsCurrent(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)

	svc := NewService(repo, &mockSessionStore{})
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

// --- Delete tests ---

func TestDelete_SoftDeletesUserAndSessions(t *testing.T) {
	repo := &mockUserStore{}
	sessions := &mockSessionStore{}
	repo.On("SoftDelete", mock.Anything, "u1").Return(nil)
	sessions.On("SoftDeleteByUser", mock.Anything, "u1").Return(nil)

	svc := NewService(repo, sessions)
	require.NoError(t, svc.Delete(context.Background(), "u1"))
	repo.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

// --- ChangePassword tests ---

func TestChangePassword_HappyPath(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PasswordHash: string(hash)}, nil)
	repo.On("Update", mock.Anything, "u1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		newHash, ok := updates["password_hash"].(string)
		return ok && bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-pass")) == nil
	})).Return(nil)

	svc := NewService(repo, &mockSessionStore{})
	require.NoError(t, svc.ChangePassword(context.Background(), "u1", "old-pass", "new-pass"))
	repo.AssertExpectations(t)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PasswordHash: string(hash)}, nil)

	svc := NewService(repo, &mockSessionStore{})
	err = svc.ChangePassword(context.Background(), "u1", "wrong", "new-pass")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_GoogleOnlyAccount(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", AuthProvider: "google"}, nil)

	svc := NewService(repo, &mockSessionStore{})
	err := svc.ChangePassword(context.Background(), "u1", "x", "new-pass")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
