package session

import (
	"context"
	"fmt"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/infrastructure/google"
	"github.com/imnatewest/ai-fridge-app/internal/pkg/id"
	"github.com/imnatewest/ai-fridge-app/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string                        `json:"email" validate:"required,email"`
	Password string                        `json:"password" validate:"required"`
	Device   *domain.RegisterDeviceRequest `json:"device"`
}

type LoginResult struct {
	Bearer       string
	RefreshToken string
	Session      *domain.Session
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	LoginWithGoogle(ctx context.Context, idToken string, device *domain.RegisterDeviceRequest) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error)
	Refresh(ctx context.Context, refreshToken string) (bearer, newRefreshToken string, err error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) error
}

type deviceStore interface {
	GetByUUID(ctx context.Context, uuid string) (*domain.Device, error)
	Put(ctx context.Context, d *domain.Device) error
}

type jwtSigner interface {
	Sign(userID, deviceID, role, sessionID string) (string, error)
}

type googleVerifier interface {
	Verify(ctx context.Context, idToken string) (*google.Payload, error)
}

type service struct {
	sessionRepo    sessionStore
	userRepo       userStore
	deviceRepo     deviceStore
	jwtProvider    jwtSigner
	googleVerifier googleVerifier
	refreshExpiry  time.Duration
}

type ServiceDeps struct {
	SessionRepo    sessionStore
	UserRepo       userStore
	DeviceRepo     deviceStore
	JWTProvider    jwtSigner
	GoogleVerifier googleVerifier
	RefreshExpiry  time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		sessionRepo:    deps.SessionRepo,
		userRepo:       deps.UserRepo,
		deviceRepo:     deps.DeviceRepo,
		jwtProvider:    deps.JWTProvider,
		googleVerifier: deps.GoogleVerifier,
		refreshExpiry:  deps.RefreshExpiry,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.openSession(ctx, u, req.Device)
}

func (s *service) LoginWithGoogle(ctx context.Context, idToken string, device *domain.RegisterDeviceRequest) (*LoginResult, error) {
	if s.googleVerifier == nil {
		return nil, fmt.Errorf("google sign-in not configured: %w", domain.ErrBadRequest)
	}
	p, err := s.googleVerifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if p.Sub == "" || p.Email == "" || !p.EmailVerified {
		return nil, fmt.Errorf("google account not usable: %w", domain.ErrUnauthorized)
	}

	u, err := s.userRepo.GetByEmail(ctx, p.Email)
	switch {
	case err == nil:
		if !u.Enable {
			return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
		}
		if u.GoogleSub == "" {
			// First Google sign-in on a password account: link the identity.
			if u.PasswordHash == "" {
				return nil, fmt.Errorf("account cannot be linked: %w", domain.ErrUnauthorized)
			}
			if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{"google_sub": p.Sub}); err != nil {
				return nil, err
			}
			u.GoogleSub = p.Sub
		} else if u.GoogleSub != p.Sub {
			return nil, fmt.Errorf("google identity mismatch: %w", domain.ErrUnauthorized)
		}
	default:
		now := time.Now().UTC()
		u = &domain.User{
			UserID:       id.New(),
			Email:        p.Email,
			Role:         domain.RoleUser,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			AuthProvider: "google",
			GoogleSub:    p.Sub,
			Enable:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.userRepo.Put(ctx, u); err != nil {
			return nil, err
		}
	}
	return s.openSession(ctx, u, device)
}

func (s *service) openSession(ctx context.Context, u *domain.User, devReq *domain.RegisterDeviceRequest) (*LoginResult, error) {
	device, err := s.resolveDevice(ctx, devReq, u.UserID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		UserID:           u.UserID,
		DeviceID:         device.DeviceID,
		Enable:           true,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.refreshExpiry).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessionRepo.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.jwtProvider.Sign(u.UserID, device.DeviceID, u.Role, sess.SessionID)
	if err != nil {
		return nil, err
	}
	sess.User = u
	return &LoginResult{Bearer: bearer, RefreshToken: refreshToken, Session: sess}, nil
}

// resolveDevice returns the existing device registered under the client's
// UUID, or creates a fresh record. Push token and authorization state are
// handled separately by the device service.
func (s *service) resolveDevice(ctx context.Context, req *domain.RegisterDeviceRequest, userID string) (*domain.Device, error) {
	if req != nil {
		if d, err := s.deviceRepo.GetByUUID(ctx, req.UUID); err == nil {
			return d, nil
		}
	}
	now := time.Now().UTC()
	d := &domain.Device{
		DeviceID:      id.New(),
		UUID:          id.New(),
		UserID:        userID,
		Authorization: domain.AuthorizationNotDetermined,
		Enable:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req != nil {
		d.UUID = req.UUID
		d.Platform = req.Platform
		d.AppVersion = req.AppVersion
	}
	if err := s.deviceRepo.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Update(ctx, sessionID, map[string]interface{}{"enable": false})
}

func (s *service) GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Enable {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	u, err := s.userRepo.Get(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	sess.User = u
	return sess, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	sess, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	if sess.RefreshExpiresAt < time.Now().Unix() {
		return "", "", fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}
	u, err := s.userRepo.Get(ctx, sess.UserID)
	if err != nil {
		return "", "", err
	}
	if !u.Enable {
		return "", "", fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	newToken, err := token.NewRefreshToken()
	if err != nil {
		return "", "", err
	}
	newExpiry := time.Now().UTC().Add(s.refreshExpiry).Unix()
	if err := s.sessionRepo.RotateRefreshToken(ctx, sess.SessionID, newToken, newExpiry); err != nil {
		return "", "", err
	}
	bearer, err := s.jwtProvider.Sign(u.UserID, sess.DeviceID, u.Role, sess.SessionID)
	if err != nil {
		return "", "", err
	}
	return bearer, newToken, nil
}
