// Package auth simulates the identity provider: credentials are accepted as
// given and the resulting user is persisted to local storage. It exists so
// checkout can pre-fill contact fields and offer saved addresses; it makes
// no security claims.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dulces-storefront/internal/domain"
	"dulces-storefront/internal/storage"
)

const (
	userKey  = "user"
	resetKey = "reset_code"

	resetCodeTTL   = 15 * time.Minute
	minPasswordLen = 6
)

var (
	// ErrNotAuthenticated indicates no user is logged in.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidResetCode is returned when the reset code does not match.
	ErrInvalidResetCode = errors.New("invalid reset code")
	// ErrResetCodeExpired is returned when the reset code is past its TTL.
	ErrResetCodeExpired = errors.New("reset code expired")
)

// Service manages the mock identity lifecycle: login, register, guest
// sessions, logout and password reset codes.
type Service struct {
	mu      sync.Mutex
	user    *domain.User
	storage storage.Store
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// New builds a Service, rehydrating a previously persisted user. A corrupt
// stored user is logged and discarded.
func New(ctx context.Context, st storage.Store, logger *zap.SugaredLogger) *Service {
	s := &Service{storage: st, logger: logger, now: time.Now}
	raw, err := st.Get(ctx, userKey)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		logger.Warnw("load user from storage", "error", err)
	default:
		var user domain.User
		if err := json.Unmarshal(raw, &user); err != nil {
			logger.Warnw("failed to parse user from storage", "error", err)
		} else {
			s.user = &user
		}
	}
	return s
}

// Login signs in with any credentials and yields a demo profile with saved
// addresses, mirroring the mock provider this storefront ships with.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errors.New("email required")
	}
	user := &domain.User{
		Email: email,
		Name:  localPart(email),
		Phone: "+56 9 1234 5678",
		Addresses: []domain.Address{
			{
				ID:      uuid.NewString(),
				Title:   "Casa",
				Region:  "Metropolitana",
				Commune: "Santiago",
				Address: "Av. Siempre Viva 742",
			},
			{
				ID:      uuid.NewString(),
				Title:   "Oficina",
				Region:  "Metropolitana",
				Commune: "Providencia",
				Address: "Av. Providencia 1234, Of 505",
			},
		},
	}
	s.setUser(ctx, user)
	return copyUser(user), nil
}

// Register creates a new identity. The name defaults to the local part of
// the email when omitted.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errors.New("email required")
	}
	if name == "" {
		name = localPart(email)
	}
	user := &domain.User{Email: email, Name: name}
	s.setUser(ctx, user)
	return copyUser(user), nil
}

// LoginAsGuest starts an anonymous session. Guest identities never pre-fill
// checkout data.
func (s *Service) LoginAsGuest(ctx context.Context) *domain.User {
	user := &domain.User{Email: "guest@example.com", IsGuest: true}
	s.setUser(ctx, user)
	return copyUser(user)
}

// Logout clears the persisted identity.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	if err := s.storage.Delete(ctx, userKey); err != nil {
		s.logger.Warnw("remove persisted user", "error", err)
	}
}

// Current returns the logged-in user, or ErrNotAuthenticated. Guest checkout
// is a fully valid state; callers treat the error as "no identity".
func (s *Service) Current(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, ErrNotAuthenticated
	}
	return copyUser(s.user), nil
}

// RequestReset issues a short-lived 4-digit reset code for email. With no
// mail transport, the code is logged and returned to the caller.
func (s *Service) RequestReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", errors.New("email required")
	}
	code, err := randomCode()
	if err != nil {
		return "", err
	}
	record := domain.ResetCode{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(resetCodeTTL),
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	if err := s.storage.Put(ctx, resetKey, raw); err != nil {
		return "", fmt.Errorf("persist reset code: %w", err)
	}
	s.logger.Infow("password reset code issued", "email", email, "code", code)
	return code, nil
}

// ResetPassword validates the code for email and accepts the new password.
// The mock provider stores no password, so success only consumes the code.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	raw, err := s.storage.Get(ctx, resetKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidResetCode
		}
		return fmt.Errorf("load reset code: %w", err)
	}
	var record domain.ResetCode
	if err := json.Unmarshal(raw, &record); err != nil {
		return ErrInvalidResetCode
	}
	if record.Email != email || record.Code != code {
		return ErrInvalidResetCode
	}
	if record.Expired(s.now()) {
		if err := s.storage.Delete(ctx, resetKey); err != nil {
			s.logger.Warnw("remove expired reset code", "error", err)
		}
		return ErrResetCodeExpired
	}
	if err := s.storage.Delete(ctx, resetKey); err != nil {
		s.logger.Warnw("remove used reset code", "error", err)
	}
	return nil
}

func (s *Service) setUser(ctx context.Context, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.Warnw("encode user", "error", err)
		return
	}
	if err := s.storage.Put(ctx, userKey, raw); err != nil {
		s.logger.Warnw("persist user", "error", err)
	}
}

func localPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

func copyUser(u *domain.User) *domain.User {
	out := *u
	if u.Addresses != nil {
		out.Addresses = make([]domain.Address, len(u.Addresses))
		copy(out.Addresses, u.Addresses)
	}
	return &out
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
