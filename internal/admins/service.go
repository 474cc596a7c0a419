package admins

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"genius-backend/internal/shared/auth"
	"genius-backend/internal/shared/metrics"
	"genius-backend/internal/shared/telemetry"
)

const minPasswordLength = 8

// Service signs admins in and out and verifies their sessions.
type Service struct {
	Repo    Repo
	Signer  *auth.Signer
	Revoked Revocations
	// Cost is the bcrypt cost used for new hashes.
	Cost int
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, signer *auth.Signer, revoked Revocations) *Service {
	if revoked == nil {
		revoked = NewMemoryRevocations()
	}
	return &Service{Repo: repo, Signer: signer, Revoked: revoked, Cost: bcrypt.DefaultCost, Now: time.Now}
}

// Login checks credentials and issues a session. Unknown emails and wrong
// passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.IncAdminLogin("rejected")
		return Session{}, ErrInvalidCredentials
	}

	admin, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.IncAdminLogin("rejected")
			telemetry.Warn("admin.login_rejected", map[string]any{"reason": "unknown_email"})
			return Session{}, ErrInvalidCredentials
		}
		metrics.IncAdminLogin("error")
		return Session{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		metrics.IncAdminLogin("rejected")
		telemetry.Warn("admin.login_rejected", map[string]any{"reason": "bad_password", "admin_id": admin.ID})
		return Session{}, ErrInvalidCredentials
	}

	sess, err := s.issue(admin)
	if err != nil {
		metrics.IncAdminLogin("error")
		return Session{}, err
	}
	metrics.IncAdminLogin("success")
	telemetry.Info("admin.login", map[string]any{"admin_id": admin.ID, "method": "password"})
	return sess, nil
}

// LoginWithEmail issues a session for an already-verified identity, such as a
// Google account. Only registered admins get one.
func (s *Service) LoginWithEmail(ctx context.Context, email string) (Session, error) {
	admin, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.IncAdminLogin("rejected")
			return Session{}, ErrUnauthorized
		}
		metrics.IncAdminLogin("error")
		return Session{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	sess, err := s.issue(admin)
	if err != nil {
		metrics.IncAdminLogin("error")
		return Session{}, err
	}
	metrics.IncAdminLogin("success")
	telemetry.Info("admin.login", map[string]any{"admin_id": admin.ID, "method": "google"})
	return sess, nil
}

// Logout revokes the session carried by token.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.Signer.Parse(token)
	if err != nil {
		return ErrUnauthorized
	}
	if err := s.Revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	telemetry.Info("admin.logout", map[string]any{"admin_id": claims.Subject})
	return nil
}

// Verify checks signature, expiry and revocation of a session token.
func (s *Service) Verify(ctx context.Context, token string) (auth.Claims, error) {
	claims, err := s.Signer.Parse(token)
	if err != nil {
		return auth.Claims{}, ErrUnauthorized
	}
	revoked, err := s.Revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, auth.ErrSessionStoreUnavailable, err)
	}
	if revoked {
		return auth.Claims{}, ErrUnauthorized
	}
	return claims, nil
}

// Me returns the admin behind a verified session.
func (s *Service) Me(ctx context.Context, adminID string) (Admin, error) {
	admin, err := s.Repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Admin{}, err
		}
		return Admin{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return admin, nil
}

// EnsureAdmin creates the admin if no account uses email yet. It reports
// whether a new account was created; an existing account is left unchanged.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (Admin, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if err := validateCredentials(email, password); err != nil {
		return Admin{}, false, err
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Admin{}, false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return Admin{}, false, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	admin := Admin{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, admin); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return Admin{}, false, err
		}
		return Admin{}, false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	telemetry.Info("admin.created", map[string]any{"admin_id": admin.ID})
	return admin, true, nil
}

// ResetPassword replaces the password of the admin registered under email.
func (s *Service) ResetPassword(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateCredentials(email, password); err != nil {
		return err
	}
	admin, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Repo.UpdatePassword(ctx, admin.ID, string(hash)); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	telemetry.Info("admin.password_reset", map[string]any{"admin_id": admin.ID})
	return nil
}

func (s *Service) issue(admin Admin) (Session, error) {
	token, claims, err := s.Signer.Sign(admin.ID, admin.Email, admin.Name)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, Admin: admin}, nil
}

func (s *Service) cost() int {
	if s.Cost < bcrypt.MinCost {
		return bcrypt.DefaultCost
	}
	return s.Cost
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: email is not a valid address", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}
