package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tenantward/tenantward/pkg/jwt"
	"github.com/tenantward/tenantward/pkg/logger"
	"github.com/tenantward/tenantward/pkg/tenant"
)

// Config holds token issuance settings.
type Config struct {
	SigningKey     string        `env:"JWT_SIGNING_KEY,required"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	Issuer         string        `env:"JWT_ISSUER" envDefault:"tenantward"`
}

// dummyHash is compared against when the email is unknown so login
// takes the same time whether or not the account exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Service authenticates users and issues access tokens.
type Service struct {
	repo Repository
	jwt  *jwt.Service
	cfg  Config
	log  *slog.Logger
}

// NewService creates the auth service.
func NewService(repo Repository, cfg Config, log *slog.Logger) (*Service, error) {
	signer, err := jwt.NewService([]byte(cfg.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	return &Service{repo: repo, jwt: signer, cfg: cfg, log: log}, nil
}

// Token is an issued access token and its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Login verifies credentials within a tenant and issues a token carrying
// that tenant's claim.
func (s *Service) Login(ctx context.Context, tenantID, email, password string) (*Token, error) {
	tenantID, err := tenant.NormalizeID(tenantID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, tenantID, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Burn a hash comparison anyway; see dummyHash.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Disabled {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issue(u)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", u.ID.String()),
		logger.TenantID(u.TenantID))
	return token, nil
}

// Refresh exchanges a still-valid token for a fresh one after confirming
// the account still exists and is enabled.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*Token, error) {
	var claims jwt.Claims
	if err := s.jwt.Parse(rawToken, &claims); err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: refresh: %w", err)
	}
	if u.Disabled {
		return nil, ErrInvalidCredentials
	}

	return s.issue(u)
}

// Register creates a user within a tenant. Exposed for seeding and
// admin tooling rather than a public signup flow.
func (s *Service) Register(ctx context.Context, tenantID, email, password string) (*User, error) {
	tenantID, err := tenant.NormalizeID(tenantID)
	if err != nil {
		return nil, fmt.Errorf("auth: register: %w", err)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("auth: register: %w", ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) issue(u *User) (*Token, error) {
	expiresAt := time.Now().Add(s.cfg.AccessTokenTTL)
	raw, err := s.jwt.Issue(jwt.Claims{
		Subject:  u.ID.String(),
		Issuer:   s.cfg.Issuer,
		TenantID: u.TenantID,
	}, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}
	return &Token{AccessToken: raw, ExpiresAt: expiresAt}, nil
}
