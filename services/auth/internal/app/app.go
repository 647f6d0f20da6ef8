package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/usertoken"
	"jobboard/internal/util"
	"jobboard/pkg/auth"
	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
	"jobboard/services/auth/internal/store"
)

// dummyHash keeps login timing similar for unknown emails.
var dummyHash, _ = auth.HashPassword("jobboard-timing-equalizer")

// Config holds dependencies for the auth core.
type Config struct {
	DatabaseURL string
	Store       store.Store
	Token       usertoken.Config
	TokenTTL    time.Duration
}

// App registers users and issues access tokens.
type App struct {
	store  store.Store
	issuer *usertoken.Issuer
	now    func() time.Time
}

// New builds the app, opening Postgres when no store is injected.
func New(cfg Config) (*App, error) {
	issuer, err := usertoken.NewIssuer(cfg.Token, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("init token issuer: %w", err)
	}
	st := cfg.Store
	if st == nil {
		if cfg.DatabaseURL == "" {
			return nil, errors.New("database URL is required")
		}
		gs, err := store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
		st = gs
	}
	return &App{store: st, issuer: issuer, now: time.Now}, nil
}

// RegisterInput is a sign-up request.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// Register creates a user. Emails are compared case-insensitively.
func (a *App) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	role := domain.UserRole(strings.ToLower(strings.TrimSpace(in.Role)))
	if !role.Valid() {
		return domain.User{}, ErrInvalidRole
	}
	email := normalizeEmail(in.Email)
	if _, exists, err := a.store.GetUserByEmail(ctx, email); err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	} else if exists {
		return domain.User{}, ErrUserExists
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return domain.User{}, ErrPasswordTooLong
		}
		return domain.User{}, err
	}
	user := domain.User{
		ID:           util.NewID(),
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    a.now().UTC(),
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		if pgstore.IsDuplicate(err) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	util.LoggerFromContext(ctx).Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Token is an issued access token.
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login checks credentials and issues a token carrying sub, email and role.
func (a *App) Login(ctx context.Context, email, password string) (Token, error) {
	user, ok, err := a.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Token{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		auth.CheckPassword(password, dummyHash)
		return Token{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return Token{}, ErrInvalidCredentials
	}
	signed, err := a.issuer.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return Token{}, fmt.Errorf("issue token: %w", err)
	}
	return Token{AccessToken: signed, ExpiresIn: int(a.issuer.TTL().Seconds())}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
