package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/repository"
	"github.com/thatchakomP/pixel-cat-callior/util"
)

// AuthService registers accounts and issues session tokens.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

type authService struct {
	users    UserStore
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(users UserStore, secret []byte, tokenTTL time.Duration, now func() time.Time) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{users: users, secret: secret, tokenTTL: tokenTTL, now: now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with empty progress.
func (a *authService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}
	if err := util.ValidateEmail(email); err != nil {
		return nil, invalid(err.Error())
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, invalid(err.Error())
	}

	_, err := a.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Email:             email,
		Password:          hash,
		Goals:             []string{},
		CaloriesUpdatedAt: a.now().UTC(),
	}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("User registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and signs a token for the user.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := a.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if !util.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user.ID, user.Email, a.secret, a.tokenTTL, a.now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
