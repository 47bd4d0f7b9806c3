package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"sitrack/internal/auth"
	"sitrack/internal/model"
	"sitrack/internal/repository"
)

// TokenIssuer signs session tokens for a profile.
type TokenIssuer interface {
	Issue(p *model.Profile) (string, time.Time, error)
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresAt   time.Time      `json:"expires_at"`
	Profile     *model.Profile `json:"profile"`
}

// AuthService authenticates users.
type AuthService interface {
	// Login checks username and password and issues a token.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Me returns the profile of an authenticated user.
	Me(ctx context.Context, id string) (*model.Profile, error)
}

type authService struct {
	store  repository.Store
	tokens TokenIssuer
}

// NewAuthService constructs a new AuthService.
func NewAuthService(store repository.Store, tokens TokenIssuer) AuthService {
	return &authService{store: store, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalidf("username and password are required")
	}
	p, err := s.store.Profiles().FindByName(ctx, username)
	if err != nil {
		if errors.Is(notFound(err, "profile"), ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := auth.CheckPassword(p.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	token, exp, err := s.tokens.Issue(p)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp, Profile: p}, nil
}

func (s *authService) Me(ctx context.Context, id string) (*model.Profile, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.store.Profiles().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "profile")
	}
	return p, nil
}
