package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/joblane/joblane-api/internal/config"
	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/repository"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var ErrUnknownProvider = errors.New("unknown or unconfigured provider")

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthUserInfo contains user information fetched from the provider.
type OAuthUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// OAuthService handles the Google OAuth code exchange and account linking.
type OAuthService struct {
	configs  map[string]*oauth2.Config
	userRepo repository.UserRepository
}

// NewOAuthService creates a new OAuthService from the configured
// credentials.
func NewOAuthService(cfg *config.Config, userRepo repository.UserRepository) *OAuthService {
	configs := make(map[string]*oauth2.Config)

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		configs[models.ProviderGoogle] = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  cfg.AuthBaseURL + "/api/auth/callback/google",
			Scopes:       []string{"email", "profile"},
		}
	}

	return &OAuthService{
		configs:  configs,
		userRepo: userRepo,
	}
}

// AuthURL returns the provider authorization URL for the given state.
func (s *OAuthService) AuthURL(provider, state string) (string, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// HandleCallback exchanges the authorization code, fetches the provider
// profile, and finds or creates the matching user.
func (s *OAuthService) HandleCallback(ctx context.Context, provider, code string) (*models.User, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	info, err := fetchGoogleUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	return s.findOrCreateUser(provider, info, token)
}

func fetchGoogleUser(ctx context.Context, token *oauth2.Token) (*OAuthUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google API returned status %d", resp.StatusCode)
	}

	var info OAuthUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// findOrCreateUser resolves the provider identity to a local user. An
// existing user with the same email gets the provider linked as an
// additional account; otherwise a new verified user is created.
func (s *OAuthService) findOrCreateUser(provider string, info *OAuthUserInfo, token *oauth2.Token) (*models.User, error) {
	account, err := s.userRepo.FindAccount(provider, info.ID)
	if err == nil {
		s.refreshAccountTokens(account, token)
		return s.userRepo.FindByID(account.UserID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	user, err := s.userRepo.FindByEmail(info.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			Name:          info.Name,
			Email:         info.Email,
			EmailVerified: true, // provider-asserted
		}
		if info.Picture != "" {
			user.Image = &info.Picture
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	account = &models.Account{
		AccountID:  info.ID,
		ProviderID: provider,
		UserID:     user.ID,
	}
	applyTokens(account, token)

	if err := s.userRepo.CreateAccount(account); err != nil {
		return nil, fmt.Errorf("failed to link account: %w", err)
	}

	return user, nil
}

func (s *OAuthService) refreshAccountTokens(account *models.Account, token *oauth2.Token) {
	applyTokens(account, token)
	// A stale token copy is not worth failing the login over.
	_ = s.userRepo.UpdateAccount(account)
}

func applyTokens(account *models.Account, token *oauth2.Token) {
	access := token.AccessToken
	account.AccessToken = &access
	if token.RefreshToken != "" {
		refresh := token.RefreshToken
		account.RefreshToken = &refresh
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		account.AccessTokenExpiresAt = &expiry
	}
	if id, ok := token.Extra("id_token").(string); ok && id != "" {
		account.IDToken = &id
	}
}
