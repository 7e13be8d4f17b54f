package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/joblane/joblane-api/internal/constants"
	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/repository"
	"github.com/joblane/joblane-api/internal/utils"
	"github.com/joblane/joblane-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrVerificationExpired  = errors.New("verification token expired")
	ErrVerificationNotFound = errors.New("verification token not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles credential authentication and session lifecycle.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// Signup creates a user with a credential account and a pending email
// verification token. Input is assumed to have passed the signup schema.
func (s *AuthService) Signup(input validation.SignupInput) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:  input.Name(),
		Email: input.Email,
	}

	hash := string(hashedPassword)
	account := &models.Account{
		ProviderID: models.ProviderCredential,
		Password:   &hash,
	}

	token, err := utils.NewVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to create verification token: %w", err)
	}
	verification := &models.Verification{
		Identifier: input.Email,
		Value:      token,
		ExpiresAt:  time.Now().Add(constants.VerificationTokenLifetime),
	}

	if err := s.userRepo.CreateWithAccount(user, account, verification); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateUser):
			return nil, ErrFailedToCreateUser
		default:
			return nil, fmt.Errorf("failed to complete signup: %w", err)
		}
	}

	return user, nil
}

// Login verifies email/password credentials and returns the user.
func (s *AuthService) Login(input validation.LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	account, err := s.userRepo.FindCredentialAccount(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// OAuth-only user; no password to compare against.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account.Password == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CreateSession issues a session row for a user.
func (s *AuthService) CreateSession(user *models.User, ipAddress, userAgent string) (*models.Session, error) {
	token, err := utils.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &models.Session{
		Token:     token,
		ExpiresAt: time.Now().Add(constants.SessionLifetime),
		UserID:    user.ID,
		User:      *user,
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// ResolveSession looks up a session token and enforces expiry. An expired
// row is removed on sight.
func (s *AuthService) ResolveSession(token string) (*models.Session, error) {
	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if session.Expired() {
		_ = s.sessionRepo.Delete(token)
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// SignOut removes the session behind a token.
func (s *AuthService) SignOut(token string) error {
	return s.sessionRepo.Delete(token)
}

// SetActiveOrganization points a session at an organization.
func (s *AuthService) SetActiveOrganization(sessionID string, organizationID *string) error {
	return s.sessionRepo.SetActiveOrganization(sessionID, organizationID)
}

// VerifyEmail consumes a verification token and marks the user verified.
func (s *AuthService) VerifyEmail(token string) (*models.User, error) {
	verification, err := s.userRepo.ConsumeVerification(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to consume verification: %w", err)
	}

	if time.Now().After(verification.ExpiresAt) {
		return nil, ErrVerificationExpired
	}

	user, err := s.userRepo.FindByEmail(verification.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.EmailVerified = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
