package repository

import (
	"errors"
	"fmt"

	"github.com/joblane/joblane-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateAccount is returned when creating the credential account fails inside the signup transaction.
	ErrCreateAccount = errors.New("user repository: create account failed")
	// ErrCreateVerification is returned when creating the verification token fails inside the signup transaction.
	ErrCreateVerification = errors.New("user repository: create verification failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithAccount creates the user, credential account, and verification
// token atomically. No partial account creation survives a failure.
func (r *GormUserRepository) CreateWithAccount(user *models.User, account *models.Account, verification *models.Verification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		account.UserID = user.ID
		account.AccountID = user.ID

		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateAccount, err)
		}

		if verification != nil {
			if err := tx.Create(verification).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateVerification, err)
			}
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// FindAccount finds an account row by provider and provider-side ID
func (r *GormUserRepository) FindAccount(providerID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("provider_id = ? AND account_id = ?", providerID, accountID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindCredentialAccount finds the password account of a user
func (r *GormUserRepository) FindCredentialAccount(userID string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("user_id = ? AND provider_id = ?", userID, models.ProviderCredential).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount links a new account row to an existing user
func (r *GormUserRepository) CreateAccount(account *models.Account) error {
	return r.db.Create(account).Error
}

// UpdateAccount persists refreshed provider tokens
func (r *GormUserRepository) UpdateAccount(account *models.Account) error {
	return r.db.Save(account).Error
}

// ConsumeVerification deletes and returns a verification row matching the
// token value. A consumed token cannot be replayed.
func (r *GormUserRepository) ConsumeVerification(value string) (*models.Verification, error) {
	var verification models.Verification
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("value = ?", value).First(&verification).Error; err != nil {
			return err
		}
		return tx.Delete(&verification).Error
	})
	if err != nil {
		return nil, err
	}
	return &verification, nil
}
