package repository

import (
	"github.com/joblane/joblane-api/internal/models"
)

// UserRepository defines the interface for user and account data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithAccount creates a user, their credential account, and the
	// pending email verification token within a single transaction.
	CreateWithAccount(user *models.User, account *models.Account, verification *models.Verification) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// FindAccount finds an account row by provider and provider-side ID
	FindAccount(providerID, accountID string) (*models.Account, error)

	// FindCredentialAccount finds the password account of a user
	FindCredentialAccount(userID string) (*models.Account, error)

	// CreateAccount links a new account row to an existing user
	CreateAccount(account *models.Account) error

	// UpdateAccount persists refreshed provider tokens
	UpdateAccount(account *models.Account) error

	// ConsumeVerification deletes and returns a verification row matching
	// the token value, if one exists
	ConsumeVerification(value string) (*models.Verification, error)
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create creates a new session
	Create(session *models.Session) error

	// FindByToken finds a non-deleted session by its token with the owning
	// user preloaded; expiry is checked by the caller
	FindByToken(token string) (*models.Session, error)

	// Delete removes a session by token
	Delete(token string) error

	// DeleteForUser removes every session of a user
	DeleteForUser(userID string) error

	// SetActiveOrganization updates the active organization pointer
	SetActiveOrganization(sessionID string, organizationID *string) error
}

// OrganizationRepository defines the interface for organization,
// membership and invitation data access
type OrganizationRepository interface {
	// Create creates an organization and its owner membership atomically
	Create(org *models.Organization, owner *models.Member) error

	// FindByID finds an organization by ID
	FindByID(id string) (*models.Organization, error)

	// FindBySlug finds an organization by slug
	FindBySlug(slug string) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// Delete deletes an organization; dependent rows cascade
	Delete(id string) error

	// AddMember adds a member to an organization
	AddMember(member *models.Member) error

	// RemoveMember removes a member from an organization
	RemoveMember(organizationID, userID string) error

	// FindMember finds a specific organization member
	FindMember(organizationID, userID string) (*models.Member, error)

	// ListMembershipsByUserID lists all organizations a user is a member of
	ListMembershipsByUserID(userID string) ([]models.Member, error)

	// ListMembers lists all members of an organization
	ListMembers(organizationID string) ([]models.Member, error)

	// CreateInvitation records a pending invitation
	CreateInvitation(inv *models.Invitation) error

	// FindInvitation finds an invitation by ID
	FindInvitation(id string) (*models.Invitation, error)

	// ListInvitationsByEmail lists pending invitations addressed to an email
	ListInvitationsByEmail(email string) ([]models.Invitation, error)

	// ListInvitations lists invitations of an organization
	ListInvitations(organizationID string) ([]models.Invitation, error)

	// AcceptInvitation flips the invitation status and creates the
	// membership within a single transaction
	AcceptInvitation(inv *models.Invitation, member *models.Member) error

	// UpdateInvitation persists an invitation status change
	UpdateInvitation(inv *models.Invitation) error
}

// JobFilter holds filtering options for listing job postings
type JobFilter struct {
	OrganizationID      *string
	Statuses            []models.JobStatus
	Type                *models.JobType
	ExperienceLevel     *models.ExperienceLevel
	LocationRequirement *models.LocationRequirement
	StateAbbrevation    *string
	FeaturedOnly        bool
	Page                int
	PageSize            int
}

// JobRepository defines the interface for job listing and application data
// access
type JobRepository interface {
	// Create creates a job listing
	Create(job *models.JobList) error

	// FindByID finds a job listing by ID with optional preloading
	FindByID(id string, preload ...string) (*models.JobList, error)

	// FindByTitle finds a listing by title within an organization
	FindByTitle(organizationID, title string) (*models.JobList, error)

	// List retrieves job listings with filtering and pagination
	List(filter JobFilter) ([]models.JobList, int64, error)

	// Update updates a job listing
	Update(job *models.JobList) error

	// Delete removes a job listing; applications cascade
	Delete(id string) error

	// CreateApplication records an application for a job
	CreateApplication(app *models.JobApplication) error

	// FindApplication finds the application of a user for a job
	FindApplication(jobListID, userID string) (*models.JobApplication, error)

	// ListApplications lists applications for a job with applicants
	ListApplications(jobListID string) ([]models.JobApplication, error)

	// UpdateApplication persists stage or rating changes
	UpdateApplication(app *models.JobApplication) error
}

// ProfileRepository defines the interface for the one-to-one user
// extension rows
type ProfileRepository interface {
	// GetResume returns the resume row of a user, if present
	GetResume(userID string) (*models.UserResume, error)

	// UpsertResume creates or replaces the resume row of a user
	UpsertResume(resume *models.UserResume) error

	// GetNotificationSettings returns the settings row, creating the
	// default row on first access
	GetNotificationSettings(userID string) (*models.UserNotificationSetting, error)

	// UpdateNotificationSettings persists settings changes
	UpdateNotificationSettings(settings *models.UserNotificationSetting) error
}
