package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joblane/joblane-api/internal/constants"
	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSlugTaken            = errors.New("organization slug already exists")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNotAMember           = errors.New("not a member of this organization")
	ErrAlreadyMember        = errors.New("already a member of this organization")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationExpired    = errors.New("invitation expired")
	ErrInvitationNotYours   = errors.New("invitation addressed to a different email")
	ErrInvitationExists     = errors.New("a pending invitation already exists for this email")
	ErrCannotRemoveOwner    = errors.New("the owner cannot be removed")
)

// OrganizationService handles organization, membership and invitation
// business logic.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo}
}

// CreateInput carries the fields for creating an organization.
type CreateInput struct {
	Name string
	Slug string
	Logo *string
}

// Create creates an organization with the caller as owner. The metadata
// blob starts from its documented default.
func (s *OrganizationService) Create(userID string, input CreateInput) (*models.Organization, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))

	if _, err := s.orgRepo.FindBySlug(slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	org := &models.Organization{
		Name: strings.TrimSpace(input.Name),
		Slug: slug,
		Logo: input.Logo,
		Metadata: datatypes.NewJSONType(models.OrganizationMetadata{
			NewApplicationsEmailNotifications: false,
		}),
	}

	owner := &models.Member{
		UserID: userID,
		Role:   models.RoleOwner,
	}

	if err := s.orgRepo.Create(org, owner); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// ListForUser returns the caller's memberships with organizations.
func (s *OrganizationService) ListForUser(userID string) ([]models.Member, error) {
	return s.orgRepo.ListMembershipsByUserID(userID)
}

// Get returns an organization with its members, enforcing membership.
func (s *OrganizationService) Get(organizationID, userID string) (*models.Organization, []models.Member, *models.Member, error) {
	membership, err := s.requireMember(organizationID, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	org, err := s.orgRepo.FindByID(organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrOrganizationNotFound
		}
		return nil, nil, nil, fmt.Errorf("failed to find organization: %w", err)
	}

	members, err := s.orgRepo.ListMembers(organizationID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	return org, members, membership, nil
}

// UpdateInput carries the updatable organization fields. Nil means keep.
type UpdateInput struct {
	Name     *string
	Logo     *string
	Metadata *models.OrganizationMetadata
}

// Update updates organization fields; owner only.
func (s *OrganizationService) Update(organizationID, userID string, input UpdateInput) (*models.Organization, error) {
	if err := s.requireOwner(organizationID, userID); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindByID(organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if input.Name != nil {
		org.Name = strings.TrimSpace(*input.Name)
	}
	if input.Logo != nil {
		org.Logo = input.Logo
	}
	if input.Metadata != nil {
		org.Metadata = datatypes.NewJSONType(*input.Metadata)
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return org, nil
}

// Delete removes an organization; owner only. Dependent rows cascade.
func (s *OrganizationService) Delete(organizationID, userID string) error {
	if err := s.requireOwner(organizationID, userID); err != nil {
		return err
	}
	return s.orgRepo.Delete(organizationID)
}

// Invite records a pending invitation; owners and admins only.
func (s *OrganizationService) Invite(organizationID, inviterID, email string, role *models.OrganizationRole) (*models.Invitation, error) {
	membership, err := s.requireMember(organizationID, inviterID)
	if err != nil {
		return nil, err
	}
	if membership.Role != models.RoleOwner && membership.Role != models.RoleAdmin {
		return nil, ErrNotAMember
	}

	email = strings.TrimSpace(strings.ToLower(email))
	pending, err := s.orgRepo.ListInvitationsByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check invitations: %w", err)
	}
	for _, existing := range pending {
		if existing.OrganizationID == organizationID {
			return nil, ErrInvitationExists
		}
	}

	inv := &models.Invitation{
		OrganizationID: organizationID,
		Email:          email,
		Role:           role,
		Status:         models.InvitationPending,
		ExpiresAt:      time.Now().Add(constants.InvitationLifetime),
		InviterID:      inviterID,
	}

	if err := s.orgRepo.CreateInvitation(inv); err != nil {
		// The (org, email, status) unique index rejects duplicates.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrInvitationExists
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return inv, nil
}

// ListInvitationsForEmail lists pending invitations addressed to an email.
func (s *OrganizationService) ListInvitationsForEmail(email string) ([]models.Invitation, error) {
	return s.orgRepo.ListInvitationsByEmail(strings.ToLower(email))
}

// Accept turns a pending invitation into a membership.
func (s *OrganizationService) Accept(invitationID string, user *models.User) (*models.Member, error) {
	inv, err := s.loadPendingInvitation(invitationID, user)
	if err != nil {
		return nil, err
	}

	if _, err := s.orgRepo.FindMember(inv.OrganizationID, user.ID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	role := models.RoleMember
	if inv.Role != nil {
		role = *inv.Role
	}

	member := &models.Member{
		OrganizationID: inv.OrganizationID,
		UserID:         user.ID,
		Role:           role,
	}

	if err := s.orgRepo.AcceptInvitation(inv, member); err != nil {
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	return member, nil
}

// Reject settles a pending invitation without creating a membership.
func (s *OrganizationService) Reject(invitationID string, user *models.User) error {
	inv, err := s.loadPendingInvitation(invitationID, user)
	if err != nil {
		return err
	}

	inv.Status = models.InvitationRejected
	return s.orgRepo.UpdateInvitation(inv)
}

// RemoveMember removes a member; owner only, and never the owner row.
func (s *OrganizationService) RemoveMember(organizationID, ownerID, userID string) error {
	if err := s.requireOwner(organizationID, ownerID); err != nil {
		return err
	}

	member, err := s.orgRepo.FindMember(organizationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAMember
		}
		return fmt.Errorf("failed to find member: %w", err)
	}
	if member.Role == models.RoleOwner {
		return ErrCannotRemoveOwner
	}

	return s.orgRepo.RemoveMember(organizationID, userID)
}

// RequireMember exposes the membership check to middleware.
func (s *OrganizationService) RequireMember(organizationID, userID string) (*models.Member, error) {
	return s.requireMember(organizationID, userID)
}

func (s *OrganizationService) loadPendingInvitation(invitationID string, user *models.User) (*models.Invitation, error) {
	inv, err := s.orgRepo.FindInvitation(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if inv.Status != models.InvitationPending {
		return nil, ErrInvitationNotFound
	}
	if !strings.EqualFold(inv.Email, user.Email) {
		return nil, ErrInvitationNotYours
	}
	if inv.Expired() {
		return nil, ErrInvitationExpired
	}

	return inv, nil
}

func (s *OrganizationService) requireMember(organizationID, userID string) (*models.Member, error) {
	member, err := s.orgRepo.FindMember(organizationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAMember
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}

func (s *OrganizationService) requireOwner(organizationID, userID string) error {
	member, err := s.requireMember(organizationID, userID)
	if err != nil {
		return err
	}
	if member.Role != models.RoleOwner {
		return ErrNotAMember
	}
	return nil
}
