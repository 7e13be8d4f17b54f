package repository

import (
	"github.com/joblane/joblane-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates an organization and its owner membership atomically
func (r *GormOrganizationRepository) Create(org *models.Organization, owner *models.Member) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		owner.OrganizationID = org.ID

		return tx.Create(owner).Error
	})
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindBySlug finds an organization by slug
func (r *GormOrganizationRepository) FindBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete deletes an organization. Members, invitations and job listings
// cascade through the schema's foreign keys.
func (r *GormOrganizationRepository) Delete(id string) error {
	return r.db.Delete(&models.Organization{}, "id = ?", id).Error
}

// AddMember adds a member to an organization
func (r *GormOrganizationRepository) AddMember(member *models.Member) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from an organization
func (r *GormOrganizationRepository) RemoveMember(organizationID, userID string) error {
	return r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Delete(&models.Member{}).Error
}

// FindMember finds a specific organization member
func (r *GormOrganizationRepository) FindMember(organizationID, userID string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembershipsByUserID lists all organizations a user is a member of
func (r *GormOrganizationRepository) ListMembershipsByUserID(userID string) ([]models.Member, error) {
	var memberships []models.Member
	if err := r.db.Preload("Organization").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of an organization
func (r *GormOrganizationRepository) ListMembers(organizationID string) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.Preload("User").
		Where("organization_id = ?", organizationID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CreateInvitation records a pending invitation
func (r *GormOrganizationRepository) CreateInvitation(inv *models.Invitation) error {
	return r.db.Create(inv).Error
}

// FindInvitation finds an invitation by ID
func (r *GormOrganizationRepository) FindInvitation(id string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := r.db.Preload("Organization").First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListInvitationsByEmail lists pending invitations addressed to an email
func (r *GormOrganizationRepository) ListInvitationsByEmail(email string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Preload("Organization").
		Where("email = ? AND status = ?", email, models.InvitationPending).
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// ListInvitations lists invitations of an organization
func (r *GormOrganizationRepository) ListInvitations(organizationID string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Where("organization_id = ?", organizationID).
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// AcceptInvitation flips the invitation status and creates the membership
// within a single transaction
func (r *GormOrganizationRepository) AcceptInvitation(inv *models.Invitation, member *models.Member) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		inv.Status = models.InvitationAccepted
		if err := tx.Save(inv).Error; err != nil {
			return err
		}

		return tx.Create(member).Error
	})
}

// UpdateInvitation persists an invitation status change
func (r *GormOrganizationRepository) UpdateInvitation(inv *models.Invitation) error {
	return r.db.Save(inv).Error
}
