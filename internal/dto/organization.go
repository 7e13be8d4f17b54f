package dto

import (
	"time"

	"github.com/joblane/joblane-api/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID        string                      `json:"id"`
	Name      string                      `json:"name"`
	Slug      string                      `json:"slug"`
	Logo      *string                     `json:"logo"`
	Metadata  models.OrganizationMetadata `json:"metadata"`
	CreatedAt time.Time                   `json:"created_at"`
}

// OrganizationWithRoleDTO represents an organization with the user's role
type OrganizationWithRoleDTO struct {
	OrganizationDTO
	Role models.OrganizationRole `json:"role"`
}

// MemberDTO represents a member in an organization
type MemberDTO struct {
	User      UserDTO                 `json:"user"`
	Role      models.OrganizationRole `json:"role"`
	CreatedAt time.Time               `json:"created_at"`
}

// OrganizationDetailDTO represents detailed organization information
type OrganizationDetailDTO struct {
	OrganizationDTO
	Members  []MemberDTO             `json:"members"`
	YourRole models.OrganizationRole `json:"your_role"`
}

// InvitationDTO represents a pending or settled invitation
type InvitationDTO struct {
	ID           string                   `json:"id"`
	Email        string                   `json:"email"`
	Role         *models.OrganizationRole `json:"role"`
	Status       models.InvitationStatus  `json:"status"`
	ExpiresAt    time.Time                `json:"expires_at"`
	Organization *OrganizationDTO         `json:"organization,omitempty"`
}

// ToOrganizationDTO converts an organization to DTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		Logo:      org.Logo,
		Metadata:  org.Metadata.Data(),
		CreatedAt: org.CreatedAt,
	}
}

// ToOrganizationWithRoleDTO converts a membership to DTO with role
func ToOrganizationWithRoleDTO(member models.Member) OrganizationWithRoleDTO {
	return OrganizationWithRoleDTO{
		OrganizationDTO: ToOrganizationDTO(member.Organization),
		Role:            member.Role,
	}
}

// ToMemberDTO converts a member to DTO
func ToMemberDTO(member models.Member) MemberDTO {
	return MemberDTO{
		User:      ToUserDTO(member.User),
		Role:      member.Role,
		CreatedAt: member.CreatedAt,
	}
}

// ToOrganizationDetailDTO converts organization with members to detailed DTO
func ToOrganizationDetailDTO(org models.Organization, members []models.Member, yourRole models.OrganizationRole) OrganizationDetailDTO {
	memberDTOs := make([]MemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToMemberDTO(member)
	}

	return OrganizationDetailDTO{
		OrganizationDTO: ToOrganizationDTO(org),
		Members:         memberDTOs,
		YourRole:        yourRole,
	}
}

// ToInvitationDTO converts an invitation to DTO
func ToInvitationDTO(inv models.Invitation) InvitationDTO {
	out := InvitationDTO{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      inv.Role,
		Status:    inv.Status,
		ExpiresAt: inv.ExpiresAt,
	}
	if inv.Organization.ID != "" {
		org := ToOrganizationDTO(inv.Organization)
		out.Organization = &org
	}
	return out
}
