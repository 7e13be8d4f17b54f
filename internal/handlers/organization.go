package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/joblane/joblane-api/internal/dto"
	apierrors "github.com/joblane/joblane-api/internal/errors"
	"github.com/joblane/joblane-api/internal/middleware"
	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/services"
)

// OrganizationHandler coordinates organization-related HTTP handlers.
type OrganizationHandler struct {
	orgService  *services.OrganizationService
	authService *services.AuthService
	logger      *zap.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService, authService *services.AuthService, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:  orgService,
		authService: authService,
		logger:      logger,
	}
}

// Create creates an organization with the caller as owner.
func (h *OrganizationHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name string  `json:"name" binding:"required,min=1,max=255"`
		Slug string  `json:"slug" binding:"required,min=1,max=255"`
		Logo *string `json:"logo"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _ := middleware.GetUser(c)
	org, err := h.orgService.Create(user.ID, services.CreateInput{
		Name: req.Name,
		Slug: req.Slug,
		Logo: req.Logo,
	})
	if err != nil {
		h.respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org))
}

// List returns the caller's organizations with their role in each.
func (h *OrganizationHandler) List(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	memberships, err := h.orgService.ListForUser(user.ID)
	if err != nil {
		h.logger.Error("failed to list organizations", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	out := make([]dto.OrganizationWithRoleDTO, len(memberships))
	for i, m := range memberships {
		out[i] = dto.ToOrganizationWithRoleDTO(m)
	}
	c.JSON(http.StatusOK, gin.H{"organizations": out})
}

// Get returns an organization's details and members.
func (h *OrganizationHandler) Get(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	org, members, membership, err := h.orgService.Get(c.Param("id"), user.ID)
	if err != nil {
		h.respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDetailDTO(*org, members, membership.Role))
}

// Update edits organization fields; owner only.
func (h *OrganizationHandler) Update(c *gin.Context) {
	type UpdateRequest struct {
		Name     *string                      `json:"name" binding:"omitempty,min=1,max=255"`
		Logo     *string                      `json:"logo"`
		Metadata *models.OrganizationMetadata `json:"metadata"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _ := middleware.GetUser(c)
	org, err := h.orgService.Update(c.Param("id"), user.ID, services.UpdateInput{
		Name:     req.Name,
		Logo:     req.Logo,
		Metadata: req.Metadata,
	})
	if err != nil {
		h.respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// Delete removes an organization and everything under it; owner only.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	if err := h.orgService.Delete(c.Param("id"), user.ID); err != nil {
		h.respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Invite creates a pending invitation for an email address.
func (h *OrganizationHandler) Invite(c *gin.Context) {
	type InviteRequest struct {
		Email string                   `json:"email" binding:"required,email"`
		Role  *models.OrganizationRole `json:"role" binding:"omitempty,oneof=admin member"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _ := middleware.GetUser(c)
	inv, err := h.orgService.Invite(c.Param("id"), user.ID, req.Email, req.Role)
	if err != nil {
		h.respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationDTO(*inv))
}

// MyInvitations lists pending invitations addressed to the caller.
func (h *OrganizationHandler) MyInvitations(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	invitations, err := h.orgService.ListInvitationsForEmail(user.Email)
	if err != nil {
		h.logger.Error("failed to list invitations", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	out := make([]dto.InvitationDTO, len(invitations))
	for i, inv := range invitations {
		out[i] = dto.ToInvitationDTO(inv)
	}
	c.JSON(http.StatusOK, gin.H{"invitations": out})
}

// AcceptInvitation turns a pending invitation into a membership.
func (h *OrganizationHandler) AcceptInvitation(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	member, err := h.orgService.Accept(c.Param("id"), user)
	if err != nil {
		h.respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"organization_id": member.OrganizationID,
		"role":            member.Role,
	})
}

// RejectInvitation settles a pending invitation as rejected.
func (h *OrganizationHandler) RejectInvitation(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	if err := h.orgService.Reject(c.Param("id"), user); err != nil {
		h.respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetActive records the caller's active organization on the session row.
func (h *OrganizationHandler) SetActive(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	session, _ := middleware.GetSession(c)

	orgID := c.Param("id")
	if _, err := h.orgService.RequireMember(orgID, user.ID); err != nil {
		h.respondOrgError(c, err)
		return
	}

	if err := h.authService.SetActiveOrganization(session.ID, &orgID); err != nil {
		h.logger.Error("failed to set active organization", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"active_organization_id": orgID})
}

// RemoveMember removes a member from an organization; owner only.
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	if err := h.orgService.RemoveMember(c.Param("id"), user.ID, c.Param("user_id")); err != nil {
		h.respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondOrgError maps organization service errors to HTTP responses.
func (h *OrganizationHandler) respondOrgError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSlugTaken):
		apierrors.Conflict(c, "An organization with this slug already exists")
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, "Organization not found")
	case errors.Is(err, services.ErrNotAMember):
		// 404 instead of 403 to avoid leaking organization existence.
		apierrors.NotFound(c, "Organization not found")
	case errors.Is(err, services.ErrAlreadyMember):
		apierrors.Conflict(c, "Already a member of this organization")
	case errors.Is(err, services.ErrInvitationNotFound):
		apierrors.NotFound(c, "Invitation not found")
	case errors.Is(err, services.ErrInvitationExpired):
		apierrors.BadRequest(c, "Invitation expired")
	case errors.Is(err, services.ErrInvitationNotYours):
		apierrors.Forbidden(c, "Invitation addressed to a different email")
	case errors.Is(err, services.ErrInvitationExists):
		apierrors.Conflict(c, "A pending invitation already exists for this email")
	case errors.Is(err, services.ErrCannotRemoveOwner):
		apierrors.BadRequest(c, "The owner cannot be removed")
	default:
		h.logger.Error("organization operation failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
