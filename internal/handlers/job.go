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
	"github.com/joblane/joblane-api/internal/utils"
)

// JobHandler coordinates job listing and application HTTP handlers.
type JobHandler struct {
	jobService *services.JobService
	logger     *zap.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *services.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

type jobRequest struct {
	Title               string                      `json:"title" binding:"required,min=1,max=255"`
	Description         string                      `json:"description" binding:"required"`
	Wage                *int                        `json:"wage" binding:"omitempty,min=0"`
	WageInterval        *models.WageInterval        `json:"wage_interval" binding:"omitempty,oneof=hourly yearly"`
	LocationRequirement models.LocationRequirement  `json:"location_requirement" binding:"required,oneof=in-office hybrid remote"`
	ExperienceLevel     models.ExperienceLevel      `json:"experience_level" binding:"required,oneof=junior mid-level senior"`
	Status              models.JobStatus            `json:"status" binding:"omitempty,oneof=draft delisted published"`
	Type                models.JobType              `json:"type" binding:"required,oneof=internship part-time full-time"`
	StateAbbrevation    *string                     `json:"state_abbrevation" binding:"omitempty,len=2"`
	City                *string                     `json:"city" binding:"omitempty,max=255"`
	IsFeatured          bool                        `json:"is_featured"`
}

func (r jobRequest) toInput() services.JobInput {
	return services.JobInput{
		Title:               r.Title,
		Description:         r.Description,
		Wage:                r.Wage,
		WageInterval:        r.WageInterval,
		LocationRequirement: r.LocationRequirement,
		ExperienceLevel:     r.ExperienceLevel,
		Status:              r.Status,
		Type:                r.Type,
		StateAbbrevation:    r.StateAbbrevation,
		City:                r.City,
		IsFeatured:          r.IsFeatured,
	}
}

// Create posts a new listing under an organization.
func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _ := middleware.GetUser(c)
	job, err := h.jobService.Create(c.Param("id"), user.ID, req.toInput())
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobListDTO(*job))
}

// List serves the job board. Members passing their organization's ID see
// every listing of that organization, drafts included; everyone else
// sees published listings only, featured first.
func (h *JobHandler) List(c *gin.Context) {
	pagination := utils.GetPaginationParams(c)

	if orgID := c.Query("organization_id"); orgID != "" {
		user, ok := middleware.GetUser(c)
		if !ok {
			apierrors.NotAuthenticated(c)
			return
		}

		jobs, total, err := h.jobService.ListForOrganization(orgID, user.ID, pagination.Page, pagination.Limit)
		if err != nil {
			h.respondJobError(c, err)
			return
		}
		h.respondJobPage(c, jobs, total, pagination)
		return
	}

	filter := services.PublicFilter{
		Page:         pagination.Page,
		PageSize:     pagination.Limit,
		FeaturedOnly: c.Query("featured") == "true",
	}
	if v := c.Query("type"); v != "" {
		t := models.JobType(v)
		filter.Type = &t
	}
	if v := c.Query("experience_level"); v != "" {
		e := models.ExperienceLevel(v)
		filter.ExperienceLevel = &e
	}
	if v := c.Query("location_requirement"); v != "" {
		l := models.LocationRequirement(v)
		filter.LocationRequirement = &l
	}
	if v := c.Query("state"); v != "" {
		filter.StateAbbrevation = &v
	}

	jobs, total, err := h.jobService.ListPublished(filter)
	if err != nil {
		h.logger.Error("failed to list jobs", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}
	h.respondJobPage(c, jobs, total, pagination)
}

// Get returns a single listing.
func (h *JobHandler) Get(c *gin.Context) {
	userID := ""
	if user, ok := middleware.GetUser(c); ok {
		userID = user.ID
	}

	job, err := h.jobService.Get(c.Param("id"), userID)
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListDTO(*job))
}

// Update edits a listing.
func (h *JobHandler) Update(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _ := middleware.GetUser(c)
	job, err := h.jobService.Update(c.Param("id"), user.ID, req.toInput())
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListDTO(*job))
}

// Delete removes a listing; applications go with it.
func (h *JobHandler) Delete(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	if err := h.jobService.Delete(c.Param("id"), user.ID); err != nil {
		h.respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Apply records the caller's application to a published listing.
func (h *JobHandler) Apply(c *gin.Context) {
	type ApplyRequest struct {
		CoverLetter *string `json:"cover_letter" binding:"omitempty,max=10000"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _ := middleware.GetUser(c)
	app, err := h.jobService.Apply(c.Param("id"), user.ID, req.CoverLetter)
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobApplicationDTO(*app))
}

// ListApplications returns a listing's applications with applicants.
func (h *JobHandler) ListApplications(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	apps, err := h.jobService.ListApplications(c.Param("id"), user.ID)
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	out := make([]dto.JobApplicationDTO, len(apps))
	for i, app := range apps {
		out[i] = dto.ToJobApplicationDTO(app)
	}
	c.JSON(http.StatusOK, gin.H{"applications": out})
}

// UpdateApplication moves an application through the pipeline.
func (h *JobHandler) UpdateApplication(c *gin.Context) {
	type UpdateRequest struct {
		Stage  *models.ApplicationStage `json:"stage" binding:"omitempty,oneof=denied applied interested interviewed hired"`
		Rating *int                     `json:"rating" binding:"omitempty,min=1,max=5"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _ := middleware.GetUser(c)
	app, err := h.jobService.UpdateApplication(c.Param("id"), c.Param("user_id"), user.ID, services.ApplicationUpdate{
		Stage:  req.Stage,
		Rating: req.Rating,
	})
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobApplicationDTO(*app))
}

func (h *JobHandler) respondJobPage(c *gin.Context, jobs []models.JobList, total int64, pagination utils.PaginationParams) {
	c.JSON(http.StatusOK, gin.H{
		"jobs": dto.ToJobListDTOs(jobs),
		"pagination": utils.PaginationResponse{
			Page:  pagination.Page,
			Limit: pagination.Limit,
			Total: total,
		},
	})
}

// respondJobError maps job service errors to HTTP responses.
func (h *JobHandler) respondJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrJobNotFound):
		apierrors.NotFound(c, "Job listing not found")
	case errors.Is(err, services.ErrJobTitleTaken):
		apierrors.Conflict(c, "A listing with this title already exists")
	case errors.Is(err, services.ErrAlreadyApplied):
		apierrors.Conflict(c, "Already applied to this job")
	case errors.Is(err, services.ErrApplicationMissing):
		apierrors.NotFound(c, "Application not found")
	case errors.Is(err, services.ErrJobNotPublished):
		apierrors.BadRequest(c, "Job listing is not accepting applications")
	case errors.Is(err, services.ErrNotAMember):
		apierrors.NotFound(c, "Organization not found")
	default:
		h.logger.Error("job operation failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
