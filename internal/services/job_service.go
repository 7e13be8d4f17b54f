package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound        = errors.New("job listing not found")
	ErrJobTitleTaken      = errors.New("a listing with this title already exists in the organization")
	ErrAlreadyApplied     = errors.New("already applied to this job")
	ErrApplicationMissing = errors.New("application not found")
	ErrJobNotPublished    = errors.New("job listing is not accepting applications")
)

// JobService handles job listing and application business logic.
type JobService struct {
	jobRepo repository.JobRepository
	orgRepo repository.OrganizationRepository
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo repository.JobRepository, orgRepo repository.OrganizationRepository) *JobService {
	return &JobService{jobRepo: jobRepo, orgRepo: orgRepo}
}

// JobInput carries the fields of a job listing create or update.
type JobInput struct {
	Title               string
	Description         string
	Wage                *int
	WageInterval        *models.WageInterval
	LocationRequirement models.LocationRequirement
	ExperienceLevel     models.ExperienceLevel
	Status              models.JobStatus
	Type                models.JobType
	StateAbbrevation    *string
	City                *string
	IsFeatured          bool
}

// Create posts a new listing under an organization; callers must be
// members. Titles are unique per organization.
func (s *JobService) Create(organizationID, userID string, input JobInput) (*models.JobList, error) {
	if _, err := s.requireMember(organizationID, userID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if _, err := s.jobRepo.FindByTitle(organizationID, title); err == nil {
		return nil, ErrJobTitleTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check title: %w", err)
	}

	job := &models.JobList{
		Title:               title,
		Description:         input.Description,
		Wage:                input.Wage,
		WageInterval:        input.WageInterval,
		LocationRequirement: input.LocationRequirement,
		ExperienceLevel:     input.ExperienceLevel,
		Status:              input.Status,
		Type:                input.Type,
		StateAbbrevation:    input.StateAbbrevation,
		City:                input.City,
		IsFeatured:          input.IsFeatured,
		OrganizationID:      organizationID,
		OwnerID:             userID,
	}
	if job.Status == "" {
		job.Status = models.JobStatusDraft
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job listing: %w", err)
	}

	return job, nil
}

// ListForOrganization returns every listing of an organization,
// drafts included; callers must be members.
func (s *JobService) ListForOrganization(organizationID, userID string, page, pageSize int) ([]models.JobList, int64, error) {
	if _, err := s.requireMember(organizationID, userID); err != nil {
		return nil, 0, err
	}

	return s.jobRepo.List(repository.JobFilter{
		OrganizationID: &organizationID,
		Page:           page,
		PageSize:       pageSize,
	})
}

// PublicFilter holds the filters a job seeker may apply to the public
// board.
type PublicFilter struct {
	Type                *models.JobType
	ExperienceLevel     *models.ExperienceLevel
	LocationRequirement *models.LocationRequirement
	StateAbbrevation    *string
	FeaturedOnly        bool
	Page                int
	PageSize            int
}

// ListPublished returns the public board: published listings only,
// featured first.
func (s *JobService) ListPublished(filter PublicFilter) ([]models.JobList, int64, error) {
	return s.jobRepo.List(repository.JobFilter{
		Statuses:            []models.JobStatus{models.JobStatusPublished},
		Type:                filter.Type,
		ExperienceLevel:     filter.ExperienceLevel,
		LocationRequirement: filter.LocationRequirement,
		StateAbbrevation:    filter.StateAbbrevation,
		FeaturedOnly:        filter.FeaturedOnly,
		Page:                filter.Page,
		PageSize:            filter.PageSize,
	})
}

// Get returns a listing. Non-members only see published listings.
func (s *JobService) Get(jobID string, userID string) (*models.JobList, error) {
	job, err := s.findJob(jobID, "Organization")
	if err != nil {
		return nil, err
	}

	if job.Status != models.JobStatusPublished {
		if userID == "" {
			return nil, ErrJobNotFound
		}
		if _, err := s.requireMember(job.OrganizationID, userID); err != nil {
			return nil, ErrJobNotFound
		}
	}

	return job, nil
}

// Update edits a listing; callers must be members of its organization.
func (s *JobService) Update(jobID, userID string, input JobInput) (*models.JobList, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(job.OrganizationID, userID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title != job.Title {
		if _, err := s.jobRepo.FindByTitle(job.OrganizationID, title); err == nil {
			return nil, ErrJobTitleTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check title: %w", err)
		}
	}

	job.Title = title
	job.Description = input.Description
	job.Wage = input.Wage
	job.WageInterval = input.WageInterval
	job.LocationRequirement = input.LocationRequirement
	job.ExperienceLevel = input.ExperienceLevel
	job.Type = input.Type
	job.StateAbbrevation = input.StateAbbrevation
	job.City = input.City
	job.IsFeatured = input.IsFeatured
	if input.Status != "" {
		job.Status = input.Status
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to update job listing: %w", err)
	}

	return job, nil
}

// Delete removes a listing; callers must be members of its organization.
// Applications cascade.
func (s *JobService) Delete(jobID, userID string) error {
	job, err := s.findJob(jobID)
	if err != nil {
		return err
	}
	if _, err := s.requireMember(job.OrganizationID, userID); err != nil {
		return err
	}
	return s.jobRepo.Delete(jobID)
}

// Apply records an application to a published listing. A user applies
// to a listing at most once.
func (s *JobService) Apply(jobID, userID string, coverLetter *string) (*models.JobApplication, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusPublished {
		return nil, ErrJobNotPublished
	}

	if _, err := s.jobRepo.FindApplication(jobID, userID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check application: %w", err)
	}

	app := &models.JobApplication{
		JobListID:   jobID,
		UserID:      userID,
		CoverLetter: coverLetter,
		Stage:       models.StageApplied,
	}

	if err := s.jobRepo.CreateApplication(app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// ListApplications returns a listing's applications with applicants;
// callers must be members of the listing's organization.
func (s *JobService) ListApplications(jobID, userID string) ([]models.JobApplication, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(job.OrganizationID, userID); err != nil {
		return nil, err
	}
	return s.jobRepo.ListApplications(jobID)
}

// ApplicationUpdate carries stage and rating changes. Nil means keep.
type ApplicationUpdate struct {
	Stage  *models.ApplicationStage
	Rating *int
}

// UpdateApplication moves an application through the pipeline; callers
// must be members of the listing's organization.
func (s *JobService) UpdateApplication(jobID, applicantID, userID string, update ApplicationUpdate) (*models.JobApplication, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(job.OrganizationID, userID); err != nil {
		return nil, err
	}

	app, err := s.jobRepo.FindApplication(jobID, applicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationMissing
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if update.Stage != nil {
		app.Stage = *update.Stage
	}
	if update.Rating != nil {
		app.Rating = update.Rating
	}

	if err := s.jobRepo.UpdateApplication(app); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	return app, nil
}

func (s *JobService) findJob(jobID string, preload ...string) (*models.JobList, error) {
	job, err := s.jobRepo.FindByID(jobID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job listing: %w", err)
	}
	return job, nil
}

func (s *JobService) requireMember(organizationID, userID string) (*models.Member, error) {
	member, err := s.orgRepo.FindMember(organizationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAMember
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}
