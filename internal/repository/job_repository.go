package repository

import (
	"github.com/joblane/joblane-api/internal/database"
	"github.com/joblane/joblane-api/internal/models"
	"github.com/joblane/joblane-api/internal/utils"
	"gorm.io/gorm"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a job listing
func (r *GormJobRepository) Create(job *models.JobList) error {
	return r.db.Create(job).Error
}

// FindByID finds a job listing by ID with optional preloading
func (r *GormJobRepository) FindByID(id string, preload ...string) (*models.JobList, error) {
	var job models.JobList
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &job, nil
}

// FindByTitle finds a listing by title within an organization
func (r *GormJobRepository) FindByTitle(organizationID, title string) (*models.JobList, error) {
	var job models.JobList
	if err := r.db.Where("organization_id = ? AND title = ?", organizationID, title).
		First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// List retrieves job listings with filtering and pagination
func (r *GormJobRepository) List(filter JobFilter) ([]models.JobList, int64, error) {
	var jobs []models.JobList

	query := r.db.Model(&models.JobList{})

	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.ExperienceLevel != nil {
		query = query.Where("experience_level = ?", *filter.ExperienceLevel)
	}
	if filter.LocationRequirement != nil {
		query = query.Where("location_requirement = ?", *filter.LocationRequirement)
	}
	if filter.StateAbbrevation != nil {
		query = query.Where("state_abbrevation = ?", *filter.StateAbbrevation)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("is_featured DESC, created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Organization").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// Update updates a job listing
func (r *GormJobRepository) Update(job *models.JobList) error {
	return r.db.Save(job).Error
}

// Delete removes a job listing; applications cascade through the schema
func (r *GormJobRepository) Delete(id string) error {
	return r.db.Delete(&models.JobList{}, "id = ?", id).Error
}

// CreateApplication records an application for a job
func (r *GormJobRepository) CreateApplication(app *models.JobApplication) error {
	return r.db.Create(app).Error
}

// FindApplication finds the application of a user for a job
func (r *GormJobRepository) FindApplication(jobListID, userID string) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := r.db.Where("job_list_id = ? AND user_id = ?", jobListID, userID).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplications lists applications for a job with applicants preloaded
func (r *GormJobRepository) ListApplications(jobListID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	if err := r.db.Preload("User").
		Where("job_list_id = ?", jobListID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateApplication persists stage or rating changes
func (r *GormJobRepository) UpdateApplication(app *models.JobApplication) error {
	return r.db.Save(app).Error
}
