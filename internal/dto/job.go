package dto

import (
	"time"

	"github.com/joblane/joblane-api/internal/models"
)

// JobListDTO represents a job posting in API responses
type JobListDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Wage         *int                 `json:"wage"`
	WageInterval *models.WageInterval `json:"wage_interval"`

	LocationRequirement models.LocationRequirement `json:"location_requirement"`
	ExperienceLevel     models.ExperienceLevel     `json:"experience_level"`
	Status              models.JobStatus           `json:"status"`
	Type                models.JobType             `json:"type"`

	StateAbbrevation *string `json:"state_abbrevation"`
	City             *string `json:"city"`
	IsFeatured       bool    `json:"is_featured"`

	OrganizationID string           `json:"organization_id"`
	OwnerID        string           `json:"owner_id"`
	Organization   *OrganizationDTO `json:"organization,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobApplicationDTO represents an application in API responses
type JobApplicationDTO struct {
	JobListID   string                  `json:"job_list_id"`
	UserID      string                  `json:"user_id"`
	CoverLetter *string                 `json:"cover_letter"`
	Rating      *int                    `json:"rating"`
	Stage       models.ApplicationStage `json:"stage"`
	CreatedAt   time.Time               `json:"created_at"`
	User        *UserDTO                `json:"user,omitempty"`
}

// ToJobListDTO converts a listing to DTO
func ToJobListDTO(job models.JobList) JobListDTO {
	out := JobListDTO{
		ID:                  job.ID,
		Title:               job.Title,
		Description:         job.Description,
		Wage:                job.Wage,
		WageInterval:        job.WageInterval,
		LocationRequirement: job.LocationRequirement,
		ExperienceLevel:     job.ExperienceLevel,
		Status:              job.Status,
		Type:                job.Type,
		StateAbbrevation:    job.StateAbbrevation,
		City:                job.City,
		IsFeatured:          job.IsFeatured,
		OrganizationID:      job.OrganizationID,
		OwnerID:             job.OwnerID,
		CreatedAt:           job.CreatedAt,
		UpdatedAt:           job.UpdatedAt,
	}
	if job.Organization.ID != "" {
		org := ToOrganizationDTO(job.Organization)
		out.Organization = &org
	}
	return out
}

// ToJobListDTOs converts a slice of listings
func ToJobListDTOs(jobs []models.JobList) []JobListDTO {
	out := make([]JobListDTO, len(jobs))
	for i, job := range jobs {
		out[i] = ToJobListDTO(job)
	}
	return out
}

// ToJobApplicationDTO converts an application to DTO
func ToJobApplicationDTO(app models.JobApplication) JobApplicationDTO {
	out := JobApplicationDTO{
		JobListID:   app.JobListID,
		UserID:      app.UserID,
		CoverLetter: app.CoverLetter,
		Rating:      app.Rating,
		Stage:       app.Stage,
		CreatedAt:   app.CreatedAt,
	}
	if app.User.ID != "" {
		user := ToUserDTO(app.User)
		out.User = &user
	}
	return out
}
