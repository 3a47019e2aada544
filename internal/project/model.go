package project

import (
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/catalog"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
)

// Project is a completed installation shown in the portfolio.
type Project struct {
	common.BaseModel
	Name             string `gorm:"type:varchar(150);not null"`
	Slug             string `gorm:"type:varchar(150);not null;uniqueIndex:idx_projects_slug"`
	Client           string `gorm:"type:varchar(150)"`
	Location         string `gorm:"type:varchar(150)"`
	Year             int    `gorm:"index"`
	ShortDescription string `gorm:"type:varchar(300)"`
	ThumbnailPath    string `gorm:"type:varchar(255)"`
	catalog.Content  `gorm:"embedded"`
}

// TableName specifies the table name for the Project model.
func (Project) TableName() string {
	return "projects"
}

// ProjectResponse is the public view of an already redacted project.
type ProjectResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Client           string    `json:"client"`
	Location         string    `json:"location"`
	Year             int       `json:"year"`
	ShortDescription string    `json:"short_description"`
	ThumbnailURL     string    `json:"thumbnail_url"`
	catalog.ContentResponse
	CreatedAt time.Time `json:"created_at"`
}

// AdminProjectResponse carries every stored field.
type AdminProjectResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Client           string    `json:"client"`
	Location         string    `json:"location"`
	Year             int       `json:"year"`
	ShortDescription string    `json:"short_description"`
	ThumbnailURL     string    `json:"thumbnail_url"`
	catalog.AdminContentResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProjectResponse serializes a project returned by the public service methods.
func ToProjectResponse(p *Project, mediaBaseURL string) ProjectResponse {
	return ProjectResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Client:           p.Client,
		Location:         p.Location,
		Year:             p.Year,
		ShortDescription: p.ShortDescription,
		ThumbnailURL:     catalog.MediaURL(mediaBaseURL, p.ThumbnailPath),
		ContentResponse:  catalog.ToContentResponse(p.Content, mediaBaseURL),
		CreatedAt:        p.CreatedAt,
	}
}

// ToProjectResponses serializes a listing.
func ToProjectResponses(projects []Project, mediaBaseURL string) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i], mediaBaseURL)
	}
	return out
}

// ToAdminProjectResponse serializes a project for the back office.
func ToAdminProjectResponse(p *Project, mediaBaseURL string) AdminProjectResponse {
	return AdminProjectResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Slug:                 p.Slug,
		Client:               p.Client,
		Location:             p.Location,
		Year:                 p.Year,
		ShortDescription:     p.ShortDescription,
		ThumbnailURL:         catalog.MediaURL(mediaBaseURL, p.ThumbnailPath),
		AdminContentResponse: catalog.ToAdminContentResponse(p.Content, mediaBaseURL),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// AdminProjectRequest is the body of project create and update requests.
type AdminProjectRequest struct {
	Name             string `json:"name" binding:"required,max=150"`
	Slug             string `json:"slug" binding:"omitempty,max=150,alphanumdash"`
	Client           string `json:"client" binding:"max=150"`
	Location         string `json:"location" binding:"max=150"`
	Year             int    `json:"year" binding:"omitempty,gte=1970,lte=2100"`
	ShortDescription string `json:"short_description" binding:"max=300"`
	catalog.ContentRequest
}

// ListQuery filters project listings.
type ListQuery struct {
	Page     int
	PageSize int
	Year     int
}
