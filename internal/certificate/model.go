package certificate

import (
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/catalog"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
)

// DateLayout is the wire format of certificate dates.
const DateLayout = "2006-01-02"

// Certificate is a product certification or company accreditation.
type Certificate struct {
	common.BaseModel
	Name             string     `gorm:"type:varchar(150);not null"`
	Slug             string     `gorm:"type:varchar(150);not null;uniqueIndex:idx_certificates_slug"`
	Issuer           string     `gorm:"type:varchar(150)"`
	Number           string     `gorm:"type:varchar(100)"`
	IssuedAt         *time.Time `gorm:"type:date"`
	ExpiresAt        *time.Time `gorm:"type:date"`
	ShortDescription string     `gorm:"type:varchar(300)"`
	ThumbnailPath    string     `gorm:"type:varchar(255)"`
	catalog.Content  `gorm:"embedded"`
}

// TableName specifies the table name for the Certificate model.
func (Certificate) TableName() string {
	return "certificates"
}

// Valid reports whether the certificate has not expired at now. A
// certificate stays valid through its whole expiry day.
func (c *Certificate) Valid(now time.Time) bool {
	return c.ExpiresAt == nil || now.Before(c.ExpiresAt.AddDate(0, 0, 1))
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// CertificateResponse is the public view of an already redacted certificate.
type CertificateResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Issuer           string    `json:"issuer"`
	Number           string    `json:"number"`
	IssuedAt         *string   `json:"issued_at"`
	ExpiresAt        *string   `json:"expires_at"`
	IsValid          bool      `json:"is_valid"`
	ShortDescription string    `json:"short_description"`
	ThumbnailURL     string    `json:"thumbnail_url"`
	catalog.ContentResponse
}

// AdminCertificateResponse carries every stored field.
type AdminCertificateResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Issuer           string    `json:"issuer"`
	Number           string    `json:"number"`
	IssuedAt         *string   `json:"issued_at"`
	ExpiresAt        *string   `json:"expires_at"`
	ShortDescription string    `json:"short_description"`
	ThumbnailURL     string    `json:"thumbnail_url"`
	catalog.AdminContentResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCertificateResponse serializes a certificate returned by the public
// service methods.
func ToCertificateResponse(c *Certificate, mediaBaseURL string, now time.Time) CertificateResponse {
	return CertificateResponse{
		ID:               c.ID,
		Name:             c.Name,
		Slug:             c.Slug,
		Issuer:           c.Issuer,
		Number:           c.Number,
		IssuedAt:         formatDate(c.IssuedAt),
		ExpiresAt:        formatDate(c.ExpiresAt),
		IsValid:          c.Valid(now),
		ShortDescription: c.ShortDescription,
		ThumbnailURL:     catalog.MediaURL(mediaBaseURL, c.ThumbnailPath),
		ContentResponse:  catalog.ToContentResponse(c.Content, mediaBaseURL),
	}
}

// ToAdminCertificateResponse serializes a certificate for the back office.
func ToAdminCertificateResponse(c *Certificate, mediaBaseURL string) AdminCertificateResponse {
	return AdminCertificateResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Slug:                 c.Slug,
		Issuer:               c.Issuer,
		Number:               c.Number,
		IssuedAt:             formatDate(c.IssuedAt),
		ExpiresAt:            formatDate(c.ExpiresAt),
		ShortDescription:     c.ShortDescription,
		ThumbnailURL:         catalog.MediaURL(mediaBaseURL, c.ThumbnailPath),
		AdminContentResponse: catalog.ToAdminContentResponse(c.Content, mediaBaseURL),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// AdminCertificateRequest is the body of certificate create and update
// requests. Dates use DateLayout.
type AdminCertificateRequest struct {
	Name             string `json:"name" binding:"required,max=150"`
	Slug             string `json:"slug" binding:"omitempty,max=150,alphanumdash"`
	Issuer           string `json:"issuer" binding:"max=150"`
	Number           string `json:"number" binding:"max=100"`
	IssuedAt         string `json:"issued_at" binding:"omitempty,datetime=2006-01-02"`
	ExpiresAt        string `json:"expires_at" binding:"omitempty,datetime=2006-01-02"`
	ShortDescription string `json:"short_description" binding:"max=300"`
	catalog.ContentRequest
}

// ListQuery filters certificate listings.
type ListQuery struct {
	Page      int
	PageSize  int
	ValidOnly bool
}
