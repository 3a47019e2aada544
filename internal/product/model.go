package product

import (
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/catalog"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/category"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/search"

	"github.com/google/uuid"
)

// Product is one item of the catalog. Name, category, short description and
// thumbnail are public; the embedded Content is gated.
type Product struct {
	common.BaseModel
	CategoryID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	Category         *category.Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Name             string             `gorm:"type:varchar(150);not null"`
	Slug             string             `gorm:"type:varchar(150);not null;uniqueIndex:idx_products_slug"`
	ShortDescription string             `gorm:"type:varchar(300)"`
	ThumbnailPath    string             `gorm:"type:varchar(255)"`
	IsFeatured       bool               `gorm:"not null;default:false;index"`
	SortOrder        int                `gorm:"not null;default:0"`
	catalog.Content  `gorm:"embedded"`
}

// TableName specifies the table name for the Product model.
func (Product) TableName() string {
	return "products"
}

// SearchDocument returns the public fields that go into the search index.
func (p *Product) SearchDocument() search.ProductDocument {
	doc := search.ProductDocument{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Category != nil {
		doc.CategoryName = p.Category.Name
		doc.CategorySlug = p.Category.Slug
	}
	return doc
}

// --- DTOs ---

// CategorySummary is the category as embedded in product responses.
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ProductResponse is the public view of a product whose content has already
// been redacted for the viewer.
type ProductResponse struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	ShortDescription string           `json:"short_description"`
	ThumbnailURL     string           `json:"thumbnail_url"`
	IsFeatured       bool             `json:"is_featured"`
	Category         *CategorySummary `json:"category,omitempty"`
	catalog.ContentResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminProductResponse carries every stored field.
type AdminProductResponse struct {
	ID               uuid.UUID        `json:"id"`
	CategoryID       uuid.UUID        `json:"category_id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	ShortDescription string           `json:"short_description"`
	ThumbnailURL     string           `json:"thumbnail_url"`
	IsFeatured       bool             `json:"is_featured"`
	SortOrder        int              `json:"sort_order"`
	Category         *CategorySummary `json:"category,omitempty"`
	catalog.AdminContentResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func summarize(c *category.Category) *CategorySummary {
	if c == nil {
		return nil
	}
	return &CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// ToProductResponse serializes a product returned by the public service
// methods. It does not redact.
func ToProductResponse(p *Product, mediaBaseURL string) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		ThumbnailURL:     catalog.MediaURL(mediaBaseURL, p.ThumbnailPath),
		IsFeatured:       p.IsFeatured,
		Category:         summarize(p.Category),
		ContentResponse:  catalog.ToContentResponse(p.Content, mediaBaseURL),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToProductResponses serializes a listing.
func ToProductResponses(products []Product, mediaBaseURL string) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i], mediaBaseURL)
	}
	return out
}

// ToAdminProductResponse serializes a product for the back office.
func ToAdminProductResponse(p *Product, mediaBaseURL string) AdminProductResponse {
	return AdminProductResponse{
		ID:                   p.ID,
		CategoryID:           p.CategoryID,
		Name:                 p.Name,
		Slug:                 p.Slug,
		ShortDescription:     p.ShortDescription,
		ThumbnailURL:         catalog.MediaURL(mediaBaseURL, p.ThumbnailPath),
		IsFeatured:           p.IsFeatured,
		SortOrder:            p.SortOrder,
		Category:             summarize(p.Category),
		AdminContentResponse: catalog.ToAdminContentResponse(p.Content, mediaBaseURL),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// AdminProductRequest is the body of product create and update requests.
type AdminProductRequest struct {
	CategoryID       uuid.UUID `json:"category_id" binding:"required"`
	Name             string    `json:"name" binding:"required,max=150"`
	Slug             string    `json:"slug" binding:"omitempty,max=150,alphanumdash"`
	ShortDescription string    `json:"short_description" binding:"max=300"`
	IsFeatured       bool      `json:"is_featured"`
	SortOrder        int       `json:"sort_order" binding:"gte=0"`
	catalog.ContentRequest
}

// ListQuery filters product listings.
type ListQuery struct {
	Page         int
	PageSize     int
	CategorySlug string
	Search       string
	FeaturedOnly bool
	// IDs restricts the listing to these products when non-nil, keeping
	// their order. An empty, non-nil slice matches nothing.
	IDs []uuid.UUID
}
