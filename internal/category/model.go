package category

import (
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
)

// Category groups products in the catalog (e.g. traffic lights, warning
// lights, controllers).
type Category struct {
	common.BaseModel
	Name         string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name"`
	Slug         string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_slug"`
	Description  *string `gorm:"type:text"`
	SortOrder    int     `gorm:"not null;default:0"`
	ProductCount int     `gorm:"column:product_count;->;-:migration"` // read-only, filled by FindAll
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// --- DTOs ---

// CategoryResponse defines the structure for category data sent in API responses.
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description,omitempty"`
	SortOrder    int       `json:"sort_order"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a Category model to a CategoryResponse DTO.
func ToCategoryResponse(category *Category) CategoryResponse {
	return CategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		Description:  category.Description,
		SortOrder:    category.SortOrder,
		ProductCount: category.ProductCount,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

// AdminCategoryRequest is the body of category create and update requests.
// An empty slug is derived from the name.
type AdminCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Slug        string  `json:"slug" binding:"omitempty,max=100,alphanumdash"`
	Description *string `json:"description,omitempty"`
	SortOrder   int     `json:"sort_order" binding:"gte=0"`
}
