package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for category data operations.
type Repository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM category repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func normalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (r *gormRepository) Create(ctx context.Context, category *Category) error {
	category.Slug = normalizeSlug(category.Slug)
	err := r.db.WithContext(ctx).Create(category).Error
	if err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrConflict.WithDetails("Category with this name or slug already exists.")
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *gormRepository) findOne(ctx context.Context, query string, arg interface{}) (*Category, error) {
	var category Category
	err := r.db.WithContext(ctx).Where(query, arg).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Category not found.")
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	return r.findOne(ctx, "slug = ?", normalizeSlug(slug))
}

// FindAll lists categories in display order, each with its product count.
func (r *gormRepository) FindAll(ctx context.Context) ([]Category, error) {
	var categories []Category

	productCount := r.db.Table("products").
		Select("count(*)").
		Where("products.category_id = categories.id")

	err := r.db.WithContext(ctx).Model(&Category{}).
		Select("categories.*, (?) AS product_count", productCount).
		Order("categories.sort_order ASC, categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *gormRepository) Update(ctx context.Context, category *Category) error {
	category.Slug = normalizeSlug(category.Slug)
	err := r.db.WithContext(ctx).Save(category).Error
	if err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrConflict.WithDetails("Category with this name or slug already exists.")
		}
		return fmt.Errorf("failed to update category %s: %w", category.ID, err)
	}
	return nil
}

// Delete removes a category that no product refers to.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var productCount int64
	if err := r.db.WithContext(ctx).Table("products").Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to check products of category %s: %w", id, err)
	}
	if productCount > 0 {
		return common.ErrConflict.WithDetails(
			fmt.Sprintf("Cannot delete category: %d products are still associated with it.", productCount),
		)
	}

	result := r.db.WithContext(ctx).Delete(&Category{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Category not found or already deleted.")
	}
	return nil
}
