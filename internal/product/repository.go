package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for product data operations.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, query ListQuery) ([]Product, *common.Pagination, error)
	FindAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM product repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Omit("Category").Create(product).Error; err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrConflict.WithDetails("A product with this slug already exists.")
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *gormRepository) findOne(ctx context.Context, query string, arg interface{}) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Preload("Category").Where(query, arg).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Product not found.")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return r.findOne(ctx, "products.id = ?", id)
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	return r.findOne(ctx, "products.slug = ?", strings.ToLower(strings.TrimSpace(slug)))
}

// List returns one page of products in display order, or in the order of
// q.IDs when it is set.
func (r *gormRepository) List(ctx context.Context, q ListQuery) ([]Product, *common.Pagination, error) {
	var (
		products   []Product
		totalItems int64
	)
	pagination := common.NewPagination(0, q.Page, q.PageSize)

	if q.IDs != nil && len(q.IDs) == 0 {
		return []Product{}, pagination, nil
	}

	query := r.db.WithContext(ctx).Model(&Product{})
	if q.IDs != nil {
		query = query.Where("products.id IN ?", q.IDs)
	}
	if q.CategorySlug != "" {
		query = query.Where("products.category_id IN (?)",
			r.db.Table("categories").Select("id").Where("slug = ?", strings.ToLower(q.CategorySlug)))
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.short_description) LIKE ?", like, like)
	}
	if q.FeaturedOnly {
		query = query.Where("products.is_featured = ?", true)
	}

	if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count products: %w", err)
	}
	pagination = common.NewPagination(totalItems, q.Page, q.PageSize)

	if len(q.IDs) > 0 {
		query = query.Order(idPositionOrder(q.IDs))
	}
	err := query.Preload("Category").
		Order("products.sort_order ASC, products.name ASC").
		Offset(common.Offset(pagination.CurrentPage, pagination.PageSize)).
		Limit(pagination.PageSize).
		Find(&products).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, pagination, nil
}

// idPositionOrder sorts rows by the position of their id in ids.
func idPositionOrder(ids []uuid.UUID) clause.OrderBy {
	var sql strings.Builder
	vars := make([]interface{}, 0, 2*len(ids))
	sql.WriteString("CASE products.id")
	for i, id := range ids {
		sql.WriteString(" WHEN ? THEN ?")
		vars = append(vars, id, i)
	}
	sql.WriteString(" END")
	return clause.OrderBy{Expression: clause.Expr{SQL: sql.String(), Vars: vars, WithoutParentheses: true}}
}

// FindAll loads every product with its category, for reindexing.
func (r *gormRepository) FindAll(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Preload("Category").Order("products.created_at ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

func (r *gormRepository) Update(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Omit("Category").Save(product).Error; err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrConflict.WithDetails("A product with this slug already exists.")
		}
		return fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Product{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Product not found or already deleted.")
	}
	return nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Product{}).Count(&count).Error
	return count, err
}
