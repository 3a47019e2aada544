package certificate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for certificate data operations.
type Repository interface {
	Create(ctx context.Context, certificate *Certificate) error
	FindByID(ctx context.Context, id uuid.UUID) (*Certificate, error)
	FindBySlug(ctx context.Context, slug string) (*Certificate, error)
	List(ctx context.Context, query ListQuery, now time.Time) ([]Certificate, *common.Pagination, error)
	Update(ctx context.Context, certificate *Certificate) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM certificate repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, certificate *Certificate) error {
	if err := r.db.WithContext(ctx).Create(certificate).Error; err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrConflict.WithDetails("A certificate with this slug already exists.")
		}
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

func (r *gormRepository) findOne(ctx context.Context, query string, arg interface{}) (*Certificate, error) {
	var certificate Certificate
	if err := r.db.WithContext(ctx).Where(query, arg).First(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Certificate not found.")
		}
		return nil, fmt.Errorf("failed to find certificate: %w", err)
	}
	return &certificate, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Certificate, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Certificate, error) {
	return r.findOne(ctx, "slug = ?", strings.ToLower(strings.TrimSpace(slug)))
}

// List returns one page of certificates, most recently issued first.
func (r *gormRepository) List(ctx context.Context, q ListQuery, now time.Time) ([]Certificate, *common.Pagination, error) {
	var (
		certificates []Certificate
		totalItems   int64
	)
	query := r.db.WithContext(ctx).Model(&Certificate{})
	if q.ValidOnly {
		query = query.Where("expires_at IS NULL OR expires_at >= ?", now)
	}
	if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count certificates: %w", err)
	}
	pagination := common.NewPagination(totalItems, q.Page, q.PageSize)

	err := query.Order("issued_at DESC NULLS LAST, name ASC").
		Offset(common.Offset(pagination.CurrentPage, pagination.PageSize)).
		Limit(pagination.PageSize).
		Find(&certificates).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certificates, pagination, nil
}

func (r *gormRepository) Update(ctx context.Context, certificate *Certificate) error {
	if err := r.db.WithContext(ctx).Save(certificate).Error; err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrConflict.WithDetails("A certificate with this slug already exists.")
		}
		return fmt.Errorf("failed to update certificate %s: %w", certificate.ID, err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Certificate{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return fmt.Errorf("failed to delete certificate %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Certificate not found or already deleted.")
	}
	return nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Certificate{}).Count(&count).Error
	return count, err
}
