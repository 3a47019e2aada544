package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for project data operations.
type Repository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	List(ctx context.Context, query ListQuery) ([]Project, *common.Pagination, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM project repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, project *Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrConflict.WithDetails("A project with this slug already exists.")
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *gormRepository) findOne(ctx context.Context, query string, arg interface{}) (*Project, error) {
	var project Project
	if err := r.db.WithContext(ctx).Where(query, arg).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Project not found.")
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Project, error) {
	return r.findOne(ctx, "slug = ?", strings.ToLower(strings.TrimSpace(slug)))
}

// List returns one page of projects, newest year first.
func (r *gormRepository) List(ctx context.Context, q ListQuery) ([]Project, *common.Pagination, error) {
	var (
		projects   []Project
		totalItems int64
	)
	query := r.db.WithContext(ctx).Model(&Project{})
	if q.Year > 0 {
		query = query.Where("year = ?", q.Year)
	}
	if err := query.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count projects: %w", err)
	}
	pagination := common.NewPagination(totalItems, q.Page, q.PageSize)

	err := query.Order("year DESC, created_at DESC").
		Offset(common.Offset(pagination.CurrentPage, pagination.PageSize)).
		Limit(pagination.PageSize).
		Find(&projects).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, pagination, nil
}

func (r *gormRepository) Update(ctx context.Context, project *Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrConflict.WithDetails("A project with this slug already exists.")
		}
		return fmt.Errorf("failed to update project %s: %w", project.ID, err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Project{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Project not found or already deleted.")
	}
	return nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Project{}).Count(&count).Error
	return count, err
}
