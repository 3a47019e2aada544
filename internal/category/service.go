package category

import (
	"context"
	"strings"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for category-related business logic.
type Service interface {
	AdminCreateCategory(ctx context.Context, req AdminCategoryRequest) (*Category, error)
	AdminUpdateCategory(ctx context.Context, id uuid.UUID, req AdminCategoryRequest) (*Category, error)
	AdminDeleteCategory(ctx context.Context, id uuid.UUID) error

	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	GetAllCategories(ctx context.Context) ([]Category, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new category service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Named("CategoryService"),
	}
}

func makeSlug(name, requested string) string {
	if s := strings.TrimSpace(requested); s != "" {
		return slug.Make(s)
	}
	return slug.Make(name)
}

func (s *service) AdminCreateCategory(ctx context.Context, req AdminCategoryRequest) (*Category, error) {
	category := &Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        makeSlug(req.Name, req.Slug),
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if category.Slug == "" {
		return nil, common.ErrBadRequest.WithDetails("Category name must contain letters or digits.")
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}
	s.logger.Info("Category created successfully", zap.String("id", category.ID.String()), zap.String("slug", category.Slug))
	return category, nil
}

func (s *service) AdminUpdateCategory(ctx context.Context, id uuid.UUID, req AdminCategoryRequest) (*Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Slug = makeSlug(req.Name, req.Slug)
	category.Description = req.Description
	category.SortOrder = req.SortOrder

	if err := s.repo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	s.logger.Info("Category updated successfully", zap.String("id", category.ID.String()))
	return category, nil
}

func (s *service) AdminDeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("Failed to delete category", zap.Error(err), zap.String("id", id.String()))
		return err
	}
	s.logger.Info("Category deleted successfully", zap.String("id", id.String()))
	return nil
}

func (s *service) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetCategoryBySlug(ctx context.Context, slugToFind string) (*Category, error) {
	return s.repo.FindBySlug(ctx, slugToFind)
}

func (s *service) GetAllCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get all categories", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve categories.")
	}
	return categories, nil
}
