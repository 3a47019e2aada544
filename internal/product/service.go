package product

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/catalog"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/category"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/filestorage"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/metrics"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/search"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// SearchIndex is the product search backend. search.ProductIndex implements it.
type SearchIndex interface {
	Enabled() bool
	SearchIDs(ctx context.Context, query string) ([]uuid.UUID, error)
	IndexProduct(ctx context.Context, doc search.ProductDocument) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	Rebuild(ctx context.Context, docs []search.ProductDocument) (int, error)
}

var _ SearchIndex = (*search.ProductIndex)(nil)

// Service defines the interface for product business logic. Public methods
// take the viewer id of the current session and return redacted products.
type Service interface {
	ListProducts(ctx context.Context, query ListQuery, viewerID *string) ([]Product, *common.Pagination, error)
	GetProductBySlug(ctx context.Context, slug string, viewerID *string) (*Product, error)
	ListFeatured(ctx context.Context, limit int, viewerID *string) ([]Product, error)
	CountProducts(ctx context.Context) (int64, error)

	AdminListProducts(ctx context.Context, query ListQuery) ([]Product, *common.Pagination, error)
	AdminGetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	AdminCreateProduct(ctx context.Context, req AdminProductRequest) (*Product, error)
	AdminUpdateProduct(ctx context.Context, id uuid.UUID, req AdminProductRequest) (*Product, error)
	AdminDeleteProduct(ctx context.Context, id uuid.UUID) error
	AdminUploadMedia(ctx context.Context, id uuid.UUID, form *multipart.Form) (*Product, error)

	ReindexCatalog(ctx context.Context) (int, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo       Repository
	categories category.Repository
	index      SearchIndex
	media      filestorage.MediaStore
	logger     *zap.Logger
}

// NewService creates a new product service.
func NewService(repo Repository, categories category.Repository, index SearchIndex, media filestorage.MediaStore, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:       repo,
		categories: categories,
		index:      index,
		media:      media,
		logger:     logger.Named("ProductService"),
	}
}

func redactProducts(products []Product, viewerID *string) []Product {
	policy := catalog.PolicyFor(viewerID)
	for i := range products {
		products[i].Content = policy.Apply(products[i].Content)
	}
	return products
}

// ListProducts lists products for the catalog page. A search term goes to
// the index when one is configured and to the database otherwise.
func (s *ServiceImplementation) ListProducts(ctx context.Context, q ListQuery, viewerID *string) ([]Product, *common.Pagination, error) {
	q.Search = strings.TrimSpace(q.Search)
	if q.Search != "" {
		if s.index != nil && s.index.Enabled() {
			ids, err := s.index.SearchIDs(ctx, q.Search)
			if err != nil {
				s.logger.Warn("Search index unavailable, falling back to database", zap.Error(err))
				metrics.CatalogSearchesTotal.WithLabelValues("database").Inc()
			} else {
				q.IDs = ids
				q.Search = ""
			}
		} else {
			metrics.CatalogSearchesTotal.WithLabelValues("database").Inc()
		}
	}

	products, pagination, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, nil, err
	}
	return redactProducts(products, viewerID), pagination, nil
}

func (s *ServiceImplementation) GetProductBySlug(ctx context.Context, slugToFind string, viewerID *string) (*Product, error) {
	product, err := s.repo.FindBySlug(ctx, slugToFind)
	if err != nil {
		return nil, err
	}
	product.Content = catalog.Redact(product.Content, viewerID)
	return product, nil
}

func (s *ServiceImplementation) ListFeatured(ctx context.Context, limit int, viewerID *string) ([]Product, error) {
	products, _, err := s.repo.List(ctx, ListQuery{Page: 1, PageSize: limit, FeaturedOnly: true})
	if err != nil {
		return nil, err
	}
	return redactProducts(products, viewerID), nil
}

func (s *ServiceImplementation) CountProducts(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ServiceImplementation) AdminListProducts(ctx context.Context, q ListQuery) ([]Product, *common.Pagination, error) {
	return s.repo.List(ctx, q)
}

func (s *ServiceImplementation) AdminGetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) applyRequest(ctx context.Context, product *Product, req AdminProductRequest) error {
	cat, err := s.categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrBadRequest.WithDetails("Category does not exist.")
		}
		return err
	}

	product.CategoryID = cat.ID
	product.Category = cat
	product.Name = strings.TrimSpace(req.Name)
	product.Slug = slug.Make(req.Name)
	if strings.TrimSpace(req.Slug) != "" {
		product.Slug = slug.Make(req.Slug)
	}
	if product.Slug == "" {
		return common.ErrBadRequest.WithDetails("Product name must contain letters or digits.")
	}
	product.ShortDescription = strings.TrimSpace(req.ShortDescription)
	product.IsFeatured = req.IsFeatured
	product.SortOrder = req.SortOrder
	req.ContentRequest.ApplyTo(&product.Content)
	return nil
}

func (s *ServiceImplementation) AdminCreateProduct(ctx context.Context, req AdminProductRequest) (*Product, error) {
	product := &Product{}
	if err := s.applyRequest(ctx, product, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err), zap.String("slug", product.Slug))
		return nil, err
	}
	s.syncIndex(ctx, product)
	s.logger.Info("Product created", zap.String("id", product.ID.String()), zap.String("slug", product.Slug))
	return product, nil
}

func (s *ServiceImplementation) AdminUpdateProduct(ctx context.Context, id uuid.UUID, req AdminProductRequest) (*Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyRequest(ctx, product, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	s.syncIndex(ctx, product)
	s.logger.Info("Product updated", zap.String("id", id.String()))
	return product, nil
}

func (s *ServiceImplementation) AdminDeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.DeleteProduct(ctx, id); err != nil {
			s.logger.Warn("Failed to remove product from search index", zap.String("id", id.String()), zap.Error(err))
		}
	}
	s.media.DeleteFiles(append(product.Content.Paths(), product.ThumbnailPath))
	s.logger.Info("Product deleted", zap.String("id", id.String()))
	return nil
}

// AdminUploadMedia stores the files of form and points the product at them.
// Replaced files are deleted once the product is saved.
func (s *ServiceImplementation) AdminUploadMedia(ctx context.Context, id uuid.UUID, form *multipart.Form) (*Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upload, err := s.media.SaveMediaForm(form)
	if err != nil {
		return nil, err
	}

	displaced := product.Content.ReplaceMedia(upload.Media)
	if upload.Thumbnail != "" {
		if product.ThumbnailPath != "" && product.ThumbnailPath != upload.Thumbnail {
			displaced = append(displaced, product.ThumbnailPath)
		}
		product.ThumbnailPath = upload.Thumbnail
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.media.DeleteFiles(upload.Saved())
		return nil, err
	}
	s.media.DeleteFiles(displaced)
	s.logger.Info("Product media updated", zap.String("id", id.String()), zap.Strings("files", upload.Saved()))
	return product, nil
}

// ReindexCatalog rebuilds the search index from the database.
func (s *ServiceImplementation) ReindexCatalog(ctx context.Context) (int, error) {
	if s.index == nil || !s.index.Enabled() {
		return 0, common.ErrServiceUnavailable.WithDetails("Search index is not configured.")
	}
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	docs := make([]search.ProductDocument, len(products))
	for i := range products {
		docs[i] = products[i].SearchDocument()
	}
	return s.index.Rebuild(ctx, docs)
}

// syncIndex pushes product to the search index. Failures are only logged;
// the next full reindex repairs them.
func (s *ServiceImplementation) syncIndex(ctx context.Context, product *Product) {
	if s.index == nil || !s.index.Enabled() {
		return
	}
	if err := s.index.IndexProduct(ctx, product.SearchDocument()); err != nil {
		s.logger.Warn("Failed to index product", zap.String("id", product.ID.String()), zap.Error(err))
	}
}
