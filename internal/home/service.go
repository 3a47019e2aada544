// Package home assembles the landing page and the back-office dashboard
// from the catalog services.
package home

import (
	"context"
	"fmt"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/product"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/project"

	"go.uber.org/zap"
)

const (
	featuredProductsLimit = 8
	latestProjectsLimit   = 6
)

// ProductSource is the part of the product service the home page reads.
type ProductSource interface {
	ListFeatured(ctx context.Context, limit int, viewerID *string) ([]product.Product, error)
	CountProducts(ctx context.Context) (int64, error)
}

// ProjectSource is the part of the project service the home page reads.
type ProjectSource interface {
	ListLatest(ctx context.Context, limit int, viewerID *string) ([]project.Project, error)
	CountProjects(ctx context.Context) (int64, error)
}

// CertificateCounter counts certificates.
type CertificateCounter interface {
	CountCertificates(ctx context.Context) (int64, error)
}

// UnreadCounter counts unread contact messages.
type UnreadCounter interface {
	CountUnread(ctx context.Context) (int64, error)
}

// ApprovalCounter counts customers waiting for approval.
type ApprovalCounter interface {
	CountPendingApproval(ctx context.Context) (int64, error)
}

// Page is the landing page content. Products and projects are already
// redacted for the viewer.
type Page struct {
	FeaturedProducts []product.Product
	LatestProjects   []project.Project
	CertificateCount int64
}

// Dashboard holds the back-office counters.
type Dashboard struct {
	Products        int64 `json:"products"`
	Projects        int64 `json:"projects"`
	Certificates    int64 `json:"certificates"`
	UnreadMessages  int64 `json:"unread_messages"`
	PendingApproval int64 `json:"pending_approval"`
}

// Service builds the home page and the dashboard.
type Service struct {
	products     ProductSource
	projects     ProjectSource
	certificates CertificateCounter
	messages     UnreadCounter
	customers    ApprovalCounter
	logger       *zap.Logger
}

// NewService creates a home service.
func NewService(
	products ProductSource,
	projects ProjectSource,
	certificates CertificateCounter,
	messages UnreadCounter,
	customers ApprovalCounter,
	logger *zap.Logger,
) *Service {
	return &Service{
		products:     products,
		projects:     projects,
		certificates: certificates,
		messages:     messages,
		customers:    customers,
		logger:       logger.Named("HomeService"),
	}
}

// Page loads the landing page for viewerID.
func (s *Service) Page(ctx context.Context, viewerID *string) (*Page, error) {
	featured, err := s.products.ListFeatured(ctx, featuredProductsLimit, viewerID)
	if err != nil {
		return nil, fmt.Errorf("featured products: %w", err)
	}
	latest, err := s.projects.ListLatest(ctx, latestProjectsLimit, viewerID)
	if err != nil {
		return nil, fmt.Errorf("latest projects: %w", err)
	}
	certificates, err := s.certificates.CountCertificates(ctx)
	if err != nil {
		return nil, fmt.Errorf("certificate count: %w", err)
	}
	return &Page{FeaturedProducts: featured, LatestProjects: latest, CertificateCount: certificates}, nil
}

// Dashboard collects the back-office counters.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	counters := []struct {
		name  string
		count func(context.Context) (int64, error)
		dst   *int64
	}{
		{"products", s.products.CountProducts, &d.Products},
		{"projects", s.projects.CountProjects, &d.Projects},
		{"certificates", s.certificates.CountCertificates, &d.Certificates},
		{"unread messages", s.messages.CountUnread, &d.UnreadMessages},
		{"pending approval", s.customers.CountPendingApproval, &d.PendingApproval},
	}
	for _, c := range counters {
		if *c.dst, err = c.count(ctx); err != nil {
			s.logger.Error("Dashboard counter failed", zap.String("counter", c.name), zap.Error(err))
			return nil, fmt.Errorf("%s count: %w", c.name, err)
		}
	}
	return &d, nil
}
