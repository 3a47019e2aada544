package home

import (
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/product"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/project"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageResponse is the JSON form of the landing page.
type PageResponse struct {
	FeaturedProducts []product.ProductResponse `json:"featured_products"`
	LatestProjects   []project.ProjectResponse `json:"latest_projects"`
	CertificateCount int64                     `json:"certificate_count"`
}

// Handler serves the landing page and the dashboard.
type Handler struct {
	service      *Service
	mediaBaseURL string
	logger       *zap.Logger
}

// NewHandler creates a home handler.
func NewHandler(service *Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{service: service, mediaBaseURL: cfg.MediaPublicBaseURL, logger: logger}
}

// RegisterRoutes sets up the home and dashboard routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.getHome)
	router.GET("/admin/dashboard", h.getDashboard)
}

func (h *Handler) getHome(c *gin.Context) {
	viewerID := session.ViewerIDFromContext(c.Request.Context())
	page, err := h.service.Page(c.Request.Context(), viewerID)
	if err != nil {
		h.logger.Error("Failed to load home page", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Home retrieved successfully.", PageResponse{
		FeaturedProducts: product.ToProductResponses(page.FeaturedProducts, h.mediaBaseURL),
		LatestProjects:   project.ToProjectResponses(page.LatestProjects, h.mediaBaseURL),
		CertificateCount: page.CertificateCount,
	})
}

func (h *Handler) getDashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Dashboard retrieved successfully.", dashboard)
}
