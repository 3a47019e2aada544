package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/auth"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/category"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/certificate"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/contact"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/filestorage"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/home"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/jobs"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/middleware"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/product"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/project"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups every route handler of the site.
type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Home        *home.Handler
	Category    *category.Handler
	Product     *product.Handler
	Project     *project.Handler
	Certificate *certificate.Handler
	Contact     *contact.Handler
	Media       *filestorage.Handler
}

// Edge bundles what the route guard needs to resolve sessions and roles.
type Edge struct {
	Sessions middleware.SessionResolver
	Cookies  *auth.CookieHelper
	Roles    middleware.RoleSource
}

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	reindexJob *jobs.CatalogReindexJob
}

// NewServer builds the router: global middleware, probes, the route guard
// and then every handler.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	edge Edge,
	handlers Handlers,
	formLimiter *middleware.RateLimiter,
	reindexJob *jobs.CatalogReindexJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := common.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("registering validators: %w", err)
		}
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Probes are registered before the guard and never resolve sessions.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Seltronik API is healthy!"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Use(middleware.RouteGuard(edge.Sessions, edge.Cookies, edge.Roles, logger))

	requireSession := middleware.RequireSession()
	formLimit := formLimiter.Handler()

	site := &router.RouterGroup
	handlers.Auth.RegisterRoutes(site, requireSession, formLimit)
	handlers.User.RegisterRoutes(site, requireSession)
	handlers.Home.RegisterRoutes(site)
	handlers.Category.RegisterRoutes(site)
	handlers.Product.RegisterRoutes(site)
	handlers.Project.RegisterRoutes(site)
	handlers.Certificate.RegisterRoutes(site)
	handlers.Contact.RegisterRoutes(site, formLimit)
	handlers.Media.RegisterRoutes(site)

	router.NoRoute(func(c *gin.Context) {
		common.RespondWithError(c, common.ErrNotFound.WithDetails("Page not found."))
	})

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ServerTimeout,
		WriteTimeout:      cfg.ServerTimeout,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		cfg:        cfg,
		logger:     logger,
		reindexJob: reindexJob,
	}, nil
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the reindex job and serves until Shutdown.
func (s *Server) Start() error {
	if s.reindexJob != nil {
		if err := s.reindexJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start catalog reindex job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

// Shutdown stops the job scheduler and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.reindexJob != nil {
		s.reindexJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
