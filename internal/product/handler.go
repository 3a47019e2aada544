package product

import (
	"strconv"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for product handlers.
type Handler struct {
	service      Service
	mediaBaseURL string
	logger       *zap.Logger
}

// NewHandler creates a new product handler.
func NewHandler(service Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service:      service,
		mediaBaseURL: cfg.MediaPublicBaseURL,
		logger:       logger,
	}
}

// RegisterRoutes sets up the catalog pages and the back-office routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	public := router.Group("/produk")
	{
		public.GET("", h.listProducts)
		public.GET("/:slug", h.getProduct)
	}

	admin := router.Group("/admin/produk")
	{
		admin.GET("", h.adminListProducts)
		admin.POST("", h.adminCreateProduct)
		admin.GET("/:id", h.adminGetProduct)
		admin.PUT("/:id", h.adminUpdateProduct)
		admin.DELETE("/:id", h.adminDeleteProduct)
		admin.POST("/:id/media", h.adminUploadMedia)
	}

	router.POST("/admin/search/reindex", h.adminReindex)
}

func listQueryFromRequest(c *gin.Context) ListQuery {
	page, pageSize := common.GetPaginationParams(c)
	featured, _ := strconv.ParseBool(c.Query("featured"))
	return ListQuery{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: c.Query("category"),
		Search:       c.Query("q"),
		FeaturedOnly: featured,
	}
}

func (h *Handler) listProducts(c *gin.Context) {
	viewerID := session.ViewerIDFromContext(c.Request.Context())
	products, pagination, err := h.service.ListProducts(c.Request.Context(), listQueryFromRequest(c), viewerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Products retrieved successfully.", ToProductResponses(products, h.mediaBaseURL), pagination)
}

func (h *Handler) getProduct(c *gin.Context) {
	viewerID := session.ViewerIDFromContext(c.Request.Context())
	product, err := h.service.GetProductBySlug(c.Request.Context(), c.Param("slug"), viewerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Product retrieved successfully.", ToProductResponse(product, h.mediaBaseURL))
}

func (h *Handler) adminListProducts(c *gin.Context) {
	products, pagination, err := h.service.AdminListProducts(c.Request.Context(), listQueryFromRequest(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	out := make([]AdminProductResponse, len(products))
	for i := range products {
		out[i] = ToAdminProductResponse(&products[i], h.mediaBaseURL)
	}
	common.RespondPaginated(c, "Products retrieved successfully.", out, pagination)
}

func (h *Handler) adminGetProduct(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.service.AdminGetProduct(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Product retrieved successfully.", ToAdminProductResponse(product, h.mediaBaseURL))
}

func (h *Handler) adminCreateProduct(c *gin.Context) {
	var req AdminProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin create product: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	product, err := h.service.AdminCreateProduct(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Product created successfully.", ToAdminProductResponse(product, h.mediaBaseURL))
}

func (h *Handler) adminUpdateProduct(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AdminProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin update product: invalid request body", zap.Error(err), zap.String("productID", id.String()))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	product, err := h.service.AdminUpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Product updated successfully.", ToAdminProductResponse(product, h.mediaBaseURL))
}

func (h *Handler) adminDeleteProduct(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.AdminDeleteProduct(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) adminUploadMedia(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Expected a multipart form."))
		return
	}
	product, err := h.service.AdminUploadMedia(c.Request.Context(), id, form)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Product media updated successfully.", ToAdminProductResponse(product, h.mediaBaseURL))
}

func (h *Handler) adminReindex(c *gin.Context) {
	indexed, err := h.service.ReindexCatalog(c.Request.Context())
	if err != nil {
		h.logger.Error("Catalog reindex failed", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Catalog index rebuilt.", gin.H{"indexed": indexed})
}
