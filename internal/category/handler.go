package category

import (
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for category handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new category handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the public category list and the admin CRUD
// routes, which the route guard restricts to administrators.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	public := router.Group("/kategori")
	{
		public.GET("", h.getAllCategories)
		public.GET("/:idOrSlug", h.getCategory)
	}

	admin := router.Group("/admin/kategori")
	{
		admin.GET("", h.getAllCategories)
		admin.POST("", h.adminCreateCategory)
		admin.PUT("/:id", h.adminUpdateCategory)
		admin.DELETE("/:id", h.adminDeleteCategory)
	}
}

func (h *Handler) getAllCategories(c *gin.Context) {
	categories, err := h.service.GetAllCategories(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	common.RespondOK(c, "Categories retrieved successfully.", out)
}

func (h *Handler) getCategory(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")
	var (
		category *Category
		err      error
	)
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		category, err = h.service.GetCategoryByID(c.Request.Context(), id)
	} else {
		category, err = h.service.GetCategoryBySlug(c.Request.Context(), idOrSlug)
	}
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Category retrieved successfully.", ToCategoryResponse(category))
}

func (h *Handler) adminCreateCategory(c *gin.Context) {
	var req AdminCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin create category: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	category, err := h.service.AdminCreateCategory(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Category created successfully.", ToCategoryResponse(category))
}

func (h *Handler) adminUpdateCategory(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AdminCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin update category: invalid request body", zap.Error(err), zap.String("categoryID", id.String()))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	category, err := h.service.AdminUpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Category updated successfully.", ToCategoryResponse(category))
}

func (h *Handler) adminDeleteCategory(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.AdminDeleteCategory(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
