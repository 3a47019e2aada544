package project

import (
	"strconv"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for project handlers.
type Handler struct {
	service      Service
	mediaBaseURL string
	logger       *zap.Logger
}

// NewHandler creates a new project handler.
func NewHandler(service Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{service: service, mediaBaseURL: cfg.MediaPublicBaseURL, logger: logger}
}

// RegisterRoutes sets up the portfolio pages and the back-office routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	public := router.Group("/proyek")
	{
		public.GET("", h.listProjects)
		public.GET("/:slug", h.getProject)
	}

	admin := router.Group("/admin/proyek")
	{
		admin.GET("", h.adminListProjects)
		admin.POST("", h.adminCreateProject)
		admin.GET("/:id", h.adminGetProject)
		admin.PUT("/:id", h.adminUpdateProject)
		admin.DELETE("/:id", h.adminDeleteProject)
		admin.POST("/:id/media", h.adminUploadMedia)
	}
}

func listQueryFromRequest(c *gin.Context) ListQuery {
	page, pageSize := common.GetPaginationParams(c)
	year, _ := strconv.Atoi(c.Query("year"))
	return ListQuery{Page: page, PageSize: pageSize, Year: year}
}

func (h *Handler) listProjects(c *gin.Context) {
	viewerID := session.ViewerIDFromContext(c.Request.Context())
	projects, pagination, err := h.service.ListProjects(c.Request.Context(), listQueryFromRequest(c), viewerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Projects retrieved successfully.", ToProjectResponses(projects, h.mediaBaseURL), pagination)
}

func (h *Handler) getProject(c *gin.Context) {
	viewerID := session.ViewerIDFromContext(c.Request.Context())
	project, err := h.service.GetProjectBySlug(c.Request.Context(), c.Param("slug"), viewerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Project retrieved successfully.", ToProjectResponse(project, h.mediaBaseURL))
}

func (h *Handler) adminListProjects(c *gin.Context) {
	projects, pagination, err := h.service.AdminListProjects(c.Request.Context(), listQueryFromRequest(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	out := make([]AdminProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToAdminProjectResponse(&projects[i], h.mediaBaseURL)
	}
	common.RespondPaginated(c, "Projects retrieved successfully.", out, pagination)
}

func (h *Handler) adminGetProject(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	project, err := h.service.AdminGetProject(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Project retrieved successfully.", ToAdminProjectResponse(project, h.mediaBaseURL))
}

func (h *Handler) adminCreateProject(c *gin.Context) {
	var req AdminProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin create project: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	project, err := h.service.AdminCreateProject(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Project created successfully.", ToAdminProjectResponse(project, h.mediaBaseURL))
}

func (h *Handler) adminUpdateProject(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AdminProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	project, err := h.service.AdminUpdateProject(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Project updated successfully.", ToAdminProjectResponse(project, h.mediaBaseURL))
}

func (h *Handler) adminDeleteProject(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.AdminDeleteProject(c.Request.Context(), id); err != nil {
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
	project, err := h.service.AdminUploadMedia(c.Request.Context(), id, form)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Project media updated successfully.", ToAdminProjectResponse(project, h.mediaBaseURL))
}
