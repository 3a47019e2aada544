package certificate

import (
	"strconv"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for certificate handlers.
type Handler struct {
	service      Service
	mediaBaseURL string
	logger       *zap.Logger
}

// NewHandler creates a new certificate handler.
func NewHandler(service Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{service: service, mediaBaseURL: cfg.MediaPublicBaseURL, logger: logger}
}

// RegisterRoutes sets up the certificate pages and the back-office routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	public := router.Group("/sertifikat")
	{
		public.GET("", h.listCertificates)
		public.GET("/:slug", h.getCertificate)
	}

	admin := router.Group("/admin/sertifikat")
	{
		admin.GET("", h.adminListCertificates)
		admin.POST("", h.adminCreateCertificate)
		admin.GET("/:id", h.adminGetCertificate)
		admin.PUT("/:id", h.adminUpdateCertificate)
		admin.DELETE("/:id", h.adminDeleteCertificate)
		admin.POST("/:id/media", h.adminUploadMedia)
	}
}

func listQueryFromRequest(c *gin.Context) ListQuery {
	page, pageSize := common.GetPaginationParams(c)
	validOnly, _ := strconv.ParseBool(c.Query("valid"))
	return ListQuery{Page: page, PageSize: pageSize, ValidOnly: validOnly}
}

func (h *Handler) listCertificates(c *gin.Context) {
	viewerID := session.ViewerIDFromContext(c.Request.Context())
	certificates, pagination, err := h.service.ListCertificates(c.Request.Context(), listQueryFromRequest(c), viewerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	now := time.Now()
	out := make([]CertificateResponse, len(certificates))
	for i := range certificates {
		out[i] = ToCertificateResponse(&certificates[i], h.mediaBaseURL, now)
	}
	common.RespondPaginated(c, "Certificates retrieved successfully.", out, pagination)
}

func (h *Handler) getCertificate(c *gin.Context) {
	viewerID := session.ViewerIDFromContext(c.Request.Context())
	certificate, err := h.service.GetCertificateBySlug(c.Request.Context(), c.Param("slug"), viewerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Certificate retrieved successfully.", ToCertificateResponse(certificate, h.mediaBaseURL, time.Now()))
}

func (h *Handler) adminListCertificates(c *gin.Context) {
	certificates, pagination, err := h.service.AdminListCertificates(c.Request.Context(), listQueryFromRequest(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	out := make([]AdminCertificateResponse, len(certificates))
	for i := range certificates {
		out[i] = ToAdminCertificateResponse(&certificates[i], h.mediaBaseURL)
	}
	common.RespondPaginated(c, "Certificates retrieved successfully.", out, pagination)
}

func (h *Handler) adminGetCertificate(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	certificate, err := h.service.AdminGetCertificate(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Certificate retrieved successfully.", ToAdminCertificateResponse(certificate, h.mediaBaseURL))
}

func (h *Handler) adminCreateCertificate(c *gin.Context) {
	var req AdminCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin create certificate: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	certificate, err := h.service.AdminCreateCertificate(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Certificate created successfully.", ToAdminCertificateResponse(certificate, h.mediaBaseURL))
}

func (h *Handler) adminUpdateCertificate(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AdminCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	certificate, err := h.service.AdminUpdateCertificate(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Certificate updated successfully.", ToAdminCertificateResponse(certificate, h.mediaBaseURL))
}

func (h *Handler) adminDeleteCertificate(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.AdminDeleteCertificate(c.Request.Context(), id); err != nil {
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
	certificate, err := h.service.AdminUploadMedia(c.Request.Context(), id, form)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Certificate media updated successfully.", ToAdminCertificateResponse(certificate, h.mediaBaseURL))
}
