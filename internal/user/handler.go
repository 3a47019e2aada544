package user

import (
	"strconv"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/access"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the account page and the back-office user list.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the account routes, which need a session, and the
// admin routes, which the route guard already restricts to administrators.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	account := router.Group("/akun")
	account.Use(requireSession)
	{
		account.GET("", h.getMe)
		account.PUT("", h.updateMe)
	}

	admin := router.Group("/admin/pengguna")
	{
		admin.GET("", h.adminList)
		admin.GET("/:id", h.adminGet)
		admin.PATCH("/:id/approval", h.adminSetApproval)
		admin.PATCH("/:id/role", h.adminSetRole)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	sess, _ := session.FromContext(c.Request.Context())
	usr, err := h.service.GetBySession(c.Request.Context(), sess)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) updateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update profile: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	sess, _ := session.FromContext(c.Request.Context())
	usr, err := h.service.UpdateProfile(c.Request.Context(), sess, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", ToUserResponse(usr))
}

func (h *Handler) adminList(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	q := ListQuery{
		Search:   c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("role"); raw != "" {
		role, err := access.ParseRole(raw)
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid role filter."))
			return
		}
		q.Role = &role
	}
	if raw := c.Query("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid approved filter."))
			return
		}
		q.Approved = &approved
	}

	users, pagination, err := h.service.AdminListUsers(c.Request.Context(), q)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	common.RespondPaginated(c, "Users retrieved successfully.", out, pagination)
}

func (h *Handler) adminGet(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	usr, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) adminSetApproval(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AdminSetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	usr, err := h.service.AdminSetApproval(c.Request.Context(), id, *req.Approved)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User approval updated.", ToUserResponse(usr))
}

func (h *Handler) adminSetRole(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AdminSetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	role, err := access.ParseRole(req.Role)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	actor, _ := session.FromContext(c.Request.Context())
	usr, err := h.service.AdminSetRole(c.Request.Context(), actor, id, role)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	h.logger.Info("Admin changed user role", zap.String("userID", id.String()), zap.Stringer("role", role))
	common.RespondOK(c, "User role updated.", ToUserResponse(usr))
}
