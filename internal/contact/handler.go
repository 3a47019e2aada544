package contact

import (
	"net/http"
	"strconv"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the contact form and the back-office inbox.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a contact handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the contact routes. The public form goes through
// formLimit.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, formLimit gin.HandlerFunc) {
	router.POST("/kontak", formLimit, h.submit)

	inbox := router.Group("/admin/pesan")
	{
		inbox.GET("", h.listMessages)
		inbox.POST("/read-all", h.markAllAsRead)
		inbox.PATCH("/:id/read", h.markAsRead)
		inbox.DELETE("/:id", h.deleteMessage)
	}
}

func (h *Handler) submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	senderID := session.ViewerIDFromContext(c.Request.Context())
	message, err := h.service.Submit(c.Request.Context(), req, senderID, c.ClientIP())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Thank you, your message has been sent.", gin.H{"id": message.ID})
}

func (h *Handler) listMessages(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))

	messages, pagination, err := h.service.ListMessages(c.Request.Context(), page, pageSize, unreadOnly)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Messages retrieved successfully.", messages, pagination)
}

func (h *Handler) markAsRead(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkAsRead(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondSuccess(c, http.StatusOK, "Message marked as read.", nil)
}

func (h *Handler) markAllAsRead(c *gin.Context) {
	count, err := h.service.MarkAllAsRead(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "All messages marked as read.", gin.H{"updated": count})
}

func (h *Handler) deleteMessage(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteMessage(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
