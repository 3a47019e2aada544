package filestorage

import (
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves stored media. Images are public; documents need a session.
type Handler struct {
	store          *FileStorageService
	requireSession gin.HandlerFunc
	logger         *zap.Logger
}

// NewHandler creates a media handler.
func NewHandler(store *FileStorageService, requireSession gin.HandlerFunc, logger *zap.Logger) *Handler {
	return &Handler{store: store, requireSession: requireSession, logger: logger}
}

// RegisterRoutes sets up /media/images and /media/documents.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	media := router.Group("/media")
	{
		media.GET("/images/*path", h.serve(KindImage, "public, max-age=86400"))
		media.GET("/documents/*path", h.requireSession, h.serve(KindDocument, "private, no-store"))
	}
}

func (h *Handler) serve(kind Kind, cacheControl string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullPath, err := h.store.ResolvePath(kind, c.Param("path"))
		if err != nil {
			common.RespondWithError(c, err)
			return
		}
		c.Header("Cache-Control", cacheControl)
		c.File(fullPath)
	}
}
