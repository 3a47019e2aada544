package filestorage

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupMediaRouter(t *testing.T, signedIn bool) (*gin.Engine, *FileStorageService) {
	gin.SetMode(gin.TestMode)
	fsService, _ := setupFileStorageService(t)
	require.NoError(t, os.WriteFile(filepath.Join(fsService.Root(KindImage), "lamp.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fsService.Root(KindDocument), "datasheet.pdf"), []byte("%PDF-1.7"), 0o644))

	requireSession := func(c *gin.Context) {
		if !signedIn {
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}
		c.Next()
	}
	router := gin.New()
	NewHandler(fsService, requireSession, zap.NewNop()).RegisterRoutes(router.Group(""))
	return router, fsService
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_ImagesArePublic(t *testing.T) {
	router, _ := setupMediaRouter(t, false)

	w := get(router, "/media/images/lamp.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Cache-Control"), "public")
}

func TestHandler_DocumentsNeedSession(t *testing.T) {
	router, _ := setupMediaRouter(t, false)

	w := get(router, "/media/documents/datasheet.pdf")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_DocumentsSignedIn(t *testing.T) {
	router, _ := setupMediaRouter(t, true)

	w := get(router, "/media/documents/datasheet.pdf")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.7", w.Body.String())
	assert.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
}

func TestHandler_NotFoundAndTraversal(t *testing.T) {
	router, _ := setupMediaRouter(t, true)

	assert.Equal(t, http.StatusNotFound, get(router, "/media/images/missing.png").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/media/documents/%2e%2e/images/lamp.png").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/media/images/").Code)
}
