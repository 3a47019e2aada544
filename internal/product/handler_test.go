package product

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupProductRouter(f serviceFixture, sess *session.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if sess != nil {
			c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))
		}
		c.Next()
	})
	h := NewHandler(f.service, &config.Config{MediaPublicBaseURL: "https://cdn.seltronik.co.id"}, zap.NewNop())
	h.RegisterRoutes(&router.RouterGroup)
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestProductHandler_Detail_AnonymousGetsRedactedPayload(t *testing.T) {
	f := setupServiceTest(t, false)
	p := gatedProduct("Apill")
	f.repo.On("FindBySlug", mock.Anything, "apill").Return(&p, nil)

	code, body := getJSON(t, setupProductRouter(f, nil), "/produk/apill")

	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{}, data["specifications"])
	assert.Equal(t, "", data["document_url"])
	assert.Len(t, data["features"], 3)
	assert.Equal(t, "https://cdn.seltronik.co.id/media/images/x-mock.jpg", data["image_url"])
	assert.NotContains(t, data, "high_res_image_url")
}

func TestProductHandler_Detail_SignedInGetsFullPayload(t *testing.T) {
	f := setupServiceTest(t, false)
	p := gatedProduct("Apill")
	f.repo.On("FindBySlug", mock.Anything, "apill").Return(&p, nil)
	sess := &session.Session{Subject: "8d3c1f0e-0000-4000-8000-000000000001", Provider: session.ProviderPassword, ExpiresAt: time.Now().Add(time.Hour)}

	code, body := getJSON(t, setupProductRouter(f, sess), "/produk/apill")

	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"power": "15W"}, data["specifications"])
	assert.Equal(t, "https://cdn.seltronik.co.id/media/documents/x.pdf", data["document_url"])
	assert.Len(t, data["features"], 4)
}

func TestProductHandler_List_PassesFilters(t *testing.T) {
	f := setupServiceTest(t, false)
	q := ListQuery{Page: 2, PageSize: 5, CategorySlug: "traffic-light", Search: "led"}
	f.repo.On("List", mock.Anything, q).Return([]Product{gatedProduct("A")}, common.NewPagination(6, 2, 5), nil)

	code, body := getJSON(t, setupProductRouter(f, nil), "/produk?page=2&page_size=5&category=traffic-light&q=led")

	require.Equal(t, http.StatusOK, code)
	items := body["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "", items[0].(map[string]interface{})["document_url"])
	assert.Equal(t, float64(6), body["pagination"].(map[string]interface{})["total_items"])
}

func TestProductHandler_NotFound(t *testing.T) {
	f := setupServiceTest(t, false)
	f.repo.On("FindBySlug", mock.Anything, "missing").Return(nil, common.ErrNotFound)

	code, _ := getJSON(t, setupProductRouter(f, nil), "/produk/missing")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProductHandler_AdminGet_Unredacted(t *testing.T) {
	f := setupServiceTest(t, false)
	p := gatedProduct("Apill")
	f.repo.On("FindByID", mock.Anything, p.ID).Return(&p, nil)

	code, body := getJSON(t, setupProductRouter(f, nil), "/admin/produk/"+p.ID.String())

	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "https://cdn.seltronik.co.id/media/images/x-hd.jpg", data["high_res_image_url"])
	assert.Equal(t, "https://cdn.seltronik.co.id/media/images/x-mock.jpg", data["mockup_image_url"])
}

func TestProductHandler_AdminGet_BadID(t *testing.T) {
	f := setupServiceTest(t, false)
	code, _ := getJSON(t, setupProductRouter(f, nil), "/admin/produk/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, code)
}
