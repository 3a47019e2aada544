package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tt := range []struct {
		name    string
		session *session.Session
		want    int
	}{
		{name: "anonymous", want: http.StatusUnauthorized},
		{name: "signed in", session: testSession, want: http.StatusOK},
	} {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.session != nil {
					c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), tt.session))
				}
			})
			router.GET("/akun", RequireSession(), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/akun", nil))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
