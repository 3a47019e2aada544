package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want RouteClass
	}{
		{"/", ClassPublic},
		{"", ClassPublic},
		{"/produk", ClassPublic},
		{"/produk/apill-led-300mm", ClassPublic},
		{"/kontak", ClassPublic},
		{"/akun", ClassPublic},
		{"/admin/login", ClassAdminLogin},
		{"/admin/login/", ClassAdminLogin},
		{"/admin", ClassAdminOnly},
		{"/admin/", ClassAdminOnly},
		{"/admin/dashboard", ClassAdminOnly},
		{"/admin/produk/123", ClassAdminOnly},
		{"/admin/loginx", ClassAdminOnly},
		{"/administrator", ClassPublic},
		{"/auth", ClassAuthOnly},
		{"/auth/login", ClassAuthOnly},
		{"/auth/register", ClassAuthOnly},
		{"/authors", ClassPublic},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestRouteClass_String(t *testing.T) {
	assert.Equal(t, "public", ClassPublic.String())
	assert.Equal(t, "auth-only", ClassAuthOnly.String())
	assert.Equal(t, "admin-only", ClassAdminOnly.String())
	assert.Equal(t, "admin-login", ClassAdminLogin.String())
}
