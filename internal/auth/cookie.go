package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"

	"github.com/gin-gonic/gin"
)

const (
	// Cookie names
	AccessTokenCookie     = "access_token"
	RefreshTokenCookie    = "refresh_token"
	FirebaseSessionCookie = "__session"

	// issuedRefreshKey holds a refresh token set earlier in the same request.
	issuedRefreshKey = "auth.issued_refresh_token"
)

// CookieConfig holds the attributes shared by all session cookies.
type CookieConfig struct {
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// NewCookieConfig reads the cookie attributes from the application config.
func NewCookieConfig(cfg *config.Config) CookieConfig {
	sameSite := http.SameSiteLaxMode
	switch strings.ToLower(cfg.CookieSameSite) {
	case "strict":
		sameSite = http.SameSiteStrictMode
	case "none":
		sameSite = http.SameSiteNoneMode
	}
	return CookieConfig{
		Path:     "/",
		Domain:   cfg.CookieDomain,
		Secure:   cfg.CookieSecure,
		SameSite: sameSite,
	}
}

// CookieHelper reads and writes the session cookies.
type CookieHelper struct {
	config CookieConfig
	now    func() time.Time
}

// NewCookieHelper creates a new cookie helper with the given configuration.
func NewCookieHelper(config CookieConfig) *CookieHelper {
	return &CookieHelper{config: config, now: time.Now}
}

// Credentials reads every session cookie of the request.
func (h *CookieHelper) Credentials(c *gin.Context) Credentials {
	return Credentials{
		AccessToken:     h.read(c, AccessTokenCookie),
		RefreshToken:    h.read(c, RefreshTokenCookie),
		FirebaseSession: h.read(c, FirebaseSessionCookie),
	}
}

// RefreshToken returns the refresh token the client holds after this
// response: one set during the request, otherwise the request cookie.
func (h *CookieHelper) RefreshToken(c *gin.Context) string {
	if issued := c.GetString(issuedRefreshKey); issued != "" {
		return issued
	}
	return h.read(c, RefreshTokenCookie)
}

// SetAuthCookies sets both token cookies to expire with their tokens.
func (h *CookieHelper) SetAuthCookies(c *gin.Context, pair *TokenPair) {
	h.setCookie(c, AccessTokenCookie, pair.AccessToken, h.maxAge(pair.AccessExpiresAt))
	h.setCookie(c, RefreshTokenCookie, pair.RefreshToken, h.maxAge(pair.RefreshExpiresAt))
	c.Set(issuedRefreshKey, pair.RefreshToken)
}

// SetFirebaseSession sets the Firebase session cookie.
func (h *CookieHelper) SetFirebaseSession(c *gin.Context, value string, expiresIn time.Duration) {
	h.setCookie(c, FirebaseSessionCookie, value, int(expiresIn.Seconds()))
}

// ClearAuthCookies removes every session cookie.
func (h *CookieHelper) ClearAuthCookies(c *gin.Context) {
	h.setCookie(c, AccessTokenCookie, "", -1)
	h.setCookie(c, RefreshTokenCookie, "", -1)
	h.setCookie(c, FirebaseSessionCookie, "", -1)
	c.Set(issuedRefreshKey, "")
}

func (h *CookieHelper) maxAge(expiresAt time.Time) int {
	secs := int(expiresAt.Sub(h.now()).Seconds())
	if secs <= 0 {
		return -1
	}
	return secs
}

func (h *CookieHelper) read(c *gin.Context, name string) string {
	value, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return value
}

func (h *CookieHelper) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(h.config.SameSite)
	c.SetCookie(
		name,
		value,
		maxAge,
		h.config.Path,
		h.config.Domain,
		h.config.Secure,
		true, // httpOnly - always true for session cookies
	)
}
