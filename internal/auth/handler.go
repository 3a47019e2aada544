package auth

import (
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/access"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/session"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service Service
	cookies *CookieHelper
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, cookies *CookieHelper, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cookies: cookies,
		logger:  logger,
	}
}

// RegisterRoutes sets up the sign-in, sign-up and sign-out routes. Form
// submissions go through formLimit.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, requireSession, formLimit gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/login", h.loginForm)
		authGroup.GET("/register", h.registerForm)
		authGroup.POST("/login", formLimit, h.login)
		authGroup.POST("/register", formLimit, h.register)
		authGroup.POST("/firebase", formLimit, h.firebaseLogin)
	}

	router.GET(access.AdminLoginPath, h.adminLoginForm)
	router.POST(access.AdminLoginPath, formLimit, h.adminLogin)

	router.POST("/akun/logout", requireSession, h.logout)
}

var (
	signInFields = []FormField{
		{Name: "email", Type: "email", Required: true},
		{Name: "password", Type: "password", Required: true},
	}
	signUpFields = []FormField{
		{Name: "email", Type: "email", Required: true},
		{Name: "password", Type: "password", Required: true},
		{Name: "full_name", Type: "text", Required: true},
		{Name: "company", Type: "text"},
		{Name: "phone", Type: "tel"},
	}
)

func (h *Handler) loginForm(c *gin.Context) {
	common.RespondOK(c, "", FormDescriptor{
		Title:           "Masuk",
		Action:          "/auth/login",
		Fields:          signInFields,
		FirebaseEnabled: h.service.FirebaseEnabled(),
	})
}

func (h *Handler) registerForm(c *gin.Context) {
	common.RespondOK(c, "", FormDescriptor{
		Title:           "Daftar",
		Action:          "/auth/register",
		Fields:          signUpFields,
		FirebaseEnabled: h.service.FirebaseEnabled(),
	})
}

func (h *Handler) adminLoginForm(c *gin.Context) {
	common.RespondOK(c, "", FormDescriptor{
		Title:  "Admin Login",
		Action: access.AdminLoginPath,
		Fields: signInFields,
	})
}

func (h *Handler) login(c *gin.Context) {
	h.signIn(c, false)
}

func (h *Handler) adminLogin(c *gin.Context) {
	h.signIn(c, true)
}

func (h *Handler) signIn(c *gin.Context, requireAdmin bool) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Sign-in: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	u, pair, err := h.service.SignIn(c.Request.Context(), req, requireAdmin)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	h.cookies.SetAuthCookies(c, pair)
	common.RespondOK(c, "Signed in successfully.", SessionResponse{
		User:     user.ToUserResponse(u),
		Redirect: u.Role.LandingPath(),
	})
}

func (h *Handler) register(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Sign-up: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	u, pair, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	h.cookies.SetAuthCookies(c, pair)
	common.RespondCreated(c, "Account created successfully.", SessionResponse{
		User:     user.ToUserResponse(u),
		Redirect: u.Role.LandingPath(),
	})
}

func (h *Handler) firebaseLogin(c *gin.Context) {
	var req FirebaseSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}

	u, fs, err := h.service.SignInWithFirebase(c.Request.Context(), req.IDToken)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	h.cookies.SetFirebaseSession(c, fs.Cookie, fs.ExpiresIn)
	common.RespondOK(c, "Signed in successfully.", SessionResponse{
		User:     user.ToUserResponse(u),
		Redirect: u.Role.LandingPath(),
	})
}

func (h *Handler) logout(c *gin.Context) {
	var req SignOutRequest
	// The body is optional.
	_ = c.ShouldBindJSON(&req)

	sess, _ := session.FromContext(c.Request.Context())
	if err := h.service.SignOut(c.Request.Context(), sess, h.cookies.RefreshToken(c), req.Everywhere); err != nil {
		common.RespondWithError(c, err)
		return
	}

	h.cookies.ClearAuthCookies(c)
	common.RespondOK(c, "Signed out successfully.", gin.H{"redirect": access.HomePath})
}
