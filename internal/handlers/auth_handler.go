package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/middleware"
	"pennywise/internal/services"
	"pennywise/internal/session"
)

// AuthHandler handles the landing page, registration, login and logout
type AuthHandler struct {
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// CredentialsRequest is the form posted by the register and login pages
type CredentialsRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Landing renders the public start page
func (h *AuthHandler) Landing(c *gin.Context) {
	render(c, "landing.html", "Welcome", nil)
}

// ShowRegister renders the registration form
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, "register.html", "Register", nil)
}

// Register creates an account and sends the user to the login page
func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, session.FlashError, "Please fill in all fields", "/register")
		return
	}

	if _, err := h.userService.Register(req.Username, req.Password); err != nil {
		redirectWithError(c, err, "/register")
		return
	}

	redirectWithFlash(c, session.FlashSuccess, "You are now registered and can log in", "/login")
}

// ShowLogin renders the login form
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, "login.html", "Login", nil)
}

// Login binds the authenticated user to the session
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, apperrors.ErrInvalidCredentials, "/login")
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		redirectWithError(c, err, "/login")
		return
	}

	if err := session.SetUser(c, session.User{ID: user.ID, Username: user.Username}); err != nil {
		redirectWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err), "/login")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout destroys the session. A failed destroy keeps the user on the dashboard.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := session.Destroy(c); err != nil {
		logger.Get().Errorw("failed to destroy session",
			"user_id", c.GetString(middleware.UserIDKey),
			"error", err,
		)
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.Redirect(http.StatusFound, "/login")
}
