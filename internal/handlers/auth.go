package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/dto"
	apierrors "github.com/westosha-tf/team-portal/internal/errors"
	"github.com/westosha-tf/team-portal/internal/middleware"
	"github.com/westosha-tf/team-portal/internal/services"
	"go.uber.org/zap"
)

const roleLoadFailedMessage = "Could not load your account role."

// AuthHandler coordinates sign-in, sign-out and the post-login redirect.
type AuthHandler struct {
	sessionService *services.SessionService
	roleService    *services.RoleService
	log            *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessionService *services.SessionService, roleService *services.RoleService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		roleService:    roleService,
		log:            log,
	}
}

// LoginPage reports whether a session already exists. Signed-in visitors
// are forwarded to the redirect dispatcher.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.GetUser(c); ok {
		c.Redirect(http.StatusFound, constants.PathRedirect)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// Login authenticates a user, initializes the session and hands off to
// the redirect dispatcher.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" form:"email" binding:"required,email"`
		Password string `json:"password" form:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.sessionService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusSeeOther, constants.PathRedirect)
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.Redirect(http.StatusSeeOther, constants.PathLogin)
}

// Redirect resolves the role once and forwards to the matching landing
// page. A failed lookup is a terminal state with a static message.
func (h *AuthHandler) Redirect(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	role, ok := h.roleService.ResolveRole(c.Request.Context(), user.ID)
	if !ok {
		h.log.Info("role lookup failed after login", zap.String("user_id", user.ID))
		c.JSON(http.StatusOK, dto.RedirectFailure{Message: roleLoadFailedMessage})
		return
	}

	c.Redirect(http.StatusFound, services.LandingPath(role))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "Invalid login credentials")
	default:
		apierrors.InternalError(c, err.Error())
	}
}
