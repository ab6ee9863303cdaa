package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/services"
	"go.uber.org/zap"
)

// LoadSession resolves the session cookie to a user on every request. The
// user row is re-read each time; a vanished user clears the session and an
// existing one has its cookie lifetime refreshed.
func LoadSession(sessionService *services.SessionService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, _ := session.Get(constants.ContextKeyUserID).(string)
		if userID == "" {
			c.Next()
			return
		}

		user := sessionService.CurrentUser(c.Request.Context(), userID)
		if user == nil {
			session.Clear()
		} else {
			c.Set(constants.ContextKeyUserID, user.ID)
			c.Set(constants.ContextKeyUser, user)
		}
		if err := session.Save(); err != nil {
			log.Warn("failed to save session", zap.Error(err))
		}

		c.Next()
	}
}

// GetUser retrieves the signed-in user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// GetUserID retrieves the signed-in user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

// GetRole retrieves the role RequireRole authorized the request with
func GetRole(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok
}
