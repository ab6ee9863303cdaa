package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/services"
)

// RequireRole gates a route group on the caller's profile role. Visitors
// without a session or resolvable role go to /login; a signed-in user with
// the other role is sent to their own landing page instead.
func RequireRole(roleService *services.RoleService, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := GetUser(c)
		decision := roleService.Authorize(c.Request.Context(), user, required)

		switch decision.Outcome {
		case services.Authorized:
			c.Set(constants.ContextKeyRole, decision.Role)
			c.Next()
		case services.WrongRole:
			c.Redirect(http.StatusFound, services.LandingPath(decision.Role))
			c.Abort()
		default:
			c.Redirect(http.StatusFound, constants.PathLogin)
			c.Abort()
		}
	}
}
