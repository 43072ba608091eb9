// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/provenance-backend/internal/utils"
)

// AuthRequired admits requests whose Authorization header carries a valid
// token after the scheme and exposes the caller id under utils.ContextKeyUserID.
// A missing token is 401; a token that fails verification is 403.
func AuthRequired(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		// The second space-separated segment is the token, whatever the scheme.
		parts := strings.Split(authHeader, " ")
		if len(parts) < 2 || parts[1] == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateJWT(parts[1])
		if err != nil {
			logrus.WithError(err).WithField("ip", c.ClientIP()).Debug("Rejected bearer token")
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}

		c.Set(utils.ContextKeyUserID, claims.Identity())
		c.Next()
	}
}
