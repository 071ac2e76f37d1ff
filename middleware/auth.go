package middleware

import (
	"net/http"
	"strings"

	"guest-checkin/services"
	"guest-checkin/utils"

	"github.com/gin-gonic/gin"
)

// RequireSession rejects requests without a valid staff token. It lets
// everything through when the gate is disabled.
func RequireSession(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || auth.Verify(token) != nil {
			utils.JSONError(c, http.StatusUnauthorized, string(services.KindUnauthorized), services.MsgUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
