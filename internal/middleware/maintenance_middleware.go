package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lintangpradipa/catatankita/internal/app/models/dto"
)

// MaintenanceSecretHeader carries the shared secret of the maintenance
// entry point.
const MaintenanceSecretHeader = "X-Maintenance-Secret"

// MaintenanceAuth guards the sweep endpoint with an out-of-band shared
// secret. The comparison is constant-time.
func MaintenanceAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(MaintenanceSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Invalid maintenance secret")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}
