package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlePanics turns a panic that escapes a handler into a plain-text 500
// so one broken request never takes the server down. Writing the body
// already commits the status; abort without a second WriteHeader.
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		if err, ok := recovered.(error); ok {
			c.String(http.StatusInternalServerError, err.Error())
			c.Abort()
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
