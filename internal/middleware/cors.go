package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS reflects the request origin when it is in the configured allowlist.
// origins is the comma-separated CORS_ORIGINS value; "*" allows any origin
// (development only). Requests from unlisted origins get no CORS headers,
// the browser blocks them.
func CORS(origins string) gin.HandlerFunc {
	permitidos := make(map[string]bool)
	comodin := false
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(strings.TrimSuffix(o, "/"))
		if o == "*" {
			comodin = true
		} else if o != "" {
			permitidos[o] = true
		}
	}

	return func(c *gin.Context) {
		origen := c.GetHeader("Origin")
		if comodin {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if permitidos[origen] {
			c.Header("Access-Control-Allow-Origin", origen)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
