package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// corsHeaders は許可オリジンへ常に返すCORSヘッダー。
// Service Aが公開するのはGETのみで、リクエストIDをブラウザから読めるようにする。
var corsHeaders = map[string]string{
	"Access-Control-Allow-Methods":  "GET, OPTIONS",
	"Access-Control-Allow-Headers":  "Content-Type, " + HeaderRequestID,
	"Access-Control-Expose-Headers": HeaderRequestID,
	"Access-Control-Max-Age":        "86400",
}

// CORS はブラウザのフロントエンドが別オリジンから /callServiceB を叩けるようにする。
// allowedOriginsに含まれないOriginにはヘッダーを付けない。プリフライトは204で打ち切る。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := slices.Clone(allowedOrigins)

	return func(c *gin.Context) {
		c.Header("Vary", "Origin")
		if origin := c.GetHeader("Origin"); origin != "" && slices.Contains(origins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			for k, v := range corsHeaders {
				c.Header(k, v)
			}
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
