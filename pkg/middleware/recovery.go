package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery はハンドラ内のパニックを500に変換する。
// ログにはリクエストIDとスタックを残し、中継途中の応答でも後続のリクエストを止めない。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Printf("[PANIC] request_id=%s %s %s: %v\n%s",
				GetRequestID(c), c.Request.Method, c.Request.URL.Path, r, debug.Stack())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "内部サーバーエラーが発生しました",
			})
		}()
		c.Next()
	}
}
