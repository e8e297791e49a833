package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-service/pkg/logger"
	"blog-service/pkg/reqctx"
)

// RequestContextMiddleware 为每个请求分配请求 ID，并写入 context 与响应头。
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(reqctx.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(reqctx.WithRequestID(c.Request.Context(), id))
		c.Header(reqctx.HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogMiddleware 记录每个请求的访问日志。
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithContext(c.Request.Context()).WithFields(map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("http request")
		case status >= 400:
			entry.Warn("http request")
		default:
			entry.Info("http request")
		}
	}
}
