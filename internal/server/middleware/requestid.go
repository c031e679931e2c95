package middleware

import (
	"github.com/gin-gonic/gin"

	"taleweaver/internal/pkg/ctxutil"
	"taleweaver/internal/pkg/id"
)

// HeaderRequestID 请求ID头
const HeaderRequestID = "X-Request-ID"

// RequestID 为每个请求分配 request_id，写入 gin 上下文、请求 context 和响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.FromHeader(c.GetHeader(HeaderRequestID))

		c.Set("request_id", requestID)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
