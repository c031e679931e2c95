package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httputil "taleweaver/internal/pkg/http"
)

// readyTimeout 单次就绪检查的超时
const readyTimeout = 2 * time.Second

// ReadyCheck 依赖的就绪检查（数据库、Redis 等）
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	checks []ReadyCheck
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(checks ...ReadyCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查，任一依赖不可用时返回 503
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	for _, rc := range h.checks {
		if err := rc.Check(ctx); err != nil {
			log.Warn().Err(err).Str("dependency", rc.Name).Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable,
				httputil.NewErrorResponse(httputil.CodeUnavailable, "Service unavailable", rc.Name+": "+err.Error()))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
