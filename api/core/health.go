package core

import (
	"net/http"
	"time"

	"github.com/artfolio/gallery-backend/config"
	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	deps *ServerDependencies
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(deps *ServerDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Handle 汇总数据库、缓存与存储的健康状态
func (h *HealthHandler) Handle(c *gin.Context) {
	checks := gin.H{
		"database": h.checkDatabase(c),
		"cache":    h.checkCache(),
		"storage":  h.checkStorage(c),
	}

	httpStatus := http.StatusOK
	for _, result := range checks {
		if result != "ok" {
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":  statusWord(httpStatus),
		"uptime":  time.Since(startTime).Round(time.Second).String(),
		"version": config.Version,
		"checks":  checks,
	})
}

func (h *HealthHandler) checkDatabase(c *gin.Context) string {
	if h.deps.Provider == nil {
		return "not configured"
	}
	if err := h.deps.Provider.Ping(); err != nil {
		return err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkCache() string {
	if h.deps.CacheProvider == nil {
		return "not configured"
	}
	return "ok"
}

func (h *HealthHandler) checkStorage(c *gin.Context) string {
	if h.deps.StorageFactory == nil {
		return "not configured"
	}
	if err := h.deps.StorageFactory.GetDefault().Health(c.Request.Context()); err != nil {
		return err.Error()
	}
	return "ok"
}

func statusWord(httpStatus int) string {
	if httpStatus == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
