package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const serviceName = "project-config-service"

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a health handler. redis may be nil when the snapshot cache is disabled.
func NewHealthHandler(db *gorm.DB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if h.db == nil {
		h.notReady(c, "database not connected")
		return
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		h.notReady(c, "database error")
		return
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		h.notReady(c, "database not reachable")
		return
	}

	// redis only backs the snapshot cache, so an outage degrades rather than blocks
	cache := "disabled"
	if h.redis != nil {
		cache = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			cache = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": serviceName,
		"cache":   cache,
	})
}

func (h *HealthHandler) notReady(c *gin.Context, reason string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":  "not ready",
		"service": serviceName,
		"error":   reason,
	})
}
