package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Check reports liveness plus the state of each backing store.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	deps := gin.H{}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		deps["database"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		deps["database"] = "ok"
	}

	if h.rdb == nil {
		deps["redis"] = "disabled"
	} else if err := h.rdb.Ping(ctx).Err(); err != nil {
		deps["redis"] = "down"
	} else {
		deps["redis"] = "ok"
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "deps": deps})
}
