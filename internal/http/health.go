package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController reports process liveness and database reachability.
type HealthController struct {
	db      *gorm.DB
	version string
}

// NewHealthController creates the health controller. db may be nil
// when the in-memory backend is active.
func NewHealthController(db *gorm.DB, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Health returns 200 when the service can reach its storage.
// GET /health
func (hc *HealthController) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if hc.db != nil {
		sqlDB, err := hc.db.DB()
		if err != nil || sqlDB.Ping() != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":  status,
		"version": hc.version,
	})
}
