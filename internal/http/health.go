package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	db      *gorm.DB
	version string
}

func NewHealthController(db *gorm.DB, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status reports process and database health.
// GET /health
func (controller *HealthController) Status(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := controller.db.DB()
	if err != nil {
		status = "degraded"
		dbStatus = "unavailable"
	} else if err := sqlDB.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"version":  controller.version,
	})
}
