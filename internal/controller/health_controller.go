package controller

import (
	"elearn_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Check godoc
// @Summary Service health check
// @Description Reports service liveness and database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	status := gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		util.Error(ctx, http.StatusServiceUnavailable, "service degraded")
		return
	}
	status["database"] = "ok"

	util.Success(ctx, status)
}
