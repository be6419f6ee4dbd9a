package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CauaGLS/Projeto-de-TCC/db"
	"github.com/CauaGLS/Projeto-de-TCC/internal/cache"
)

func HealthCheck(ctx *gin.Context) {
	sqlDB, err := db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "down"})
		return
	}

	resp := gin.H{"status": "ok", "database": "up"}
	if cache.Enabled() {
		resp["cache"] = "up"
		if err := cache.Client.Ping(ctx.Request.Context()).Err(); err != nil {
			resp["cache"] = "down"
		}
	}

	ctx.JSON(http.StatusOK, resp)
}
