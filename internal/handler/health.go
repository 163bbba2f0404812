package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/readstore"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks write-store and read-store connectivity; never exposes credentials.
func Health(db *gorm.DB, store readstore.ReadStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		writeStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			writeStatus = "error"
		}

		readStatus := "connected"
		if store.Ping(ctx) != nil {
			readStatus = "error"
		}

		status := http.StatusOK
		if writeStatus != "connected" || readStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":          status == http.StatusOK,
			"service":     "inventory-service",
			"write_store": writeStatus,
			"read_store":  readStatus,
		})
	}
}
