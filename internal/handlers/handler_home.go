package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary API root
// @Description Returns a short identification message.
// @Tags home
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Biblioteca Multimedia API"})
}

// getPing godoc
// @Summary Ping
// @Tags home
// @Produce plain
// @Success 200 {string} string "pong"
// @Router /ping [get]
func getPing(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// getHealth godoc
// @Summary Health check
// @Description Liveness probe for deployment platforms.
// @Tags home
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
