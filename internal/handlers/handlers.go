package handlers

import (
	"log"
	"net/http"

	"tendertrack/internal/config"

	"github.com/gin-gonic/gin"
)

var cfg *config.Config

// Init stores the server configuration for handlers that need it (dispatch
// and scheduling). Call once before registering routes.
func Init(c *config.Config) {
	cfg = c
}

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// HomeHandler handles requests to the root path "/"
func HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to TenderTrack!")
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
