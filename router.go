package main

import (
	"net/http"

	"emoplaylist/metadata"
	"emoplaylist/murecom"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	appName    = "Emotion Playlist API"
	appVersion = "1.0.0"
)

// MakeRouter builds the HTTP API. The catalog CRUDs under /api/songs are
// mounted only when withCatalog is set; metadata.Connect must have been called.
func MakeRouter(conf *EmoplaylistConfig, m *murecom.Murecom, withCatalog bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins: conf.Cors.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    appName,
			"version": appVersion,
			"status":  "running",
			"endpoints": gin.H{
				"classify": "/api/classify",
				"playlist": "/api/playlist",
				"health":   "/api/health",
			},
		})
	})

	api := r.Group("/api")
	m.RegisterRoutes(api)

	if withCatalog {
		metadata.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})

	return r
}
