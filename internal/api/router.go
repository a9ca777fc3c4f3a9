// Package api serves the to-do list over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouteEnricher registers a handler's routes on the engine.
type RouteEnricher interface {
	EnrichRoutes(router *gin.Engine)
}

// NewRouter builds the gin engine with recovery, CORS, request logging and
// a health check, then lets each handler add its routes.
func NewRouter(log *logrus.Entry, handlers ...RouteEnricher) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), cors.Default(), requestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for _, h := range handlers {
		h.EnrichRoutes(router)
	}
	return router
}

func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("request handled")
	}
}
