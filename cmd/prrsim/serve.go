package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/go-foundations/prrsched/metrics"
	"github.com/go-foundations/prrsched/scheduler"
	"github.com/go-foundations/prrsched/telemetry"
)

// stateFunc returns the live ready/done sets of the scheduler driving
// the current run, for the /state endpoint.
type stateFunc func() (ready, done []*scheduler.Node)

// startDebugServer mounts /metrics (the run's Prometheus registry) and
// /state (a go-spew text dump of the live ready/done sets) on addr.
// The server is started in a background goroutine and this function
// returns immediately, without waiting for the listener; a listen error
// is not reported to the caller. Gin router and
// CORS middleware grounded on KhryptorGraphics-OllamaMax's
// pkg/api/middleware.go corsMiddleware.
func startDebugServer(addr string, reg *metrics.Registry, state stateFunc) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(reg.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/state", func(c *gin.Context) {
		ready, done := state()
		c.String(http.StatusOK, telemetry.DumpState(ready, done))
	})

	go router.Run(addr)
}
