// Package router registers the HTTP routes of the service.
package router

import (
	"github.com/gin-gonic/gin"

	charthandler "signalchart/internal/feature/chart/transport/handler"
	"signalchart/internal/platform/http/handler"
)

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(chart *charthandler.ChartHandler) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)
	// Candlestick chart with optional signal overlay
	r.GET("/chart", chart.GetChartHandler)

	return r
}
