// Package di provides dependency injection factories for creating
// application components.
package di

import (
	"os"
	"strconv"
	"time"

	charthandler "signalchart/internal/feature/chart/transport/handler"
	"signalchart/internal/feature/chart/usecase"
	"signalchart/internal/platform/cache"
	"signalchart/internal/platform/externalapi/twelvedata"
	infrahttp "signalchart/internal/platform/http"
	"signalchart/internal/platform/render"
	"signalchart/internal/shared/ratelimiter"
)

// NewChartHandler wires the quote fetcher, series cache, renderer and
// usecase into a ready-to-mount chart handler.
func NewChartHandler(store cache.SeriesCache) *charthandler.ChartHandler {
	cfg := twelvedata.LoadConfig()
	client := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(providerRateLimit(), time.Minute)
	market := twelvedata.NewTwelveDataMarket(cfg, client, limiter)
	cached := cache.NewCachingMarketRepository(store, market, "series")

	renderer := render.NewChartRenderer(os.Getenv("LOGO_URL"), infrahttp.NewHTTPClient(10*time.Second))

	uc := usecase.NewChartUsecase(cached, renderer)

	return charthandler.NewChartHandler(uc, charthandler.Defaults{
		Symbol:   os.Getenv("CHART_DEFAULT_SYMBOL"),
		Interval: os.Getenv("CHART_DEFAULT_INTERVAL"),
		Timezone: os.Getenv("CHART_DEFAULT_TIMEZONE"),
	})
}

// providerRateLimit reads the per-minute provider call budget,
// defaulting to the Twelve Data free tier of 8.
func providerRateLimit() int {
	if v, err := strconv.Atoi(os.Getenv("PROVIDER_RATE_LIMIT")); err == nil && v > 0 {
		return v
	}
	return 8
}
