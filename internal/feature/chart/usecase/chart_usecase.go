// Package usecase implements the business logic for chart rendering:
// request normalization, the overlay calculator and the fetch-then-draw
// orchestration.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"signalchart/internal/feature/chart/domain"
	"signalchart/internal/feature/chart/domain/entity"
)

const (
	// DefaultInterval is the bar duration used when none is requested.
	DefaultInterval = "1h"
	// DefaultBars is the default number of bars fetched per chart.
	DefaultBars = 300
	// MinBars is the smallest bar count the provider supports.
	MinBars = 50
	// MaxBars is the largest bar count the provider supports.
	MaxBars = 5000
	// DefaultTimezone is used when the caller does not request a zone.
	DefaultTimezone = "UTC"
	// DefaultTheme is the chart theme used when none is requested.
	DefaultTheme = "dark"
)

// supportedIntervals is the provider's bar-duration vocabulary.
var supportedIntervals = map[string]struct{}{
	"1min": {}, "5min": {}, "15min": {}, "30min": {}, "45min": {},
	"1h": {}, "2h": {}, "4h": {}, "8h": {},
	"1day": {}, "1week": {}, "1month": {},
}

// MarketRepository abstracts the quote data layer. Following Go
// convention the interface is defined on the consumer (usecase) side.
type MarketRepository interface {
	// GetTimeSeries returns bars sorted strictly ascending by timestamp.
	GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error)
}

// ChartSpec is everything the renderer needs to produce an image.
type ChartSpec struct {
	Title          string
	Interval       string
	Theme          string
	Bars           []entity.Bar
	Overlay        entity.OverlayGeometry
	MovingAverages []MovingAverage
}

// ChartRenderer turns a ChartSpec into encoded PNG bytes.
type ChartRenderer interface {
	Render(spec ChartSpec) ([]byte, error)
}

// ChartRequest carries the normalized-or-defaultable parameters of one
// inbound chart request. Signal is nil when the caller asked for plain
// candles without a trade overlay.
type ChartRequest struct {
	Symbol    string
	Interval  string
	Timezone  string
	Theme     string
	Title     string
	Bars      int
	Signal    *entity.Signal
	MAWindows []int
}

type chartUsecase struct {
	market   MarketRepository
	renderer ChartRenderer
}

// NewChartUsecase creates a new chartUsecase instance.
func NewChartUsecase(market MarketRepository, renderer ChartRenderer) *chartUsecase {
	return &chartUsecase{market: market, renderer: renderer}
}

// RenderChart validates and defaults the request, fetches the series,
// computes the overlay geometry and hands everything to the renderer.
func (cu *chartUsecase) RenderChart(ctx context.Context, req ChartRequest) ([]byte, error) {
	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", domain.ErrInvalidParameter)
	}

	interval := req.Interval
	if interval == "" {
		interval = DefaultInterval
	}
	if _, ok := supportedIntervals[interval]; !ok {
		return nil, fmt.Errorf("%w: unsupported interval %q", domain.ErrInvalidParameter, interval)
	}

	theme := req.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	if theme != "dark" && theme != "light" {
		return nil, fmt.Errorf("%w: theme must be dark or light", domain.ErrInvalidParameter)
	}

	for _, w := range req.MAWindows {
		if w <= 0 {
			return nil, fmt.Errorf("%w: moving-average window must be positive", domain.ErrInvalidParameter)
		}
	}

	bars := req.Bars
	if bars <= 0 {
		bars = DefaultBars
	}
	if bars < MinBars {
		bars = MinBars
	}
	if bars > MaxBars {
		bars = MaxBars
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = DefaultTimezone
	}

	series, err := cu.market.GetTimeSeries(ctx, symbol, interval, bars, timezone)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNoData, symbol, interval)
	}

	overlay := ComputeOverlay(req.Signal, series[len(series)-1].Close)
	mas := movingAverages(series, req.MAWindows)

	title := req.Title
	if title == "" {
		title = symbol + "  |  " + interval
		if req.Signal != nil {
			title += "  |  " + string(req.Signal.Direction)
		}
	}

	return cu.renderer.Render(ChartSpec{
		Title:          title,
		Interval:       interval,
		Theme:          theme,
		Bars:           series,
		Overlay:        overlay,
		MovingAverages: mas,
	})
}
