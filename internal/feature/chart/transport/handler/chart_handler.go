// Package handler provides the HTTP handler for the chart feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"signalchart/internal/feature/chart/domain"
	"signalchart/internal/feature/chart/domain/entity"
	"signalchart/internal/feature/chart/transport/http/dto"
	"signalchart/internal/feature/chart/usecase"
)

// ChartUsecase is the usecase interface for chart rendering. Following
// Go convention the interface is defined on the consumer (handler) side.
type ChartUsecase interface {
	RenderChart(ctx context.Context, req usecase.ChartRequest) ([]byte, error)
}

// Defaults are the environment-configured fallbacks applied when the
// caller omits a parameter entirely.
type Defaults struct {
	Symbol   string
	Interval string
	Timezone string
}

// ChartHandler handles chart-image HTTP requests.
type ChartHandler struct {
	uc       ChartUsecase
	defaults Defaults
}

// NewChartHandler creates a new ChartHandler instance.
func NewChartHandler(uc ChartUsecase, defaults Defaults) *ChartHandler {
	return &ChartHandler{uc: uc, defaults: defaults}
}

// GetChartHandler renders a candlestick chart PNG for the requested
// symbol, optionally overlaid with a trade signal.
//
// Example:
// GET /chart?symbol=XAU/USD&interval=1h&direction=LONG&entry=2375&sl=2362&tp1=2390&theme=dark
func (h *ChartHandler) GetChartHandler(c *gin.Context) {
	symbol := c.DefaultQuery("symbol", h.defaults.Symbol)
	if strings.TrimSpace(symbol) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol is required"})
		return
	}

	bars, err := queryInt(c, "bars")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	signal, err := parseSignal(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	maWindows, err := parseWindows(c.Query("ma"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	req := usecase.ChartRequest{
		Symbol:    symbol,
		Interval:  c.DefaultQuery("interval", h.defaults.Interval),
		Timezone:  c.DefaultQuery("timezone", h.defaults.Timezone),
		Theme:     c.Query("theme"),
		Title:     c.Query("title"),
		Bars:      bars,
		Signal:    signal,
		MAWindows: maWindows,
	}

	png, err := h.uc.RenderChart(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFromError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// parseSignal assembles the trade signal from query parameters. The
// signal is optional as a whole: all of direction/entry/sl absent means
// plain candles; a partial set is a caller error.
func parseSignal(c *gin.Context) (*entity.Signal, error) {
	dirStr := c.Query("direction")
	entryStr := c.Query("entry")
	slStr := c.Query("sl")

	if dirStr == "" && entryStr == "" && slStr == "" {
		return nil, nil
	}
	if dirStr == "" || entryStr == "" || slStr == "" {
		return nil, errors.New("direction, entry and sl are required together")
	}

	dir, err := entity.ParseDirection(dirStr)
	if err != nil {
		return nil, err
	}
	entry, err := strconv.ParseFloat(entryStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid entry %q", entryStr)
	}
	sl, err := strconv.ParseFloat(slStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sl %q", slStr)
	}

	sig := &entity.Signal{Direction: dir, Entry: entry, StopLoss: sl}
	for i, key := range []string{"tp1", "tp2", "tp3"} {
		v := c.Query(key)
		if v == "" {
			continue
		}
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", key, v)
		}
		sig.Targets = append(sig.Targets, entity.Target{Seq: i + 1, Price: price})
	}
	return sig, nil
}

// parseWindows parses the comma-separated moving-average window list.
func parseWindows(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	windows := make([]int, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid ma window list %q", s)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// queryInt parses an optional integer query parameter; absent means 0,
// which the usecase replaces with its default.
func queryInt(c *gin.Context, key string) (int, error) {
	s := c.Query(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}

// statusFromError maps the domain error taxonomy to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProviderConfig):
		return http.StatusInternalServerError
	default:
		// ErrProviderResponse and anything unexpected from the fetch
		// path count as an upstream failure.
		return http.StatusBadGateway
	}
}
