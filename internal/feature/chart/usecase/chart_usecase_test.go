package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"signalchart/internal/feature/chart/domain"
	"signalchart/internal/feature/chart/domain/entity"
)

// mockMarketRepository is a test implementation of MarketRepository.
type mockMarketRepository struct {
	getFn func(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error)
}

func (m *mockMarketRepository) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error) {
	return m.getFn(ctx, symbol, interval, outputsize, timezone)
}

// mockRenderer captures the spec it was asked to draw.
type mockRenderer struct {
	spec ChartSpec
	out  []byte
	err  error
}

func (m *mockRenderer) Render(spec ChartSpec) ([]byte, error) {
	m.spec = spec
	return m.out, m.err
}

func testSeries(n int) []entity.Bar {
	bars := make([]entity.Bar, n)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price := 100 + float64(i)
		bars[i] = entity.Bar{
			Time: base.Add(time.Duration(i) * time.Hour),
			Open: price, High: price + 1, Low: price - 1, Close: price + 0.5,
		}
	}
	return bars
}

func TestRenderChart_Success(t *testing.T) {
	t.Parallel()

	series := testSeries(3)
	market := &mockMarketRepository{
		getFn: func(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error) {
			assert.Equal(t, "XAU/USD", symbol)
			assert.Equal(t, "1h", interval)
			assert.Equal(t, DefaultBars, outputsize)
			assert.Equal(t, "UTC", timezone)
			return series, nil
		},
	}
	renderer := &mockRenderer{out: []byte("png")}
	uc := NewChartUsecase(market, renderer)

	sig := &entity.Signal{Direction: entity.Long, Entry: 100, StopLoss: 95}
	out, err := uc.RenderChart(context.Background(), ChartRequest{Symbol: "XAU/USD", Signal: sig})

	assert.NoError(t, err)
	assert.Equal(t, []byte("png"), out)
	assert.Equal(t, "XAU/USD  |  1h  |  LONG", renderer.spec.Title)
	assert.Equal(t, "dark", renderer.spec.Theme)
	assert.Equal(t, series, renderer.spec.Bars)

	// Last-price level comes from the most recent close.
	lastLevel := renderer.spec.Overlay.Levels[len(renderer.spec.Overlay.Levels)-1]
	assert.Equal(t, entity.RoleLast, lastLevel.Role)
	assert.Equal(t, series[len(series)-1].Close, lastLevel.Price)
}

func TestRenderChart_BarCountClamped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested int
		expected  int
	}{
		{"zero uses default", 0, DefaultBars},
		{"below minimum clamps up", 7, MinBars},
		{"above maximum clamps down", 999999, MaxBars},
		{"in range passes through", 120, 120},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got int
			market := &mockMarketRepository{
				getFn: func(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error) {
					got = outputsize
					return testSeries(2), nil
				},
			}
			uc := NewChartUsecase(market, &mockRenderer{})

			_, err := uc.RenderChart(context.Background(), ChartRequest{Symbol: "AAPL", Bars: tt.requested})
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderChart_InvalidParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  ChartRequest
	}{
		{"empty symbol", ChartRequest{}},
		{"blank symbol", ChartRequest{Symbol: "   "}},
		{"unsupported interval", ChartRequest{Symbol: "AAPL", Interval: "7min"}},
		{"unknown theme", ChartRequest{Symbol: "AAPL", Theme: "sepia"}},
		{"non-positive ma window", ChartRequest{Symbol: "AAPL", MAWindows: []int{20, 0}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			market := &mockMarketRepository{
				getFn: func(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error) {
					t.Error("market must not be called for invalid parameters")
					return nil, nil
				},
			}
			uc := NewChartUsecase(market, &mockRenderer{})

			_, err := uc.RenderChart(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidParameter)
		})
	}
}

func TestRenderChart_MarketErrorPropagates(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("provider down")
	market := &mockMarketRepository{
		getFn: func(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error) {
			return nil, expectedErr
		},
	}
	uc := NewChartUsecase(market, &mockRenderer{})

	_, err := uc.RenderChart(context.Background(), ChartRequest{Symbol: "AAPL"})
	assert.ErrorIs(t, err, expectedErr)
}

func TestRenderChart_MovingAveragesForwarded(t *testing.T) {
	t.Parallel()

	market := &mockMarketRepository{
		getFn: func(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error) {
			return testSeries(10), nil
		},
	}
	renderer := &mockRenderer{}
	uc := NewChartUsecase(market, renderer)

	// Window 50 exceeds the series length and is skipped.
	_, err := uc.RenderChart(context.Background(), ChartRequest{Symbol: "AAPL", MAWindows: []int{3, 50}})

	assert.NoError(t, err)
	assert.Len(t, renderer.spec.MovingAverages, 1)
	assert.Equal(t, 3, renderer.spec.MovingAverages[0].Window)
}

func TestRenderChart_TitleOverride(t *testing.T) {
	t.Parallel()

	market := &mockMarketRepository{
		getFn: func(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error) {
			return testSeries(2), nil
		},
	}
	renderer := &mockRenderer{}
	uc := NewChartUsecase(market, renderer)

	_, err := uc.RenderChart(context.Background(), ChartRequest{Symbol: "AAPL", Title: "My Gold Setup"})

	assert.NoError(t, err)
	assert.Equal(t, "My Gold Setup", renderer.spec.Title)
}
