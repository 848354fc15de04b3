// Package render draws candlestick charts with signal overlays as PNG
// images, using the go-chart raster primitives directly since no chart
// type in the library covers candles plus free-floating annotations.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"signalchart/internal/feature/chart/domain/entity"
	"signalchart/internal/feature/chart/usecase"
)

const (
	chartWidth    = 1200
	chartHeight   = 700
	gridDivisions = 5
)

// ChartRenderer renders a ChartSpec to PNG bytes.
type ChartRenderer struct {
	width   int
	height  int
	logoURL string
	client  *http.Client
}

var _ usecase.ChartRenderer = (*ChartRenderer)(nil)

// NewChartRenderer creates a ChartRenderer. logoURL may be empty to
// disable the watermark; client is only used for fetching the logo.
func NewChartRenderer(logoURL string, client *http.Client) *ChartRenderer {
	return &ChartRenderer{width: chartWidth, height: chartHeight, logoURL: logoURL, client: client}
}

// Render draws the candles, zones, moving averages and level lines and
// returns the encoded image.
func (cr *ChartRenderer) Render(spec usecase.ChartSpec) ([]byte, error) {
	if len(spec.Bars) == 0 {
		return nil, errors.New("render: empty series")
	}

	pal := PaletteFor(spec.Theme)

	r, err := chart.PNG(cr.width, cr.height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetDPI(chart.DefaultDPI)
	r.SetFont(font)

	plot := chart.Box{Top: 60, Left: 80, Right: cr.width - 120, Bottom: cr.height - 50}
	fillRect(r, 0, 0, cr.width, cr.height, pal.Background)

	lo, hi := priceRange(spec.Bars)
	yPx := func(price float64) int {
		return plot.Bottom - int(float64(plot.Bottom-plot.Top)*(price-lo)/(hi-lo))
	}
	n := len(spec.Bars)
	step := float64(plot.Right-plot.Left) / float64(n)
	xPx := func(i int) int {
		return plot.Left + int((float64(i)+0.5)*step)
	}

	cr.drawGrid(r, plot, pal, lo, hi, yPx)
	cr.drawZones(r, plot, pal, spec.Overlay.Zones, lo, hi, yPx)
	cr.drawCandles(r, pal, spec.Bars, step, xPx, yPx)
	cr.drawMovingAverages(r, pal, spec.MovingAverages, xPx, yPx)
	cr.drawLevels(r, plot, pal, spec.Overlay.Levels, lo, hi, yPx)
	cr.drawTimeAxis(r, plot, pal, spec, xPx)

	// Title carries the last bar timestamp, always printed as UTC.
	last := spec.Bars[n-1]
	r.SetFontColor(pal.Title)
	r.SetFontSize(16)
	r.Text(fmt.Sprintf("%s  •  %s", spec.Title, last.Time.UTC().Format("2006-01-02 15:04 UTC")), plot.Left, 36)

	strokeRect(r, plot, pal.Axis)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	if cr.logoURL == "" {
		return buf.Bytes(), nil
	}
	return cr.applyWatermark(buf.Bytes()), nil
}

func (cr *ChartRenderer) drawGrid(r chart.Renderer, plot chart.Box, pal Palette, lo, hi float64, yPx func(float64) int) {
	r.SetFontColor(pal.AxisText)
	r.SetFontSize(11)
	for i := 0; i <= gridDivisions; i++ {
		price := lo + (hi-lo)*float64(i)/gridDivisions
		y := yPx(price)
		strokeLine(r, plot.Left, y, plot.Right, y, pal.Grid, 1.0, []float64{4, 4})
		label := fmt.Sprintf("%.2f", price)
		box := r.MeasureText(label)
		r.Text(label, plot.Left-10-box.Width(), y+5)
	}
}

func (cr *ChartRenderer) drawZones(r chart.Renderer, plot chart.Box, pal Palette, zones []entity.Zone, lo, hi float64, yPx func(float64) int) {
	for _, z := range zones {
		zlo := math.Max(z.Low, lo)
		zhi := math.Min(z.High, hi)
		if zlo >= zhi {
			continue
		}
		fillRect(r, plot.Left, yPx(zhi), plot.Right, yPx(zlo), pal.Role(z.Role))
	}
}

func (cr *ChartRenderer) drawCandles(r chart.Renderer, pal Palette, bars []entity.Bar, step float64, xPx func(int) int, yPx func(float64) int) {
	halfBody := int(step * 0.3)
	if halfBody < 1 {
		halfBody = 1
	}
	for i, b := range bars {
		x := xPx(i)
		col := pal.CandleDown
		if b.Close >= b.Open {
			col = pal.CandleUp
		}
		strokeLine(r, x, yPx(b.High), x, yPx(b.Low), pal.Wick, 0.8, nil)
		top := yPx(math.Max(b.Open, b.Close))
		bottom := yPx(math.Min(b.Open, b.Close))
		if bottom <= top {
			// Doji: open == close renders as a one-pixel body.
			bottom = top + 1
		}
		fillRect(r, x-halfBody, top, x+halfBody, bottom, col)
	}
}

func (cr *ChartRenderer) drawMovingAverages(r chart.Renderer, pal Palette, mas []usecase.MovingAverage, xPx func(int) int, yPx func(float64) int) {
	for k, ma := range mas {
		r.SetStrokeColor(pal.MA(k))
		r.SetStrokeWidth(1.5)
		r.SetStrokeDashArray(nil)
		started := false
		for i, v := range ma.Values {
			if math.IsNaN(v) {
				continue
			}
			if !started {
				r.MoveTo(xPx(i), yPx(v))
				started = true
			} else {
				r.LineTo(xPx(i), yPx(v))
			}
		}
		if started {
			r.Stroke()
		}
	}
}

func (cr *ChartRenderer) drawLevels(r chart.Renderer, plot chart.Box, pal Palette, levels []entity.Level, lo, hi float64, yPx func(float64) int) {
	r.SetFontSize(11)
	for _, lv := range levels {
		// Levels outside the data range would land off-plot; skip them
		// the same way an autoscaled axis clips them out of view.
		if lv.Price < lo || lv.Price > hi {
			continue
		}
		y := yPx(lv.Price)
		dash := []float64{6, 4}
		width := 1.4
		if lv.Role == entity.RoleLast {
			dash = nil
			width = 1.6
		}
		col := pal.Role(lv.Role)
		strokeLine(r, plot.Left, y, plot.Right, y, col, width, dash)
		r.SetFontColor(col)
		r.Text(" "+lv.Label, plot.Right+4, y+4)
	}
}

func (cr *ChartRenderer) drawTimeAxis(r chart.Renderer, plot chart.Box, pal Palette, spec usecase.ChartSpec, xPx func(int) int) {
	n := len(spec.Bars)
	ticks := 6
	if n < ticks {
		ticks = n
	}
	stride := n / ticks
	if stride < 1 {
		stride = 1
	}
	layout := xLabelLayout(spec.Interval)
	r.SetFontColor(pal.AxisText)
	r.SetFontSize(11)
	for i := 0; i < n; i += stride {
		label := spec.Bars[i].Time.Format(layout)
		box := r.MeasureText(label)
		r.Text(label, xPx(i)-box.Width()/2, plot.Bottom+22)
	}
}

// xLabelLayout picks the time format for x-axis labels per interval,
// dates for daily and coarser bars, day plus clock time for intraday.
func xLabelLayout(interval string) string {
	switch interval {
	case "1day", "1week", "1month":
		return "2006-01-02"
	default:
		return "Jan 02 15:04"
	}
}

// priceRange returns the padded vertical extent of the series.
func priceRange(bars []entity.Bar) (lo, hi float64) {
	lo, hi = bars[0].Low, bars[0].High
	for _, b := range bars[1:] {
		lo = math.Min(lo, b.Low)
		hi = math.Max(hi, b.High)
	}
	pad := (hi - lo) * 0.05
	if pad < math.Abs(hi)*0.002 {
		pad = math.Abs(hi) * 0.002
	}
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

func fillRect(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color) {
	r.SetFillColor(c)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}

func strokeLine(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color, width float64, dash []float64) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(width)
	r.SetStrokeDashArray(dash)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
	r.SetStrokeDashArray(nil)
}

func strokeRect(r chart.Renderer, b chart.Box, c drawing.Color) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(1.0)
	r.SetStrokeDashArray(nil)
	r.MoveTo(b.Left, b.Top)
	r.LineTo(b.Right, b.Top)
	r.LineTo(b.Right, b.Bottom)
	r.LineTo(b.Left, b.Bottom)
	r.Close()
	r.Stroke()
}
