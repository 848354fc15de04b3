package render

import (
	"bytes"
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/jpeg"
	"image/png"
	"log/slog"

	xdraw "golang.org/x/image/draw"
)

const (
	logoHeight = 64
	logoMargin = 25
)

// applyWatermark composites the configured logo onto the rendered chart.
// The watermark is decorative best effort with its own narrow failure
// boundary: any error here logs a warning and returns the chart
// unchanged, never a failure to the caller.
func (cr *ChartRenderer) applyWatermark(chartPNG []byte) []byte {
	logo, err := cr.fetchLogo()
	if err != nil {
		slog.Warn("skipping watermark", "url", cr.logoURL, "error", err)
		return chartPNG
	}

	base, err := png.Decode(bytes.NewReader(chartPNG))
	if err != nil {
		slog.Warn("skipping watermark: chart decode failed", "error", err)
		return chartPNG
	}

	lb := logo.Bounds()
	if lb.Dy() == 0 {
		return chartPNG
	}

	dst := image.NewRGBA(base.Bounds())
	stddraw.Draw(dst, dst.Bounds(), base, image.Point{}, stddraw.Src)

	w := lb.Dx() * logoHeight / lb.Dy()
	target := image.Rect(logoMargin, logoMargin, logoMargin+w, logoMargin+logoHeight)
	xdraw.ApproxBiLinear.Scale(dst, target, logo, lb, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		slog.Warn("skipping watermark: re-encode failed", "error", err)
		return chartPNG
	}
	return buf.Bytes()
}

func (cr *ChartRenderer) fetchLogo() (image.Image, error) {
	res, err := cr.client.Get(cr.logoURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close logo response body", "error", err)
		}
	}()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("logo http %d", res.StatusCode)
	}
	img, _, err := image.Decode(res.Body)
	return img, err
}
