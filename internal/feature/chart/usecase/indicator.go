package usecase

import (
	"math"

	"signalchart/internal/feature/chart/domain/entity"
)

// MovingAverage is one SMA overlay series aligned to the fetched bars.
// The first Window-1 values are NaN and are skipped by the renderer.
type MovingAverage struct {
	Window int
	Values []float64
}

// movingAverages computes a simple moving average over bar closes for
// each requested window. Windows longer than the series are skipped.
func movingAverages(bars []entity.Bar, windows []int) []MovingAverage {
	out := make([]MovingAverage, 0, len(windows))
	for _, w := range windows {
		if w <= 0 || w > len(bars) {
			continue
		}
		values := make([]float64, len(bars))
		sum := 0.0
		for i, b := range bars {
			sum += b.Close
			if i >= w {
				sum -= bars[i-w].Close
			}
			if i >= w-1 {
				values[i] = sum / float64(w)
			} else {
				values[i] = math.NaN()
			}
		}
		out = append(out, MovingAverage{Window: w, Values: values})
	}
	return out
}
