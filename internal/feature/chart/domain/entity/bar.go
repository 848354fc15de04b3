// Package entity defines the domain models for the chart feature.
package entity

import "time"

// Bar represents one OHLCV (Open, High, Low, Close, Volume) observation
// for an instrument at a specific point in time.
type Bar struct {
	Time   time.Time // Timestamp for the start of this bar period
	Open   float64   // Opening price
	High   float64   // Highest price during this period
	Low    float64   // Lowest price during this period
	Close  float64   // Closing price
	Volume int64     // Trading volume (0 when the provider omits it)
}
