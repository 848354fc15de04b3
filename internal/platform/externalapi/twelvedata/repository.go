package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"signalchart/internal/feature/chart/domain"
	"signalchart/internal/feature/chart/domain/entity"
	"signalchart/internal/feature/chart/usecase"
	"signalchart/internal/platform/externalapi/twelvedata/dto"
	"signalchart/internal/shared/ratelimiter"
)

// TwelveDataMarket is the MarketRepository implementation backed by the
// Twelve Data time_series API.
type TwelveDataMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// Compile-time check that TwelveDataMarket implements MarketRepository.
var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket creates a new TwelveDataMarket with the given
// configuration, HTTP client and optional rate limiter (nil disables it).
func NewTwelveDataMarket(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client, limiter: limiter}
}

// GetTimeSeries fetches one series from the provider and returns it as
// bars sorted strictly ascending by timestamp. Exactly one network call
// is made per invocation; caching sits in a decorator above this layer.
func (t *TwelveDataMarket) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int, timezone string) ([]entity.Bar, error) {
	if t.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: TWELVE_KEY is empty", domain.ErrProviderConfig)
	}

	if timezone == "" {
		timezone = "UTC"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidParameter, timezone)
	}

	if t.limiter != nil {
		t.limiter.WaitIfNeeded()
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("outputsize", strconv.Itoa(outputsize))
	q.Set("apikey", t.cfg.APIKey)
	q.Set("format", "JSON")
	q.Set("timezone", timezone)
	q.Set("order", "asc")

	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderResponse, redact(err))
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderResponse, redact(err))
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: twelvedata http %d", domain.ErrProviderResponse, res.StatusCode)
	}

	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderResponse, err)
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("%w: twelvedata: %s", domain.ErrProviderResponse, body.Message)
	}
	if body.Values == nil {
		return nil, fmt.Errorf("%w: missing values field", domain.ErrProviderResponse)
	}
	if len(body.Values) == 0 {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNoData, symbol, interval)
	}

	bars := make([]entity.Bar, 0, len(body.Values))
	for _, v := range body.Values {
		tm, err := time.ParseInLocation("2006-01-02 15:04:05", v.Datetime, loc)
		if err != nil {
			tm, err = time.ParseInLocation("2006-01-02", v.Datetime, loc)
			if err != nil {
				slog.Warn("dropping row with unparseable datetime", "symbol", symbol, "datetime", v.Datetime)
				continue
			}
		}
		o, errO := strconv.ParseFloat(v.Open, 64)
		h, errH := strconv.ParseFloat(v.High, 64)
		l, errL := strconv.ParseFloat(v.Low, 64)
		c, errC := strconv.ParseFloat(v.Close, 64)
		if errO != nil || errH != nil || errL != nil || errC != nil {
			slog.Warn("dropping row with unparseable price", "symbol", symbol, "datetime", v.Datetime)
			continue
		}
		// Volume is optional and decorative; a bad value never drops a row.
		var vol int64
		if v.Volume != "" {
			if vol, err = strconv.ParseInt(v.Volume, 10, 64); err != nil {
				slog.Warn("ignoring unparseable volume", "symbol", symbol, "datetime", v.Datetime)
				vol = 0
			}
		}

		bars = append(bars, entity.Bar{Time: tm, Open: o, High: h, Low: l, Close: c, Volume: vol})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no parseable rows in values", domain.ErrProviderResponse)
	}

	// The provider is asked for ascending order but the contract here is
	// strictly increasing timestamps, so sort and deduplicate anyway.
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			// Keep the latest occurrence of a duplicated timestamp.
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// redact strips the request URL from a transport error. url.Error embeds
// the full URL, api key included, and wrapped fetch errors end up in
// HTTP response bodies.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
