package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"packable/internal/errors"
)

// Day is one day of a timeline forecast. Figures use the provider's US unit group.
type Day struct {
	Datetime    string              `json:"datetime"`
	TempMax     decimal.Decimal     `json:"tempmax"`
	TempMin     decimal.Decimal     `json:"tempmin"`
	Temp        decimal.Decimal     `json:"temp"`
	Precip      decimal.NullDecimal `json:"precip"`
	PrecipProb  decimal.NullDecimal `json:"precipprob"`
	Conditions  string              `json:"conditions"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
}

// Forecast is the subset of the provider's timeline response the API exposes.
type Forecast struct {
	ResolvedAddress string `json:"resolvedAddress"`
	Address         string `json:"address"`
	Timezone        string `json:"timezone"`
	Description     string `json:"description"`
	Days            []Day  `json:"days"`
}

// Forecaster fetches a daily forecast for location between two YYYY-MM-DD dates.
type Forecaster interface {
	Forecast(ctx context.Context, location, start, end string) (*Forecast, error)
}

// Client talks to the Visual Crossing timeline API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a timeline client whose requests give up after timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) timelineURL(location, start, end string) string {
	q := url.Values{}
	q.Set("unitGroup", "us")
	q.Set("include", "days")
	q.Set("contentType", "json")
	q.Set("key", c.apiKey)

	return fmt.Sprintf("%s/%s/%s/%s?%s",
		c.baseURL, url.PathEscape(location), start, end, q.Encode())
}

// Forecast implements Forecaster.
func (c *Client) Forecast(ctx context.Context, location, start, end string) (*Forecast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.timelineURL(location, start, end), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Upstream(err, "weather provider unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn().
			Int("status", resp.StatusCode).
			Str("location", location).
			Str("body", strings.TrimSpace(string(body))).
			Msg("weather provider returned an error")
		return nil, errors.Upstream(nil, "weather provider returned status %d", resp.StatusCode)
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, errors.Upstream(err, "decode weather response")
	}
	return &forecast, nil
}
