// Package environment fetches current weather and air quality and turns
// them into health guidelines.
package environment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultForecastURL   = "https://api.open-meteo.com/v1/forecast"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
)

// Location is a named coordinate pair.
type Location struct {
	Label     string  `yaml:"label"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// DefaultLocation is used when none is configured.
var DefaultLocation = Location{Label: "New Delhi, India", Latitude: 28.6139, Longitude: 77.2090}

// Conditions is a snapshot of the current environment.
type Conditions struct {
	AQI                 int     `json:"aqi"`
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparentTemperature"`
	Humidity            float64 `json:"humidity"`
	WindSpeed           float64 `json:"windSpeed"`
}

// AQILevel describes an AQI reading.
func AQILevel(aqi int) string {
	switch {
	case aqi < 50:
		return "Good"
	case aqi < 100:
		return "Moderate"
	case aqi < 150:
		return "Unhealthy"
	default:
		return "Hazardous"
	}
}

// Client reads the open-meteo forecast and air-quality APIs.
type Client struct {
	client        *http.Client
	forecastURL   string
	airQualityURL string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.client = c }
}

// WithEndpoints overrides both API base URLs.
func WithEndpoints(forecast, airQuality string) ClientOption {
	return func(cl *Client) {
		cl.forecastURL = forecast
		cl.airQualityURL = airQuality
	}
}

// NewClient creates a Client with a 15 second timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		client:        &http.Client{Timeout: 15 * time.Second},
		forecastURL:   DefaultForecastURL,
		airQualityURL: DefaultAirQualityURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Current fetches weather and air quality concurrently. Either failing
// fails the whole call.
func (c *Client) Current(ctx context.Context, loc Location) (Conditions, error) {
	var (
		weather struct {
			Current struct {
				Temperature         float64 `json:"temperature_2m"`
				Humidity            float64 `json:"relative_humidity_2m"`
				WindSpeed           float64 `json:"wind_speed_10m"`
				ApparentTemperature float64 `json:"apparent_temperature"`
			} `json:"current"`
		}
		air struct {
			Current struct {
				USAQI float64 `json:"us_aqi"`
			} `json:"current"`
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := coords(loc)
		q.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,apparent_temperature")
		if err := c.getJSON(gctx, c.forecastURL, q, &weather); err != nil {
			return fmt.Errorf("fetch weather: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		q := coords(loc)
		q.Set("current", "us_aqi")
		if err := c.getJSON(gctx, c.airQualityURL, q, &air); err != nil {
			return fmt.Errorf("fetch air quality: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Conditions{}, err
	}

	return Conditions{
		AQI:                 int(air.Current.USAQI + 0.5),
		Temperature:         weather.Current.Temperature,
		ApparentTemperature: weather.Current.ApparentTemperature,
		Humidity:            weather.Current.Humidity,
		WindSpeed:           weather.Current.WindSpeed,
	}, nil
}

func coords(loc Location) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', 4, 64))
	return q
}

func (c *Client) getJSON(ctx context.Context, base string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
