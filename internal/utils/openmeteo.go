package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// WeatherClient pulls the current temperature from open-meteo. Pure side
// input for the dashboard; it never touches task state.
type WeatherClient struct {
	Latitude  float64
	Longitude float64

	baseURL string
	client  *http.Client
}

func NewWeatherClient(latitude, longitude float64) *WeatherClient {
	return &WeatherClient{
		Latitude:  latitude,
		Longitude: longitude,
		baseURL:   openMeteoURL,
		client:    &http.Client{},
	}
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
	} `json:"current_weather"`
}

// CurrentTemperature returns the current temperature in °C.
func (c *WeatherClient) CurrentTemperature(ctx context.Context) (float64, error) {
	q := url.Values{
		"latitude":        {strconv.FormatFloat(c.Latitude, 'f', 4, 64)},
		"longitude":       {strconv.FormatFloat(c.Longitude, 'f', 4, 64)},
		"current_weather": {"true"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("open-meteo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("open-meteo returned status %d", resp.StatusCode)
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("failed to decode open-meteo response: %w", err)
	}
	return data.CurrentWeather.Temperature, nil
}
