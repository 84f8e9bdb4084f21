// Package forecast fetches daily and hourly forecasts from Open-Meteo.
package forecast

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vzahanych/weather-cli/internal/apperr"
	"github.com/vzahanych/weather-cli/internal/config"
	"github.com/vzahanych/weather-cli/internal/upstream"
	"github.com/vzahanych/weather-cli/internal/validation"
	"go.uber.org/zap"
)

const (
	dailyVariables  = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max"
	hourlyVariables = "temperature_2m,precipitation,weather_code"
	hoursPerDay     = 24
)

// Fetcher is implemented by forecast providers.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Result, error)
	Name() string
}

type OpenMeteoService struct {
	baseURL string
	client  *upstream.Client
	logger  *zap.Logger
}

type openMeteoResponse struct {
	Timezone string       `json:"timezone"`
	Daily    *dailyBlock  `json:"daily"`
	Hourly   *hourlyBlock `json:"hourly"`
}

type dailyBlock struct {
	Time             []string   `json:"time"`
	WeatherCode      []*int     `json:"weather_code"`
	TemperatureMax   []*float64 `json:"temperature_2m_max"`
	TemperatureMin   []*float64 `json:"temperature_2m_min"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
	WindSpeedMax     []*float64 `json:"wind_speed_10m_max"`
}

type hourlyBlock struct {
	Time          []string   `json:"time"`
	Temperature   []*float64 `json:"temperature_2m"`
	Precipitation []*float64 `json:"precipitation"`
	WeatherCode   []*int     `json:"weather_code"`
}

func NewOpenMeteoService(cfg config.ServiceConfig, client *upstream.Client, logger *zap.Logger) *OpenMeteoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenMeteoService{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

func (s *OpenMeteoService) Name() string {
	return "open-meteo"
}

// Fetch validates req before touching the network, then issues a single
// forecast request.
func (s *OpenMeteoService) Fetch(ctx context.Context, req Request) (*Result, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	u, err := url.Parse(fmt.Sprintf("%s/forecast", s.baseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(req.Latitude, 'f', 6, 64))
	q.Set("longitude", strconv.FormatFloat(req.Longitude, 'f', 6, 64))
	q.Set("daily", dailyVariables)
	q.Set("hourly", hourlyVariables)
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(req.Days))
	u.RawQuery = q.Encode()

	var resp openMeteoResponse
	if err := s.client.GetJSON(ctx, apperr.OpForecast, u, &resp); err != nil {
		return nil, err
	}

	if resp.Daily == nil || resp.Hourly == nil {
		return nil, apperr.Upstream(apperr.OpForecast, apperr.ReasonIncompleteData, nil)
	}

	result := fold(&resp)

	s.logger.Debug("Forecast fetched",
		zap.Float64("lat", req.Latitude),
		zap.Float64("lon", req.Longitude),
		zap.Int("days_requested", req.Days),
		zap.Int("days_returned", len(result.Days)),
		zap.String("timezone", result.Timezone))

	return result, nil
}

// fold turns the column-oriented response into rows. Hours
// [i*24, i*24+24) belong to day i; missing values read as zero.
func fold(resp *openMeteoResponse) *Result {
	daily, hourly := resp.Daily, resp.Hourly

	result := &Result{
		Timezone: resp.Timezone,
		Days:     make([]Day, 0, len(daily.Time)),
	}

	for i, date := range daily.Time {
		day := Day{
			Date:             date,
			WeatherCode:      intAt(daily.WeatherCode, i),
			TemperatureMin:   floatAt(daily.TemperatureMin, i),
			TemperatureMax:   floatAt(daily.TemperatureMax, i),
			PrecipitationSum: floatAt(daily.PrecipitationSum, i),
			WindSpeedMax:     floatAt(daily.WindSpeedMax, i),
			Hourly:           []Hour{},
		}

		start := i * hoursPerDay
		end := min(start+hoursPerDay, len(hourly.Time))
		for h := start; h < end; h++ {
			day.Hourly = append(day.Hourly, Hour{
				Time:          hourly.Time[h],
				Temperature:   floatAt(hourly.Temperature, h),
				Precipitation: floatAt(hourly.Precipitation, h),
				WeatherCode:   intAt(hourly.WeatherCode, h),
			})
		}

		result.Days = append(result.Days, day)
	}

	return result
}

func floatAt(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}

func intAt(values []*int, i int) int {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
