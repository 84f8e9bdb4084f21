package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-cli/internal/apperr"
	"github.com/vzahanych/weather-cli/internal/config"
	"github.com/vzahanych/weather-cli/internal/upstream"
	"go.uber.org/zap/zaptest"
)

func forecastPayload(days int) map[string]interface{} {
	daily := map[string]interface{}{
		"time":               []string{},
		"weather_code":       []interface{}{},
		"temperature_2m_max": []interface{}{},
		"temperature_2m_min": []interface{}{},
		"precipitation_sum":  []interface{}{},
		"wind_speed_10m_max": []interface{}{},
	}
	hourly := map[string]interface{}{
		"time":           []string{},
		"temperature_2m": []interface{}{},
		"precipitation":  []interface{}{},
		"weather_code":   []interface{}{},
	}

	for d := 0; d < days; d++ {
		date := fmt.Sprintf("2026-10-%02d", 19+d)
		daily["time"] = append(daily["time"].([]string), date)
		daily["weather_code"] = append(daily["weather_code"].([]interface{}), 61)
		daily["temperature_2m_max"] = append(daily["temperature_2m_max"].([]interface{}), 14.2+float64(d))
		daily["temperature_2m_min"] = append(daily["temperature_2m_min"].([]interface{}), 6.1)
		daily["precipitation_sum"] = append(daily["precipitation_sum"].([]interface{}), 2.4)
		daily["wind_speed_10m_max"] = append(daily["wind_speed_10m_max"].([]interface{}), nil)

		for h := 0; h < 24; h++ {
			hourly["time"] = append(hourly["time"].([]string), fmt.Sprintf("%sT%02d:00", date, h))
			hourly["temperature_2m"] = append(hourly["temperature_2m"].([]interface{}), 8.0+float64(h)/4)
			hourly["precipitation"] = append(hourly["precipitation"].([]interface{}), 0.1*float64(h%3))
			hourly["weather_code"] = append(hourly["weather_code"].([]interface{}), 3)
		}
	}

	return map[string]interface{}{
		"timezone": "Europe/Berlin",
		"daily":    daily,
		"hourly":   hourly,
	}
}

func newTestService(t *testing.T, baseURL string) *OpenMeteoService {
	t.Helper()
	logger := zaptest.NewLogger(t)
	client := upstream.NewClient(2*time.Second, "weather-cli-test/1.0", logger)
	return NewOpenMeteoService(config.ServiceConfig{BaseURL: baseURL}, client, logger)
}

func TestFetch_FoldsDailyAndHourly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "50.115520", q.Get("latitude"))
		assert.Equal(t, "8.684170", q.Get("longitude"))
		assert.Equal(t, "2", q.Get("forecast_days"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.Equal(t, dailyVariables, q.Get("daily"))
		assert.Equal(t, hourlyVariables, q.Get("hourly"))

		json.NewEncoder(w).Encode(forecastPayload(2))
	}))
	defer server.Close()

	result, err := newTestService(t, server.URL+"/v1").Fetch(context.Background(), Request{
		Latitude:  50.11552,
		Longitude: 8.68417,
		Days:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", result.Timezone)
	require.Len(t, result.Days, 2)

	second := result.Days[1]
	assert.Equal(t, "2026-10-20", second.Date)
	assert.Equal(t, 61, second.WeatherCode)
	assert.InDelta(t, 15.2, second.TemperatureMax, 1e-9)
	assert.InDelta(t, 6.1, second.TemperatureMin, 1e-9)
	assert.Zero(t, second.WindSpeedMax, "null values read as zero")

	require.Len(t, second.Hourly, 24)
	assert.Equal(t, "2026-10-20T00:00", second.Hourly[0].Time)
	assert.Equal(t, "2026-10-20T23:00", second.Hourly[23].Time)
}

func TestFetch_ShortHourlyBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := forecastPayload(2)
		hourly := payload["hourly"].(map[string]interface{})
		hourly["time"] = hourly["time"].([]string)[:30]
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	result, err := newTestService(t, server.URL).Fetch(context.Background(), Request{Latitude: 1, Longitude: 1, Days: 2})
	require.NoError(t, err)

	assert.Len(t, result.Days[0].Hourly, 24)
	assert.Len(t, result.Days[1].Hourly, 6)
}

func TestFetch_RejectsDaysBeforeNetworkCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)

	for _, days := range []int{0, -1, 17, 100} {
		_, err := svc.Fetch(context.Background(), Request{Latitude: 52.5, Longitude: 13.4, Days: days})
		assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err), "days=%d", days)
	}

	assert.Zero(t, calls.Load())
}

func TestFetch_IncompleteData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"time":["2026-10-19"]}}`))
	}))
	defer server.Close()

	_, err := newTestService(t, server.URL).Fetch(context.Background(), Request{Latitude: 1, Longitude: 1, Days: 1})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ReasonIncompleteData, appErr.Reason)
}

func TestFetch_UpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":true,"reason":"Latitude must be in range"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestService(t, server.URL).Fetch(context.Background(), Request{Latitude: 1, Longitude: 1, Days: 1})
	assert.Equal(t, apperr.ExitAPI, apperr.ExitCode(err))
}
