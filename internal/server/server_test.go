package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-cli/internal/config"
	"github.com/vzahanych/weather-cli/internal/lookup"
	"github.com/vzahanych/weather-cli/internal/present"
	"github.com/vzahanych/weather-cli/internal/server/handlers"
	"github.com/vzahanych/weather-cli/pkg/telemetry"
	"go.uber.org/zap/zaptest"
)

func newUpstreams(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "Frankfurt" {
			w.Write([]byte(`{"results":[
				{"name":"Frankfurt am Main","latitude":50.11,"longitude":8.68,"country":"Deutschland","country_code":"DE"},
				{"name":"Frankfurt (Oder)","latitude":52.34,"longitude":14.55,"country":"Deutschland","country_code":"DE"}]}`))
			return
		}
		w.Write([]byte(`{"results":[{"name":"Berlin","latitude":52.52,"longitude":13.41,"country":"Deutschland","country_code":"DE"}]}`))
	})
	mux.HandleFunc("/osm/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"lat":"48.2","lon":"16.3","address":{"city":"Wien","country_code":"at"}},
			{"lat":"46.5","lon":"6.6","address":{"city":"Lausanne","country_code":"ch"}}]`))
	})
	mux.HandleFunc("/meteo/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timezone":"Europe/Berlin",
			"daily":{"time":["2026-10-19"],"weather_code":[95],"temperature_2m_max":[20.5],"temperature_2m_min":[11],"precipitation_sum":[7.2],"wind_speed_10m_max":[40]},
			"hourly":{"time":["2026-10-19T00:00"],"temperature_2m":[12],"precipitation":[0.5],"weather_code":[95]}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	up := newUpstreams(t)

	cfg := config.NewDefaultConfig()
	cfg.Weather.Geocoding.BaseURL = up.URL + "/geo"
	cfg.Weather.PostalCode.BaseURL = up.URL + "/osm"
	cfg.Weather.Forecast.BaseURL = up.URL + "/meteo"
	cfg.Weather.Timeout = 2

	logger := zaptest.NewLogger(t)
	tele := telemetry.NewNop()
	return NewServer(cfg, lookup.NewService(&cfg.Weather, logger, tele), logger, tele)
}

func get(t *testing.T, s *Server, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestForecast_Success(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/forecast?name=Berlin&days=1&lang=de", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var doc present.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Berlin, Deutschland", doc.Location)
	require.Len(t, doc.Days, 1)
	assert.Equal(t, "Gewitter", doc.Days[0].WeatherDescription)
	assert.InDelta(t, 7.2, doc.Days[0].PrecipitationSum, 1e-9)
}

func TestForecast_AmbiguousName(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/forecast?name=Frankfurt", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ambiguous", resp.Code)
	assert.Equal(t, "'Frankfurt' is ambiguous. Please use postal code:", resp.Error)
	assert.NotEmpty(t, resp.Hint)
}

func TestForecast_PostalCodeInSeveralCountries(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/forecast?plz=1010", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"AT", "CH"}, resp.Countries)
}

func TestForecast_InvalidParameters(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{
		"/forecast?name=Berlin&days=17",
		"/forecast?name=Berlin&days=abc",
		"/forecast?name=Berlin&lang=fr",
		"/forecast",
	} {
		rec := get(t, s, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestForecast_ReusesRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/forecast?name=Berlin", http.Header{"X-Request-Id": []string{"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for path, status := range map[string]string{
		"/health":       "ok",
		"/health/live":  "alive",
		"/health/ready": "ready",
	} {
		rec := get(t, s, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var resp handlers.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, status, resp.Status, path)
	}
}

func TestMetrics_CountsLookups(t *testing.T) {
	s := newTestServer(t)

	get(t, s, "/forecast?name=Berlin", nil)
	get(t, s, "/forecast?name=Frankfurt", nil)

	rec := get(t, s, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `weather_upstream_calls_total{op="geocoding"} 2`)
	assert.Contains(t, text, `weather_upstream_calls_total{op="forecast"} 1`)
	assert.Contains(t, text, `http_requests_total{route_status="GET /forecast_200"} 1`)
	assert.Contains(t, text, `http_requests_total{route_status="GET /forecast_409"} 1`)
	assert.NotContains(t, text, `weather_upstream_errors_total{`)
}
