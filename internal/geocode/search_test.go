package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-cli/internal/apperr"
	"github.com/vzahanych/weather-cli/internal/config"
	"github.com/vzahanych/weather-cli/internal/upstream"
	"go.uber.org/zap/zaptest"
)

func newUpstream(t *testing.T) *upstream.Client {
	t.Helper()
	return upstream.NewClient(2*time.Second, "weather-cli-test/1.0", zaptest.NewLogger(t))
}

func TestOpenMeteoSearch_SearchName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Frankfurt", r.URL.Query().Get("name"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		assert.Equal(t, "de", r.URL.Query().Get("language"))
		assert.Equal(t, "DE", r.URL.Query().Get("countryCode"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"name":"Frankfurt am Main","latitude":50.11552,"longitude":8.68417,"country":"Deutschland","country_code":"DE"},
			{"name":"Frankfurt (Oder)","latitude":52.34714,"longitude":14.55062,"country":"Deutschland","country_code":"de"},
			{"name":"Broken"}
		]}`))
	}))
	defer server.Close()

	search := NewOpenMeteoSearch(config.ServiceConfig{BaseURL: server.URL + "/v1/"}, newUpstream(t))

	got, err := search.SearchName(context.Background(), "Frankfurt", "de", "de")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Frankfurt am Main, Deutschland", got[0].DisplayName())
	assert.Equal(t, "DE", got[1].CountryCode)
	assert.InDelta(t, 14.55062, got[1].Longitude, 1e-9)
}

func TestOpenMeteoSearch_NoResultsField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("countryCode"))
		w.Write([]byte(`{"generationtime_ms":0.2}`))
	}))
	defer server.Close()

	search := NewOpenMeteoSearch(config.ServiceConfig{BaseURL: server.URL}, newUpstream(t))

	got, err := search.SearchName(context.Background(), "Atlantis", "", "en")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenMeteoSearch_FirstResultWithoutCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"name":"Nowhere","latitude":null}]}`))
	}))
	defer server.Close()

	search := NewOpenMeteoSearch(config.ServiceConfig{BaseURL: server.URL}, newUpstream(t))

	_, err := search.SearchName(context.Background(), "Nowhere", "", "en")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ReasonMissingCoordinates, appErr.Reason)
}

func TestNominatimSearch_SearchPostalCode(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.UserAgent()
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "1010", r.URL.Query().Get("postalcode"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "at", r.URL.Query().Get("countrycodes"))

		w.Write([]byte(`[
			{"lat":"48.2082","lon":"16.3738","address":{"city":"Wien","postcode":"1010","country":"Österreich","country_code":"at"}},
			{"lat":"48.21","lon":"16.37","address":{"village":"Innere Stadt","country":"Österreich","country_code":"at"}}
		]`))
	}))
	defer server.Close()

	search := NewNominatimSearch(config.ServiceConfig{BaseURL: server.URL}, newUpstream(t))

	got, err := search.SearchPostalCode(context.Background(), "1010", "AT")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "weather-cli-test/1.0", userAgent)
	assert.Equal(t, "1010 Wien, Österreich", got[0].DisplayName())
	assert.Equal(t, "AT", got[0].CountryCode)
	assert.InDelta(t, 48.2082, got[0].Latitude, 1e-9)
	// postcode falls back to the query, place falls through to village
	assert.Equal(t, "1010 Innere Stadt, Österreich", got[1].DisplayName())
}

func TestNominatimSearch_BadCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"north","lon":"16.37","address":{}}]`))
	}))
	defer server.Close()

	search := NewNominatimSearch(config.ServiceConfig{BaseURL: server.URL}, newUpstream(t))

	_, err := search.SearchPostalCode(context.Background(), "1010", "")
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestResolver_PostalCodeAcrossCountriesEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"lat":"48.2082","lon":"16.3738","address":{"city":"Wien","country_code":"at"}},
			{"lat":"46.52","lon":"6.63","address":{"city":"Lausanne","country_code":"ch"}}
		]`))
	}))
	defer server.Close()

	client := newUpstream(t)
	resolver := NewResolver(
		NewOpenMeteoSearch(config.ServiceConfig{BaseURL: server.URL}, client),
		NewNominatimSearch(config.ServiceConfig{BaseURL: server.URL}, client),
		zaptest.NewLogger(t),
	)

	_, err := resolver.ResolvePostalCode(context.Background(), "1010", "")

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"AT", "CH"}, appErr.Countries)
}
