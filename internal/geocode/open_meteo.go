package geocode

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vzahanych/weather-cli/internal/apperr"
	"github.com/vzahanych/weather-cli/internal/config"
	"github.com/vzahanych/weather-cli/internal/upstream"
)

// searchCount caps the number of name matches requested.
const searchCount = 5

// OpenMeteoSearch resolves place names through the Open-Meteo geocoding API.
type OpenMeteoSearch struct {
	baseURL string
	client  *upstream.Client
}

type openMeteoResponse struct {
	Results []openMeteoResult `json:"results"`
}

type openMeteoResult struct {
	Name        string   `json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code"`
}

func NewOpenMeteoSearch(cfg config.ServiceConfig, client *upstream.Client) *OpenMeteoSearch {
	return &OpenMeteoSearch{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}
}

func (s *OpenMeteoSearch) Name() string {
	return "open-meteo-geocoding"
}

func (s *OpenMeteoSearch) SearchName(ctx context.Context, name, countryCode, lang string) ([]Candidate, error) {
	u, err := url.Parse(fmt.Sprintf("%s/search", s.baseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("name", name)
	q.Set("count", strconv.Itoa(searchCount))
	if lang != "" {
		q.Set("language", lang)
	}
	if countryCode != "" {
		q.Set("countryCode", strings.ToUpper(countryCode))
	}
	u.RawQuery = q.Encode()

	var resp openMeteoResponse
	if err := s.client.GetJSON(ctx, apperr.OpGeocoding, u, &resp); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(resp.Results))
	for i, r := range resp.Results {
		if r.Latitude == nil || r.Longitude == nil {
			// Only the best match is ever used, so only its gap is fatal.
			if i == 0 {
				return nil, apperr.Upstream(apperr.OpGeocoding, apperr.ReasonMissingCoordinates, nil)
			}
			continue
		}

		display := r.Name
		if display == "" {
			display = name
		}
		candidates = append(candidates, Candidate{
			Name:        display,
			Country:     r.Country,
			CountryCode: strings.ToUpper(r.CountryCode),
			Latitude:    *r.Latitude,
			Longitude:   *r.Longitude,
		})
	}

	return candidates, nil
}
