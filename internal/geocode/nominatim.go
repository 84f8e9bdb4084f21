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

const nominatimLimit = 10

// NominatimSearch resolves postal codes through OpenStreetMap Nominatim.
type NominatimSearch struct {
	baseURL string
	client  *upstream.Client
}

type nominatimResult struct {
	Lat     string           `json:"lat"`
	Lon     string           `json:"lon"`
	Address nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	Suburb      string `json:"suburb"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

func (a nominatimAddress) place() string {
	for _, p := range []string{a.City, a.Town, a.Village, a.Suburb} {
		if p != "" {
			return p
		}
	}
	return ""
}

func NewNominatimSearch(cfg config.ServiceConfig, client *upstream.Client) *NominatimSearch {
	return &NominatimSearch{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}
}

func (s *NominatimSearch) Name() string {
	return "nominatim"
}

func (s *NominatimSearch) SearchPostalCode(ctx context.Context, postalCode, countryCode string) ([]Candidate, error) {
	u, err := url.Parse(fmt.Sprintf("%s/search", s.baseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("postalcode", postalCode)
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(nominatimLimit))
	if countryCode != "" {
		q.Set("countrycodes", strings.ToLower(countryCode))
	}
	u.RawQuery = q.Encode()

	var results []nominatimResult
	if err := s.client.GetJSON(ctx, apperr.OpPostalCode, u, &results); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, apperr.Upstream(apperr.OpPostalCode, apperr.ReasonInvalidResponse, err)
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, apperr.Upstream(apperr.OpPostalCode, apperr.ReasonInvalidResponse, err)
		}

		postcode := r.Address.Postcode
		if postcode == "" {
			postcode = postalCode
		}
		candidates = append(candidates, Candidate{
			Name:        r.Address.place(),
			PostalCode:  postcode,
			Country:     r.Address.Country,
			CountryCode: strings.ToUpper(r.Address.CountryCode),
			Latitude:    lat,
			Longitude:   lon,
		})
	}

	return candidates, nil
}
