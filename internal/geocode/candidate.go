package geocode

import (
	"context"
	"strings"
)

// Candidate is one location returned by a geocoding search.
type Candidate struct {
	Name        string  `json:"name"`
	PostalCode  string  `json:"postal_code,omitempty"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// DisplayName renders "Berlin, Deutschland" for name matches and
// "10115 Berlin, Deutschland" for postal code matches.
func (c Candidate) DisplayName() string {
	head := strings.TrimSpace(c.PostalCode + " " + c.Name)
	switch {
	case head == "":
		return c.Country
	case c.Country == "":
		return head
	default:
		return head + ", " + c.Country
	}
}

func (c Candidate) sameCoordinates(o Candidate) bool {
	return c.Latitude == o.Latitude && c.Longitude == o.Longitude
}

// NameSearcher looks up places by free-text name.
type NameSearcher interface {
	SearchName(ctx context.Context, name, countryCode, lang string) ([]Candidate, error)
	Name() string
}

// PostalCodeSearcher looks up places by postal code.
type PostalCodeSearcher interface {
	SearchPostalCode(ctx context.Context, postalCode, countryCode string) ([]Candidate, error)
	Name() string
}
