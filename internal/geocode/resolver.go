// Package geocode turns a place name or postal code into a single
// location, reporting no-match and ambiguity as apperr errors.
package geocode

import (
	"context"
	"sort"
	"strings"

	"github.com/vzahanych/weather-cli/internal/apperr"
	"go.uber.org/zap"
)

type Resolver struct {
	names       NameSearcher
	postalCodes PostalCodeSearcher
	logger      *zap.Logger
}

func NewResolver(names NameSearcher, postalCodes PostalCodeSearcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		names:       names,
		postalCodes: postalCodes,
		logger:      logger,
	}
}

// ResolveName accepts the best match when every match shares its
// coordinates; distinct places under the same name are ambiguous.
func (r *Resolver) ResolveName(ctx context.Context, name, countryCode, lang string) (*Candidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("location name must not be empty")
	}

	candidates, err := r.names.SearchName(ctx, name, strings.ToUpper(countryCode), lang)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Name search finished",
		zap.String("searcher", r.names.Name()),
		zap.String("name", name),
		zap.String("country", countryCode),
		zap.Int("candidates", len(candidates)))

	if len(candidates) == 0 {
		return nil, apperr.NotFound(apperr.ReasonLocationNotFound, name)
	}

	first := candidates[0]
	for _, c := range candidates[1:] {
		if !first.sameCoordinates(c) {
			return nil, apperr.AmbiguousLocations(name)
		}
	}

	return &first, nil
}

// ResolvePostalCode takes the first match unless, without a country
// filter, the matches span several countries.
func (r *Resolver) ResolvePostalCode(ctx context.Context, postalCode, countryCode string) (*Candidate, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return nil, apperr.Invalid("postal code must not be empty")
	}

	candidates, err := r.postalCodes.SearchPostalCode(ctx, postalCode, strings.ToLower(countryCode))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Postal code search finished",
		zap.String("searcher", r.postalCodes.Name()),
		zap.String("postal_code", postalCode),
		zap.String("country", countryCode),
		zap.Int("candidates", len(candidates)))

	if len(candidates) == 0 {
		return nil, apperr.NotFound(apperr.ReasonPostalCodeNotFound, postalCode)
	}

	if countryCode == "" && len(candidates) > 1 {
		if countries := countryCodes(candidates); len(countries) > 1 {
			return nil, apperr.AmbiguousPostalCode(postalCode, countries)
		}
	}

	first := candidates[0]
	return &first, nil
}

func countryCodes(candidates []Candidate) []string {
	seen := make(map[string]struct{})
	for _, c := range candidates {
		if c.CountryCode != "" {
			seen[c.CountryCode] = struct{}{}
		}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
