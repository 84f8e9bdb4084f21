// Package locale holds the German and English message catalogues.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vzahanych/weather-cli/internal/apperr"
)

const (
	German  = "de"
	English = "en"

	Default = English
)

// Supported reports whether lang has a catalogue.
func Supported(lang string) bool {
	_, ok := catalogues[lang]
	return ok
}

// Get returns the catalogue for lang, falling back to English.
func Get(lang string) *Catalog {
	if c, ok := catalogues[lang]; ok {
		return c
	}
	return catalogues[Default]
}

type Catalog struct {
	Lang     string
	weekdays [7]string
	weather  map[int]string
	msg      map[Key]string
}

type Key string

const (
	KeyError             Key = "error"
	KeyWeatherFor        Key = "weather_for"
	KeyCondition         Key = "condition"
	KeyTemperature       Key = "temperature"
	KeyPrecipitation     Key = "precipitation"
	KeyWindMax           Key = "wind_max"
	KeyUnknown           Key = "unknown"
	KeyTo                Key = "to"
	KeyTimeoutLocation   Key = "timeout_location"
	KeyTimeoutPostalCode Key = "timeout_plz"
	KeyTimeoutWeather    Key = "timeout_weather"
	KeyNoConnection      Key = "no_connection"
	KeyAPIError          Key = "api_error"
	KeyInvalidResponse   Key = "invalid_response"
	KeyLocationNotFound  Key = "location_not_found"
	KeyPlzNotFound       Key = "plz_not_found"
	KeyAmbiguousName     Key = "ambiguous_name"
	KeyAmbiguousPlz      Key = "ambiguous_plz"
	KeyUsePlz            Key = "use_plz"
	KeyUseCountry        Key = "use_country"
	KeyMissingCoords     Key = "missing_coords"
	KeyIncompleteData    Key = "incomplete_data"
	KeyNotePlzUsed       Key = "note_plz_used"
	KeyDesc              Key = "desc"
	KeyExample           Key = "example"
	KeyHelpPlz           Key = "help_plz"
	KeyHelpCountry       Key = "help_country"
	KeyHelpDays          Key = "help_days"
	KeyHelpJSON          Key = "help_json"
	KeyHelpLang          Key = "help_lang"
	KeyHelpConfig        Key = "help_config"
)

// T returns the message for key formatted with args. Unknown keys
// come back verbatim.
func (c *Catalog) T(key Key, args ...interface{}) string {
	msg, ok := c.msg[key]
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func (c *Catalog) Weekday(d time.Weekday) string {
	return c.weekdays[d]
}

// WeatherDescription maps a WMO weather interpretation code to text.
func (c *Catalog) WeatherDescription(code int) string {
	if desc, ok := c.weather[code]; ok {
		return desc
	}
	return fmt.Sprintf("Code %d", code)
}

// Describe returns the localized message for err and, for ambiguous
// matches, a hint on how to narrow the query down.
func (c *Catalog) Describe(err error) (msg, hint string) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return err.Error(), ""
	}

	switch appErr.Reason {
	case apperr.ReasonMultipleLocations:
		return c.T(KeyAmbiguousName, appErr.Query), c.T(KeyUsePlz)
	case apperr.ReasonMultiCountryPostalCode:
		return c.T(KeyAmbiguousPlz, appErr.Query, strings.Join(appErr.Countries, ", ")),
			c.T(KeyUseCountry, appErr.Query)
	}

	return c.errorMessage(appErr), ""
}

// ErrorLines renders err as the one or two lines shown on stderr.
// Ambiguity hints are printed as-is; everything else gets the
// localized "Error:" prefix.
func (c *Catalog) ErrorLines(err error) []string {
	msg, hint := c.Describe(err)

	switch apperr.KindOf(err) {
	case apperr.KindAmbiguous:
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Reason == apperr.ReasonMultipleLocations {
			hint = "  " + hint
		}
		return []string{msg, hint}
	default:
		return []string{c.T(KeyError) + ": " + msg}
	}
}

func (c *Catalog) errorMessage(e *apperr.Error) string {
	switch e.Reason {
	case apperr.ReasonLocationNotFound:
		return c.T(KeyLocationNotFound, e.Query)
	case apperr.ReasonPostalCodeNotFound:
		return c.T(KeyPlzNotFound, e.Query)
	case apperr.ReasonTimeout:
		switch e.Op {
		case apperr.OpGeocoding:
			return c.T(KeyTimeoutLocation)
		case apperr.OpPostalCode:
			return c.T(KeyTimeoutPostalCode)
		default:
			return c.T(KeyTimeoutWeather)
		}
	case apperr.ReasonNoConnection:
		return c.T(KeyNoConnection)
	case apperr.ReasonHTTPStatus:
		return fmt.Sprintf("%s: %d", c.T(KeyAPIError), e.Status)
	case apperr.ReasonInvalidResponse:
		return c.T(KeyInvalidResponse)
	case apperr.ReasonMissingCoordinates:
		return c.T(KeyMissingCoords)
	case apperr.ReasonIncompleteData:
		return c.T(KeyIncompleteData)
	default:
		return e.Error()
	}
}
