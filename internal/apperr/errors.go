// Package apperr defines the terminal error kinds of a weather lookup and
// how they map to process exit codes and HTTP status codes.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

type Kind int

const (
	KindInvalid Kind = iota + 1
	KindNotFound
	KindAmbiguous
	KindNetwork
	KindTimeout
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindAmbiguous:
		return "ambiguous"
	case KindNetwork:
		return "network_error"
	case KindTimeout:
		return "timeout"
	case KindUpstream:
		return "upstream_error"
	default:
		return "unknown"
	}
}

// Process exit codes.
const (
	ExitOK           = 0
	ExitNotFound     = 1
	ExitNetwork      = 2
	ExitAPI          = 3
	ExitInvalidInput = 4
	ExitAmbiguous    = 5
)

func (k Kind) ExitCode() int {
	switch k {
	case KindNotFound:
		return ExitNotFound
	case KindNetwork, KindTimeout:
		return ExitNetwork
	case KindUpstream:
		return ExitAPI
	case KindInvalid:
		return ExitInvalidInput
	case KindAmbiguous:
		return ExitAmbiguous
	default:
		return ExitAPI
	}
}

func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAmbiguous:
		return http.StatusConflict
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindNetwork, KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Reason narrows a Kind down to the message shown to the user.
type Reason string

const (
	ReasonInvalidArgument        Reason = "invalid_argument"
	ReasonLocationNotFound       Reason = "location_not_found"
	ReasonPostalCodeNotFound     Reason = "postal_code_not_found"
	ReasonMultipleLocations      Reason = "multiple_locations"
	ReasonMultiCountryPostalCode Reason = "multi_country_postal_code"
	ReasonNoConnection           Reason = "no_connection"
	ReasonTimeout                Reason = "timeout"
	ReasonHTTPStatus             Reason = "http_status"
	ReasonInvalidResponse        Reason = "invalid_response"
	ReasonMissingCoordinates     Reason = "missing_coordinates"
	ReasonIncompleteData         Reason = "incomplete_data"
)

// Upstream operations, used to pick the right timeout message.
const (
	OpGeocoding  = "geocoding"
	OpPostalCode = "postal_code"
	OpForecast   = "forecast"
)

type Error struct {
	Kind   Kind
	Reason Reason
	Op     string
	// Query is the place name or postal code the user asked for.
	Query string
	// Countries lists the country codes a postal code matched, sorted.
	Countries []string
	Status    int
	Detail    string
	Err       error
}

func (e *Error) Error() string {
	var msg string
	switch e.Reason {
	case ReasonInvalidArgument:
		msg = e.Detail
	case ReasonLocationNotFound:
		msg = fmt.Sprintf("location %q not found", e.Query)
	case ReasonPostalCodeNotFound:
		msg = fmt.Sprintf("postal code %q not found", e.Query)
	case ReasonMultipleLocations:
		msg = fmt.Sprintf("%q is ambiguous", e.Query)
	case ReasonMultiCountryPostalCode:
		msg = fmt.Sprintf("postal code %q exists in multiple countries: %s", e.Query, strings.Join(e.Countries, ", "))
	case ReasonHTTPStatus:
		msg = fmt.Sprintf("%s request failed with status: %d", e.Op, e.Status)
	case ReasonTimeout:
		msg = fmt.Sprintf("%s request timed out", e.Op)
	default:
		msg = strings.ReplaceAll(string(e.Reason), "_", " ")
		if e.Op != "" {
			msg = e.Op + ": " + msg
		}
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Invalid(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalid, Reason: ReasonInvalidArgument, Detail: fmt.Sprintf(format, args...)}
}

func NotFound(reason Reason, query string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason, Query: query}
}

func AmbiguousLocations(name string) *Error {
	return &Error{Kind: KindAmbiguous, Reason: ReasonMultipleLocations, Query: name}
}

func AmbiguousPostalCode(plz string, countries []string) *Error {
	return &Error{Kind: KindAmbiguous, Reason: ReasonMultiCountryPostalCode, Query: plz, Countries: countries}
}

func HTTPStatus(op string, status int) *Error {
	return &Error{Kind: KindUpstream, Reason: ReasonHTTPStatus, Op: op, Status: status}
}

func Upstream(op string, reason Reason, err error) *Error {
	return &Error{Kind: KindUpstream, Reason: reason, Op: op, Err: err}
}

// Transport classifies an error returned by http.Client.Do.
func Transport(op string, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Reason: ReasonTimeout, Op: op, Err: err}
	}
	return &Error{Kind: KindNetwork, Reason: ReasonNoConnection, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

// ExitCode maps any error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if kind := KindOf(err); kind != 0 {
		return kind.ExitCode()
	}
	return ExitAPI
}
