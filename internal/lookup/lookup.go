// Package lookup runs one weather lookup: resolve the location, then
// fetch its forecast.
package lookup

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vzahanych/weather-cli/internal/apperr"
	"github.com/vzahanych/weather-cli/internal/config"
	"github.com/vzahanych/weather-cli/internal/forecast"
	"github.com/vzahanych/weather-cli/internal/geocode"
	"github.com/vzahanych/weather-cli/internal/upstream"
	"github.com/vzahanych/weather-cli/internal/validation"
	"github.com/vzahanych/weather-cli/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type Query struct {
	Name       string `json:"name" validate:"required_without=PostalCode"`
	PostalCode string `json:"plz"`
	Country    string `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	Days       int    `json:"days" validate:"min=1,max=16"`
	Lang       string `json:"lang" validate:"lang"`
}

type Report struct {
	LookupID string            `json:"lookup_id"`
	Location string            `json:"location"`
	Place    geocode.Candidate `json:"place"`
	Forecast *forecast.Result  `json:"forecast"`
	// IgnoredName is set when both a name and a postal code were given;
	// the postal code wins.
	IgnoredName string `json:"ignored_name,omitempty"`
}

// MetricsRecorder counts upstream calls per operation.
type MetricsRecorder interface {
	RecordUpstreamCall(ctx context.Context, op string, success bool)
}

type Service struct {
	resolver *geocode.Resolver
	fetcher  forecast.Fetcher
	logger   *zap.Logger
	tele     *telemetry.Telemetry
	metrics  MetricsRecorder
}

// NewService wires the Open-Meteo and Nominatim clients from cfg.
func NewService(cfg *config.WeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Service {
	client := upstream.NewClient(time.Duration(cfg.Timeout)*time.Second, cfg.UserAgent, logger)

	resolver := geocode.NewResolver(
		geocode.NewOpenMeteoSearch(cfg.Geocoding, client),
		geocode.NewNominatimSearch(cfg.PostalCode, client),
		logger,
	)
	fetcher := forecast.NewOpenMeteoService(cfg.Forecast, client, logger)

	return NewServiceWith(resolver, fetcher, logger, tele)
}

func NewServiceWith(resolver *geocode.Resolver, fetcher forecast.Fetcher, logger *zap.Logger, tele *telemetry.Telemetry) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver: resolver,
		fetcher:  fetcher,
		logger:   logger,
		tele:     tele,
	}
}

func (s *Service) SetMetricsRecorder(metrics MetricsRecorder) {
	s.metrics = metrics
}

// Normalize trims input and upper-cases the country code.
func (q Query) Normalize() Query {
	q.Name = strings.TrimSpace(q.Name)
	q.PostalCode = strings.TrimSpace(q.PostalCode)
	q.Country = strings.ToUpper(strings.TrimSpace(q.Country))
	return q
}

// Lookup validates q, resolves it to one place and fetches the forecast.
// Invalid queries fail before any network call.
func (s *Service) Lookup(ctx context.Context, q Query) (*Report, error) {
	q = q.Normalize()

	lookupID := RequestIDFrom(ctx)
	if lookupID == "" {
		lookupID = uuid.New().String()
	}
	log := s.logger.With(zap.String("lookup_id", lookupID))

	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "lookup.Lookup")
	defer span.End()

	span.SetAttributes(
		attribute.String("lookup_id", lookupID),
		attribute.String("name", q.Name),
		attribute.String("postal_code", q.PostalCode),
		attribute.String("country", q.Country),
		attribute.Int("days", q.Days),
		attribute.String("lang", q.Lang),
	)

	if err := validation.Struct(q); err != nil {
		log.Debug("Rejected lookup query", zap.Error(err))
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	report := &Report{LookupID: lookupID}
	if q.Name != "" && q.PostalCode != "" {
		report.IgnoredName = q.Name
	}

	place, err := s.resolve(ctx, q)
	if err != nil {
		log.Info("Location resolution failed",
			zap.String("kind", apperr.KindOf(err).String()),
			zap.Error(err))
		s.tele.RecordError(ctx, err, map[string]interface{}{"stage": "resolve"})
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	report.Place = *place
	report.Location = place.DisplayName()

	log.Debug("Location resolved",
		zap.String("location", report.Location),
		zap.Float64("lat", place.Latitude),
		zap.Float64("lon", place.Longitude))

	result, err := s.fetch(ctx, forecast.Request{
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Days:      q.Days,
	})
	if err != nil {
		log.Warn("Forecast fetch failed", zap.Error(err))
		s.tele.RecordError(ctx, err, map[string]interface{}{"stage": "forecast"})
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	report.Forecast = result
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("days_returned", len(result.Days)),
	)

	log.Info("Lookup completed",
		zap.String("location", report.Location),
		zap.Int("days", len(result.Days)))

	return report, nil
}

func (s *Service) resolve(ctx context.Context, q Query) (*geocode.Candidate, error) {
	tracer := s.tele.GetTracer()

	if q.PostalCode != "" {
		ctx, span := tracer.Start(ctx, "geocode.ResolvePostalCode")
		defer span.End()

		place, err := s.resolver.ResolvePostalCode(ctx, q.PostalCode, q.Country)
		s.record(ctx, apperr.OpPostalCode, err)
		return place, err
	}

	ctx, span := tracer.Start(ctx, "geocode.ResolveName")
	defer span.End()

	place, err := s.resolver.ResolveName(ctx, q.Name, q.Country, q.Lang)
	s.record(ctx, apperr.OpGeocoding, err)
	return place, err
}

func (s *Service) fetch(ctx context.Context, req forecast.Request) (*forecast.Result, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "forecast.Fetch")
	defer span.End()

	span.SetAttributes(
		attribute.String("service", s.fetcher.Name()),
		attribute.Float64("lat", req.Latitude),
		attribute.Float64("lon", req.Longitude),
	)

	result, err := s.fetcher.Fetch(ctx, req)
	s.record(ctx, apperr.OpForecast, err)
	return result, err
}

// record counts a call as failed only when the upstream itself failed;
// no-match and ambiguity are answers, not failures.
func (s *Service) record(ctx context.Context, op string, err error) {
	if s.metrics == nil {
		return
	}
	kind := apperr.KindOf(err)
	switch {
	case err == nil, kind == apperr.KindNotFound, kind == apperr.KindAmbiguous:
		s.metrics.RecordUpstreamCall(ctx, op, true)
	case kind == apperr.KindInvalid:
		return
	default:
		s.metrics.RecordUpstreamCall(ctx, op, false)
	}
}
