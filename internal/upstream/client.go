// Package upstream wraps the plain HTTP GET + JSON decode every weather
// provider call goes through, mapping failures onto apperr kinds.
package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/vzahanych/weather-cli/internal/apperr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

type Client struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

func NewClient(timeout time.Duration, userAgent string, logger *zap.Logger) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: timeout}, userAgent, logger)
}

func NewClientWithHTTP(client *http.Client, userAgent string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client:    client,
		userAgent: userAgent,
		logger:    logger,
	}
}

// GetJSON issues one GET and decodes a 200 response into out. There is
// no retry: any failure is returned as an *apperr.Error tagged with op.
func (c *Client) GetJSON(ctx context.Context, op string, u *url.URL, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return apperr.Upstream(op, apperr.ReasonInvalidResponse, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Upstream request failed",
			zap.String("op", op),
			zap.String("host", u.Host),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Upstream request completed",
		zap.String("op", op),
		zap.String("host", u.Host),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return apperr.HTTPStatus(op, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Upstream(op, apperr.ReasonInvalidResponse, err)
	}

	return nil
}
