package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-cli/internal/server/middlewares"
	"go.uber.org/zap"
)

// MetricsHandler counts upstream calls made by lookups and exposes them,
// together with the HTTP middleware counters, in Prometheus text format.
type MetricsHandler struct {
	logger *zap.Logger
	http   *middlewares.HTTPMetrics

	mutex          sync.RWMutex
	upstreamCalls  map[string]int64
	upstreamErrors map[string]int64
}

func NewMetricsHandler(logger *zap.Logger, httpMetrics *middlewares.HTTPMetrics) *MetricsHandler {
	return &MetricsHandler{
		logger:         logger,
		http:           httpMetrics,
		upstreamCalls:  make(map[string]int64),
		upstreamErrors: make(map[string]int64),
	}
}

// RecordUpstreamCall implements lookup.MetricsRecorder.
func (h *MetricsHandler) RecordUpstreamCall(ctx context.Context, op string, success bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.upstreamCalls[op]++
	if !success {
		h.upstreamErrors[op]++
	}
}

func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	var b strings.Builder

	if h.http != nil {
		snap := h.http.Snapshot()

		writeHeader(&b, "http_requests_total", "Total number of HTTP requests", "counter")
		for _, key := range sortedKeys(snap.RequestsTotal) {
			fmt.Fprintf(&b, "http_requests_total{route_status=%q} %d\n", key, snap.RequestsTotal[key])
		}

		writeHeader(&b, "http_request_duration_seconds_avg", "Average duration of HTTP requests", "gauge")
		fmt.Fprintf(&b, "http_request_duration_seconds_avg %.6f\n", snap.AvgDurationSeconds)

		writeHeader(&b, "http_active_requests", "Number of active HTTP requests", "gauge")
		fmt.Fprintf(&b, "http_active_requests %d\n", snap.ActiveRequests)
	}

	h.mutex.RLock()
	writeHeader(&b, "weather_upstream_calls_total", "Total upstream calls per operation", "counter")
	for _, op := range sortedKeys(h.upstreamCalls) {
		fmt.Fprintf(&b, "weather_upstream_calls_total{op=%q} %d\n", op, h.upstreamCalls[op])
	}

	writeHeader(&b, "weather_upstream_errors_total", "Total failed upstream calls per operation", "counter")
	for _, op := range sortedKeys(h.upstreamErrors) {
		fmt.Fprintf(&b, "weather_upstream_errors_total{op=%q} %d\n", op, h.upstreamErrors[op])
	}
	h.mutex.RUnlock()

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

func writeHeader(b *strings.Builder, name, help, kind string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
