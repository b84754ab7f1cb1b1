package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"bakery-storefront/internal/core/logger"
	"bakery-storefront/internal/core/metrics"
	"bakery-storefront/internal/core/proxy"

	"go.uber.org/zap"
)

// LoggingRoundTripper logs and measures every outbound request.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := logger.Named("httpclient")

	log.Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)
	metrics.GatewayDuration.WithLabelValues(req.Method).Observe(duration.Seconds())

	if err != nil {
		metrics.GatewayRequests.WithLabelValues(req.Method, "network_error").Inc()
		log.Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Redacted()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.GatewayRequests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	log.Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware, routed through the
// egress proxy when one is configured.
func NewClient(timeout time.Duration, egress proxy.Settings) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if u := egress.URL(); u != nil {
		transport.Proxy = http.ProxyURL(u)
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: transport,
		},
		Timeout: timeout,
	}
}
