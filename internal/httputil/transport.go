// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client used to reach the model API.
package httputil

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// UserAgent identifies biosynth on outbound requests.
const UserAgent = "biosynth"

// LoggingTransport stamps the User-Agent header on each request and logs the
// method, host, status, and latency at debug level. A request that fails in
// transport is logged at warn level.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *zap.Logger
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned
// before headers are set.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := t.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", UserAgent)
	}

	start := time.Now()
	resp, err := base.RoundTrip(r)
	elapsed := time.Since(start)
	if err != nil {
		logger.Warn("model request failed",
			zap.String("method", r.Method),
			zap.String("host", r.URL.Host),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, err
	}
	logger.Debug("model request",
		zap.String("method", r.Method),
		zap.String("host", r.URL.Host),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))
	return resp, nil
}

// NewClient returns an http.Client whose transport logs through logger.
// Timeouts are carried by the request context, so the client sets none.
func NewClient(logger *zap.Logger) *http.Client {
	return &http.Client{Transport: &LoggingTransport{Logger: logger}}
}
