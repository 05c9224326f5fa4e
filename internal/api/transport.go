package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"fintrack/internal/log"
)

const headerRequestID = "X-Request-ID"

// Metrics counts outbound calls.
type Metrics struct {
	TotalRequests  int64
	FailedRequests int64
	// LastDuration is the duration of the most recent call in microseconds.
	LastDuration int64
}

// loggingTransport logs every outbound request and keeps Metrics.
type loggingTransport struct {
	next    http.RoundTripper
	logger  *log.Logger
	metrics *Metrics
}

func newLoggingTransport(next http.RoundTripper, logger *log.Logger, metrics *Metrics) *loggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger, metrics: metrics}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	ctx := req.Context()
	requestID := req.Header.Get(headerRequestID)

	t.logger.DebugContext(ctx, "API request started",
		log.NewFields().WithRequestID(requestID).WithHTTPRequest(req.Method, req.URL.Path).ToSlice()...)

	atomic.AddInt64(&t.metrics.TotalRequests, 1)
	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)
	atomic.StoreInt64(&t.metrics.LastDuration, duration.Microseconds())

	if err != nil {
		atomic.AddInt64(&t.metrics.FailedRequests, 1)
		t.logger.WarnContext(ctx, "API request failed",
			log.NewFields().WithRequestID(requestID).WithHTTPRequest(req.Method, req.URL.Path).WithError(err).ToSlice()...)
		return nil, err
	}

	success := resp.StatusCode < 400
	if !success {
		atomic.AddInt64(&t.metrics.FailedRequests, 1)
	}

	fields := log.NewFields().
		WithRequestID(requestID).
		WithHTTPRequest(req.Method, req.URL.Path).
		WithHTTPResponse(resp.StatusCode, duration.Milliseconds(), success)
	if resp.StatusCode >= 500 {
		t.logger.WarnContext(ctx, "API request completed", fields.ToSlice()...)
	} else {
		t.logger.DebugContext(ctx, "API request completed", fields.ToSlice()...)
	}
	return resp, nil
}
