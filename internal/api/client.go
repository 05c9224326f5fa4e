// Package api is the client for the remote finance REST API. Every response
// is normalized into either a parsed Body or an *Error.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/log"
	"fintrack/internal/session"
)

// RequestOptions describes one call. Method defaults to GET. Body is sent
// as is; Headers override the defaults.
type RequestOptions struct {
	Method  string
	Body    []byte
	Headers map[string]string
}

// Client is stateless apart from counters and safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
	metrics *Metrics
	newID   func() string
}

type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
}

// WithHTTPClient uses hc as the base client. Its transport is wrapped, the
// client itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithTimeout bounds every call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

func WithLogger(l *log.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

func NewClient(baseURL string, opts ...Option) *Client {
	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Discard()
	}
	logger := o.logger.WithComponent(log.ComponentAPI)

	hc := &http.Client{}
	if o.httpClient != nil {
		copied := *o.httpClient
		hc = &copied
	}
	if o.timeout > 0 {
		hc.Timeout = o.timeout
	}
	metrics := &Metrics{}
	hc.Transport = newLoggingTransport(hc.Transport, logger, metrics)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger,
		metrics: metrics,
		newID:   uuid.NewString,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Metrics returns a snapshot of the call counters.
func (c *Client) Metrics() Metrics {
	return Metrics{
		TotalRequests:  atomic.LoadInt64(&c.metrics.TotalRequests),
		FailedRequests: atomic.LoadInt64(&c.metrics.FailedRequests),
		LastDuration:   atomic.LoadInt64(&c.metrics.LastDuration),
	}
}

// Do issues one request to baseURL+path. A 2xx response returns its parsed
// body whatever its shape. Any other status, or a transport failure, returns
// an *Error.
func (c *Client) Do(ctx context.Context, path string, sess session.Session, opts RequestOptions) (Body, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.Body != nil {
		reqBody = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reqBody)
	if err != nil {
		return Body{}, newTransportError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, c.newID())
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if token := sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Body{}, newTransportError(err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	body := parseBody(resp.Header.Get("Content-Type"), raw, readErr)
	if body.ParseErr != nil {
		c.logger.DebugContext(ctx, "Response body discarded",
			log.FieldPath, path, log.FieldStatusCode, resp.StatusCode, log.FieldError, body.ParseErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, newStatusError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) url(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
