// Package booking sends registrations to the remote booking endpoint.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/asana/internal/log"
	"github.com/zjrosen/asana/internal/registration"
	"github.com/zjrosen/asana/internal/tracing"
)

// RequestIDHeader carries the per-attempt correlation ID.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes caps how much of a response is kept.
const maxBodyBytes = 1 << 20

// Client posts registrations as JSON. It implements registration.Booker.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	tracer   trace.Tracer
	newID    func() string
}

var _ registration.Booker = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each Book call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTracer records a client span per request.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New creates a client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     http.DefaultClient,
		tracer:   noop.NewTracerProvider().Tracer("noop"),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Book sends one POST carrying rec. Any 2xx is success and the response body
// is returned as the confirmation. Non-2xx responses and transport failures
// are returned as *SubmissionError. There are no retries.
func (c *Client) Book(ctx context.Context, rec registration.Record) (registration.Confirmation, error) {
	requestID := c.newID()
	conf := registration.Confirmation{RequestID: requestID, Record: rec}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, tracing.SpanBookingSubmit,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrRequestID, requestID),
			attribute.String(tracing.AttrEndpoint, c.endpoint),
			attribute.String(tracing.AttrMethod, http.MethodPost),
			attribute.String(tracing.AttrSlot, string(rec.Slot)),
		),
	)
	defer span.End()

	fail := func(err *SubmissionError) (registration.Confirmation, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatBooking, "booking failed", err, "request_id", requestID)
		return conf, err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fail(&SubmissionError{Err: fmt.Errorf("encoding record: %w", err)})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fail(&SubmissionError{Err: fmt.Errorf("building request: %w", err)})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	log.Debug(log.CatBooking, "posting booking", "endpoint", c.endpoint, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(&SubmissionError{Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(&SubmissionError{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)})
	}

	conf.StatusCode = resp.StatusCode
	conf.Body = body
	span.SetAttributes(
		attribute.Int(tracing.AttrStatusCode, resp.StatusCode),
		attribute.Int(tracing.AttrResponseBytes, len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(&SubmissionError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(body),
			Body:       body,
		})
	}

	span.SetStatus(codes.Ok, "")
	log.Info(log.CatBooking, "booking accepted", "status", resp.StatusCode, "request_id", requestID)
	return conf, nil
}

// serverMessage extracts a "message" or "error" string from a JSON error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(payload.Error)
}
