package tracing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// FileExporter appends spans to a JSONL file, one span per line.
// It implements sdktrace.SpanExporter.
type FileExporter struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileExporter opens path for appending, creating it and its parent directories.
func NewFileExporter(path string) (*FileExporter, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o750); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}

	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- path is cleaned above
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &FileExporter{file: file}, nil
}

// ExportSpans writes each span as a SpanRecord line.
func (e *FileExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file == nil {
		return fmt.Errorf("exporter is shut down")
	}
	encoder := json.NewEncoder(e.file)
	for _, span := range spans {
		if err := encoder.Encode(spanToRecord(span)); err != nil {
			return fmt.Errorf("encode span: %w", err)
		}
	}
	return nil
}

// Shutdown closes the file. Further exports fail.
func (e *FileExporter) Shutdown(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	return err
}

// SpanRecord is one exported span. Booking attributes are promoted to
// top-level fields so a trace file reads as a log of booking attempts:
//
//	jq 'select(.status_code >= 400) | .request_id' traces.jsonl
type SpanRecord struct {
	TraceID    string    `json:"trace_id"`
	SpanID     string    `json:"span_id"`
	Name       string    `json:"name"`
	Start      time.Time `json:"start"`
	DurationMs float64   `json:"duration_ms"`
	Outcome    string    `json:"outcome"` // "ok", "error" or "unset"
	Error      string    `json:"error,omitempty"`

	RequestID  string `json:"request_id,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"`
	Slot       string `json:"slot,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`

	// Attributes holds whatever was not promoted above.
	Attributes map[string]any `json:"attributes,omitempty"`
}

func spanToRecord(span sdktrace.ReadOnlySpan) SpanRecord {
	sc := span.SpanContext()
	record := SpanRecord{
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		Name:       span.Name(),
		Start:      span.StartTime(),
		DurationMs: float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000.0,
		Outcome:    outcome(span.Status().Code),
		Error:      span.Status().Description,
	}

	for _, kv := range span.Attributes() {
		switch string(kv.Key) {
		case AttrRequestID:
			record.RequestID = kv.Value.AsString()
		case AttrEndpoint:
			record.Endpoint = kv.Value.AsString()
		case AttrSlot:
			record.Slot = kv.Value.AsString()
		case AttrStatusCode:
			record.StatusCode = int(kv.Value.AsInt64())
		default:
			if record.Attributes == nil {
				record.Attributes = map[string]any{}
			}
			record.Attributes[string(kv.Key)] = kv.Value.AsInterface()
		}
	}
	return record
}

func outcome(code codes.Code) string {
	switch code {
	case codes.Ok:
		return "ok"
	case codes.Error:
		return "error"
	default:
		return "unset"
	}
}
