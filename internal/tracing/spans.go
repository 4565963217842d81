package tracing

// Span names.
const (
	SpanBookingSubmit = "booking.submit"
)

// Span attribute keys for booking requests.
const (
	AttrRequestID     = "booking.request_id"
	AttrEndpoint      = "http.url"
	AttrMethod        = "http.method"
	AttrStatusCode    = "http.status_code"
	AttrSlot          = "booking.slot"
	AttrResponseBytes = "http.response_content_length"
)
