package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatBooking formats an accepted booking as JSON
func (f *Formatter) FormatBooking(booking BookingDTO) error {
	return f.encode(booking)
}

// FormatFieldErrors formats validation failures as JSON
func (f *Formatter) FormatFieldErrors(errs []FieldErrorDTO) error {
	return f.encode(map[string]any{"errors": errs})
}

// FormatOptions formats the select options as JSON
func (f *Formatter) FormatOptions(options OptionsDTO) error {
	return f.encode(options)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
