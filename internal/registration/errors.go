package registration

import (
	"errors"
	"strings"
)

// ErrSubmitInFlight is returned when a submit is attempted while another is outstanding.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// Kind classifies why a field failed validation.
type Kind int

const (
	KindRequired Kind = iota
	KindInvalidFormat
	KindNotInteger
	KindOutOfRange
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "Required"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindNotInteger:
		return "NotInteger"
	case KindOutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

// FieldError is a single failed constraint, shown inline next to its field.
type FieldError struct {
	Field   Field
	Kind    Kind
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// Errors maps each failing field to its first failed rule.
// An empty Errors means the draft is submittable.
type Errors map[Field]FieldError

// Error joins all messages in field display order.
func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, f := range Fields {
		if fe, ok := e[f]; ok {
			msgs = append(msgs, fe.Message)
		}
	}
	return strings.Join(msgs, ", ")
}

// Message returns the message for a field, or "" when the field is valid.
func (e Errors) Message(f Field) string {
	return e[f].Message
}

// Only returns the subset of errors whose field satisfies keep.
func (e Errors) Only(keep func(Field) bool) Errors {
	out := make(Errors, len(e))
	for f, fe := range e {
		if keep(f) {
			out[f] = fe
		}
	}
	return out
}
