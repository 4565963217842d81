package registration

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Age bounds, inclusive.
const (
	MinAge = 18
	MaxAge = 65
)

var validate = validator.New()

// rule is one predicate+message pair. check reports whether the value passes.
type rule struct {
	kind    Kind
	message string
	check   func(value string) bool
}

// schema maps each field to its ordered rules. The first failing rule wins.
var schema = map[Field][]rule{
	FieldFirstName: {
		required("First Name is required"),
	},
	FieldLastName: {
		required("Last Name is required"),
	},
	FieldMobile: {
		required("Mobile number is required"),
		{KindInvalidFormat, "Mobile number must be 10 digits", tag("len=10,number")},
	},
	FieldEmail: {
		required("Email is required"),
		{KindInvalidFormat, "Invalid email", tag("email")},
	},
	FieldAge: {
		required("Age is required"),
		{KindNotInteger, "Age must be a whole number", func(v string) bool {
			_, ok := parseAge(v)
			return ok
		}},
		{KindOutOfRange, "Age must be at least 18 years old", func(v string) bool {
			age, _ := parseAge(v)
			return age >= MinAge
		}},
		{KindOutOfRange, "Age must not exceed 65 years old", func(v string) bool {
			age, _ := parseAge(v)
			return age <= MaxAge
		}},
	},
	FieldGender: {
		{KindRequired, "Gender is required", oneOf(Genders)},
	},
	FieldSlot: {
		required("Time slot is required"),
		{KindRequired, "Invalid time slot", oneOf(Slots)},
	},
}

// Validate runs every field's rules against the draft.
// Fields are checked independently; the result holds one entry per failing field.
func Validate(d Draft) Errors {
	errs := make(Errors)
	for _, f := range Fields {
		if fe := ValidateField(f, d.Get(f)); fe != nil {
			errs[f] = *fe
		}
	}
	return errs
}

// ValidateField checks a single value against its field's rules.
// It returns nil when the value passes or the field is unknown.
func ValidateField(f Field, value string) *FieldError {
	value = strings.TrimSpace(value)
	for _, r := range schema[f] {
		if !r.check(value) {
			return &FieldError{Field: f, Kind: r.kind, Message: r.message}
		}
	}
	return nil
}

func required(message string) rule {
	return rule{KindRequired, message, func(v string) bool { return v != "" }}
}

// tag adapts a validator tag expression into a predicate.
func tag(expr string) func(string) bool {
	return func(v string) bool {
		return validate.Var(v, expr) == nil
	}
}

func oneOf[T ~string](options []T) func(string) bool {
	return func(v string) bool {
		return slices.Contains(options, T(v))
	}
}

// parseAge accepts any integral number ("30", "30.0", "+30") and rejects
// fractions and non-numbers.
func parseAge(v string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	if f < math.MinInt32 {
		return math.MinInt32, true
	}
	return int(f), true
}
