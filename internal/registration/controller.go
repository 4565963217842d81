package registration

import (
	"context"

	"github.com/zjrosen/asana/internal/log"
)

// SuccessRoute is where a successful booking navigates to.
const SuccessRoute = "/dashboard"

// SuccessMessage is the notification shown after a booking is accepted.
const SuccessMessage = "Payment is successful"

// State is the form's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Confirmation is what the booking endpoint returned for an accepted record.
type Confirmation struct {
	RequestID  string
	StatusCode int
	Body       []byte
	Record     Record
}

// Booker sends a record to the booking endpoint.
type Booker interface {
	Book(ctx context.Context, rec Record) (Confirmation, error)
}

// NoticeKind selects the notification style.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a transient notification produced by a finished submission.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Outcome tells the caller what to show and where to go after a submission completes.
// Navigate is empty when the view should stay on the form.
type Outcome struct {
	Notice       Notice
	Navigate     string
	Confirmation *Confirmation
	Err          error
}

// Controller owns one form instance: its draft, touched set, current errors
// and submission state. It is driven from a single event loop and is not
// safe for concurrent use.
type Controller struct {
	booker  Booker
	draft   Draft
	touched map[Field]bool
	errs    Errors
	state   State
}

// NewController creates an empty form that submits through booker.
func NewController(booker Booker) *Controller {
	return &Controller{
		booker:  booker,
		touched: make(map[Field]bool),
		errs:    Validate(Draft{}),
		state:   StateIdle,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Draft returns the current field values.
func (c *Controller) Draft() Draft {
	return c.draft
}

// Touched reports whether the user has interacted with a field.
func (c *Controller) Touched(f Field) bool {
	return c.touched[f]
}

// Errors returns every current validation error, touched or not.
func (c *Controller) Errors() Errors {
	return c.errs
}

// VisibleErrors returns the errors of touched fields only.
func (c *Controller) VisibleErrors() Errors {
	return c.errs.Only(c.Touched)
}

// CanSubmit reports whether a submit would be accepted right now.
func (c *Controller) CanSubmit() bool {
	return c.state != StateSubmitting
}

// SetField records a user edit. An outstanding submission keeps the form in
// StateSubmitting; any other state moves to StateEditing.
func (c *Controller) SetField(f Field, value string) {
	if _, ok := schema[f]; !ok {
		return
	}
	c.draft = c.draft.Set(f, value)
	c.touched[f] = true
	c.errs = Validate(c.draft)
	if c.state != StateSubmitting {
		c.state = StateEditing
	}
	log.Debug(log.CatForm, "field set", "field", f, "valid", c.errs.Message(f) == "")
}

// Begin validates the whole draft and, when it is submittable, moves to
// StateSubmitting and returns the record to send. On validation failure every
// field is marked touched and the Errors are returned.
func (c *Controller) Begin() (Record, error) {
	if c.state == StateSubmitting {
		return Record{}, ErrSubmitInFlight
	}

	c.errs = Validate(c.draft)
	if len(c.errs) > 0 {
		for _, f := range Fields {
			c.touched[f] = true
		}
		c.state = StateEditing
		log.Info(log.CatForm, "submit blocked by validation", "errors", len(c.errs))
		return Record{}, c.errs
	}

	rec, err := c.draft.Record()
	if err != nil {
		return Record{}, err
	}
	c.state = StateSubmitting
	log.Info(log.CatForm, "submitting", "slot", rec.Slot)
	return rec, nil
}

// Complete finishes the outstanding submission with the booker's result.
// Calls outside StateSubmitting are ignored and return a zero Outcome.
func (c *Controller) Complete(conf Confirmation, err error) Outcome {
	if c.state != StateSubmitting {
		log.Warn(log.CatForm, "stale submission result ignored", "state", c.state)
		return Outcome{}
	}

	if err != nil {
		c.state = StateFailed
		log.ErrorErr(log.CatForm, "submission failed", err)
		return Outcome{
			Notice: Notice{Kind: NoticeError, Message: err.Error()},
			Err:    err,
		}
	}

	c.reset()
	c.state = StateSucceeded
	log.Info(log.CatForm, "submission succeeded", "request_id", conf.RequestID)
	return Outcome{
		Notice:       Notice{Kind: NoticeSuccess, Message: SuccessMessage},
		Navigate:     SuccessRoute,
		Confirmation: &conf,
	}
}

// Submit runs a complete submission synchronously: Begin, one Book call, Complete.
// Validation and in-flight errors are returned directly with no request made;
// booking failures are reported through Outcome.Err.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	rec, err := c.Begin()
	if err != nil {
		return Outcome{}, err
	}
	conf, err := c.booker.Book(ctx, rec)
	return c.Complete(conf, err), nil
}

// Reset clears the form back to an empty, untouched draft.
// It is a no-op while a submission is outstanding.
func (c *Controller) Reset() {
	if c.state == StateSubmitting {
		return
	}
	c.reset()
	c.state = StateIdle
}

func (c *Controller) reset() {
	c.draft = Draft{}
	c.touched = make(map[Field]bool)
	c.errs = Validate(c.draft)
}
