package prompt

import (
	"context"
	"fmt"

	"github.com/zjrosen/asana/internal/log"
	"github.com/zjrosen/asana/internal/registration"
)

// Flow walks a registration.Controller through every field, submits it and
// offers a retry when the booking request fails.
type Flow struct {
	driver Driver
	ctrl   *registration.Controller
}

// NewFlow creates a flow that asks through driver and submits through ctrl.
func NewFlow(driver Driver, ctrl *registration.Controller) *Flow {
	return &Flow{driver: driver, ctrl: ctrl}
}

// Run asks for each field until it validates, then submits. It returns the
// final Outcome, or ErrAborted when the user declines to submit or retry.
func (f *Flow) Run(ctx context.Context) (registration.Outcome, error) {
	for _, field := range registration.Fields {
		if err := f.ask(ctx, field); err != nil {
			return registration.Outcome{}, err
		}
	}

	ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Proceed to pay?", Default: true})
	if err != nil {
		return registration.Outcome{}, err
	}
	if !ok {
		return registration.Outcome{}, ErrAborted
	}

	for {
		out, err := f.ctrl.Submit(ctx)
		if err != nil {
			return registration.Outcome{}, err
		}
		if err := f.driver.Info(ctx, noticeLine(out.Notice)); err != nil {
			return out, err
		}
		if out.Err == nil {
			return out, nil
		}

		retry, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if err != nil {
			return out, err
		}
		if !retry {
			return out, ErrAborted
		}
		log.Info(log.CatForm, "Retrying booking after failure")
	}
}

// ask prompts for one field until its value passes validation.
func (f *Flow) ask(ctx context.Context, field registration.Field) error {
	for {
		value, err := f.prompt(ctx, field)
		if err != nil {
			return err
		}
		f.ctrl.SetField(field, value)

		msg := f.ctrl.Errors().Message(field)
		if msg == "" {
			return nil
		}
		if err := f.driver.Info(ctx, "✗ "+msg); err != nil {
			return err
		}
	}
}

func (f *Flow) prompt(ctx context.Context, field registration.Field) (string, error) {
	current := f.ctrl.Draft().Get(field)

	values, labels := choices(field)
	if values == nil {
		return f.driver.Input(ctx, InputConfig{
			Message: field.Label() + ":",
			Default: current,
			Help:    help(field),
		})
	}

	def := -1
	for i, v := range values {
		if v == current {
			def = i
		}
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      field.Label() + ":",
		Options:      labels,
		DefaultIndex: def,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", nil
	}
	return values[idx], nil
}

// choices returns the option values and labels for select fields, or nil for text fields.
func choices(field registration.Field) (values, labels []string) {
	switch field {
	case registration.FieldGender:
		for _, g := range registration.Genders {
			values = append(values, string(g))
		}
		return values, values
	case registration.FieldSlot:
		for _, s := range registration.Slots {
			values = append(values, string(s))
			labels = append(labels, fmt.Sprintf("%s (%s)", s, s.Hours()))
		}
		return values, labels
	}
	return nil, nil
}

func help(field registration.Field) string {
	switch field {
	case registration.FieldMobile:
		return "Exactly 10 digits"
	case registration.FieldAge:
		return fmt.Sprintf("Whole years, %d to %d", registration.MinAge, registration.MaxAge)
	}
	return ""
}

func noticeLine(n registration.Notice) string {
	if n.Kind == registration.NoticeError {
		return "✗ " + n.Message
	}
	return "✓ " + n.Message
}
