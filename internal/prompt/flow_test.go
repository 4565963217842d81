package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/asana/internal/registration"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int

	selectConfigs []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type stubBooker struct {
	errs  []error
	calls []registration.Record
}

func (b *stubBooker) Book(_ context.Context, rec registration.Record) (registration.Confirmation, error) {
	b.calls = append(b.calls, rec)
	if len(b.errs) > 0 {
		err := b.errs[0]
		b.errs = b.errs[1:]
		if err != nil {
			return registration.Confirmation{}, err
		}
	}
	return registration.Confirmation{RequestID: "req-1", StatusCode: 201, Record: rec}, nil
}

// Text inputs in field order: first, last, email, mobile, age.
func validInputs() []string {
	return []string{"Asha", "Iyer", "asha@example.com", "9876543210", "30"}
}

func TestFlow_Success(t *testing.T) {
	driver := &stubDriver{
		inputs:    validInputs(),
		selectIdx: []int{1, 2},
		confirm:   []bool{true},
	}
	booker := &stubBooker{}

	out, err := NewFlow(driver, registration.NewController(booker)).Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, "/dashboard", out.Navigate)
	require.Len(t, booker.calls, 1)
	require.Equal(t, registration.GenderFemale, booker.calls[0].Gender)
	require.Equal(t, registration.SlotEvening, booker.calls[0].Slot)
	require.Equal(t, []string{"✓ Payment is successful"}, driver.infoMessages)
	require.Equal(t, []string{"Morning (6-7 AM)", "Afternoon (12-1 PM)", "Evening (5-6 PM)", "Night (8-9 PM)"}, driver.selectConfigs[1].Options)
}

func TestFlow_RepromptsUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Asha", "Iyer", "asha@", "asha@example.com", "12345", "9876543210", "17", "30"},
		selectIdx: []int{0, 0},
		confirm:   []bool{true},
	}
	booker := &stubBooker{}

	_, err := NewFlow(driver, registration.NewController(booker)).Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, []string{
		"✗ Invalid email",
		"✗ Mobile number must be 10 digits",
		"✗ Age must be at least 18 years old",
		"✓ Payment is successful",
	}, driver.infoMessages)
	require.Equal(t, 30, booker.calls[0].Age)
}

func TestFlow_DeclineSubmitMakesNoRequest(t *testing.T) {
	driver := &stubDriver{
		inputs:    validInputs(),
		selectIdx: []int{0, 0},
		confirm:   []bool{false},
	}
	booker := &stubBooker{}

	_, err := NewFlow(driver, registration.NewController(booker)).Run(context.Background())

	require.ErrorIs(t, err, ErrAborted)
	require.Empty(t, booker.calls)
}

func TestFlow_RetryAfterFailure(t *testing.T) {
	driver := &stubDriver{
		inputs:    validInputs(),
		selectIdx: []int{2, 3},
		confirm:   []bool{true, true},
	}
	booker := &stubBooker{errs: []error{errors.New("request failed with status code 503")}}
	ctrl := registration.NewController(booker)

	out, err := NewFlow(driver, ctrl).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, booker.calls, 2)
	require.Equal(t, booker.calls[0], booker.calls[1], "retry resubmits the kept draft")
	require.Equal(t, registration.StateSucceeded, ctrl.State())
	require.Equal(t, "/dashboard", out.Navigate)
	require.Equal(t, []string{"✗ request failed with status code 503", "✓ Payment is successful"}, driver.infoMessages)
}

func TestFlow_FailureWithoutRetry(t *testing.T) {
	driver := &stubDriver{
		inputs:    validInputs(),
		selectIdx: []int{0, 0},
		confirm:   []bool{true, false},
	}
	booker := &stubBooker{errs: []error{errors.New("boom")}}
	ctrl := registration.NewController(booker)

	out, err := NewFlow(driver, ctrl).Run(context.Background())

	require.ErrorIs(t, err, ErrAborted)
	require.Error(t, out.Err)
	require.Equal(t, registration.StateFailed, ctrl.State())
}

func TestFlow_DriverErrorStops(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Asha"}}

	_, err := NewFlow(driver, registration.NewController(&stubBooker{})).Run(context.Background())

	require.EqualError(t, err, "no input scripted")
}
