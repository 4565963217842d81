package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeBooker records every call and returns a canned result.
type fakeBooker struct {
	calls []Record
	conf  Confirmation
	err   error
}

func (b *fakeBooker) Book(_ context.Context, rec Record) (Confirmation, error) {
	b.calls = append(b.calls, rec)
	if b.err != nil {
		return Confirmation{}, b.err
	}
	conf := b.conf
	conf.Record = rec
	return conf, nil
}

func fill(c *Controller, d Draft) {
	for _, f := range Fields {
		c.SetField(f, d.Get(f))
	}
}

func TestController_InitialState(t *testing.T) {
	c := NewController(&fakeBooker{})

	require.Equal(t, StateIdle, c.State())
	require.Equal(t, Draft{}, c.Draft())
	require.Empty(t, c.VisibleErrors())
	require.Len(t, c.Errors(), len(Fields))
	require.True(t, c.CanSubmit())
}

func TestController_SetFieldShowsOnlyTouchedErrors(t *testing.T) {
	c := NewController(&fakeBooker{})

	c.SetField(FieldMobile, "123")

	require.Equal(t, StateEditing, c.State())
	require.True(t, c.Touched(FieldMobile))
	require.False(t, c.Touched(FieldEmail))
	visible := c.VisibleErrors()
	require.Len(t, visible, 1)
	require.Equal(t, "Mobile number must be 10 digits", visible.Message(FieldMobile))
}

func TestController_SetFieldClearsErrorWhenFixed(t *testing.T) {
	c := NewController(&fakeBooker{})

	c.SetField(FieldAge, "12")
	require.Equal(t, "Age must be at least 18 years old", c.VisibleErrors().Message(FieldAge))

	c.SetField(FieldAge, "21")
	require.Empty(t, c.VisibleErrors())
}

func TestController_SetFieldIgnoresUnknownField(t *testing.T) {
	c := NewController(&fakeBooker{})

	c.SetField(Field("nickname"), "x")

	require.Equal(t, StateIdle, c.State())
	require.Equal(t, Draft{}, c.Draft())
}

func TestController_SubmitInvalidMakesNoRequest(t *testing.T) {
	booker := &fakeBooker{}
	c := NewController(booker)
	c.SetField(FieldFirstName, "Asha")

	out, err := c.Submit(context.Background())

	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Empty(t, booker.calls)
	require.Equal(t, Outcome{}, out)
	require.Equal(t, StateEditing, c.State())
	for _, f := range Fields {
		require.True(t, c.Touched(f), "field %s should be touched", f)
	}
	require.Len(t, c.VisibleErrors(), len(Fields)-1)
}

func TestController_SubmitSuccess(t *testing.T) {
	booker := &fakeBooker{conf: Confirmation{RequestID: "req-1", StatusCode: 201, Body: []byte(`{"ok":true}`)}}
	c := NewController(booker)
	fill(c, validDraft())

	out, err := c.Submit(context.Background())

	require.NoError(t, err)
	require.Len(t, booker.calls, 1)
	require.Equal(t, 30, booker.calls[0].Age)
	require.Equal(t, Notice{Kind: NoticeSuccess, Message: "Payment is successful"}, out.Notice)
	require.Equal(t, "/dashboard", out.Navigate)
	require.NotNil(t, out.Confirmation)
	require.Equal(t, "req-1", out.Confirmation.RequestID)
	require.Equal(t, "Asha", out.Confirmation.Record.FirstName)
	require.NoError(t, out.Err)

	require.Equal(t, StateSucceeded, c.State())
	require.Equal(t, Draft{}, c.Draft())
	require.Empty(t, c.VisibleErrors())
	require.True(t, c.CanSubmit())
}

func TestController_SubmitFailureKeepsDraft(t *testing.T) {
	failure := errors.New("request failed with status code 500")
	booker := &fakeBooker{err: failure}
	c := NewController(booker)
	fill(c, validDraft())

	out, err := c.Submit(context.Background())

	require.NoError(t, err)
	require.Len(t, booker.calls, 1)
	require.Equal(t, NoticeError, out.Notice.Kind)
	require.Equal(t, "request failed with status code 500", out.Notice.Message)
	require.ErrorIs(t, out.Err, failure)
	require.Empty(t, out.Navigate)
	require.Nil(t, out.Confirmation)

	require.Equal(t, StateFailed, c.State())
	require.Equal(t, validDraft(), c.Draft())
	require.True(t, c.CanSubmit())
}

func TestController_ResubmitAfterFailure(t *testing.T) {
	booker := &fakeBooker{err: errors.New("boom")}
	c := NewController(booker)
	fill(c, validDraft())

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateFailed, c.State())

	booker.err = nil
	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, booker.calls, 2)
	require.Equal(t, StateSucceeded, c.State())
	require.Equal(t, SuccessRoute, out.Navigate)
}

func TestController_BeginRefusesSecondSubmit(t *testing.T) {
	c := NewController(&fakeBooker{})
	fill(c, validDraft())

	rec, err := c.Begin()
	require.NoError(t, err)
	require.Equal(t, "Iyer", rec.LastName)
	require.Equal(t, StateSubmitting, c.State())
	require.False(t, c.CanSubmit())

	_, err = c.Begin()
	require.ErrorIs(t, err, ErrSubmitInFlight)

	_, err = c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitInFlight)
	require.Equal(t, StateSubmitting, c.State())
}

func TestController_EditWhileSubmittingStaysSubmitting(t *testing.T) {
	c := NewController(&fakeBooker{})
	fill(c, validDraft())
	_, err := c.Begin()
	require.NoError(t, err)

	c.SetField(FieldFirstName, "Ravi")

	require.Equal(t, StateSubmitting, c.State())
	require.Equal(t, "Ravi", c.Draft().FirstName)
}

func TestController_CompleteOutsideSubmittingIsIgnored(t *testing.T) {
	c := NewController(&fakeBooker{})
	fill(c, validDraft())

	out := c.Complete(Confirmation{}, nil)

	require.Equal(t, Outcome{}, out)
	require.Equal(t, StateEditing, c.State())
	require.Equal(t, validDraft(), c.Draft())
}

func TestController_Reset(t *testing.T) {
	c := NewController(&fakeBooker{})
	fill(c, validDraft())

	c.Reset()

	require.Equal(t, StateIdle, c.State())
	require.Equal(t, Draft{}, c.Draft())
	require.False(t, c.Touched(FieldEmail))
}

func TestController_ResetIgnoredWhileSubmitting(t *testing.T) {
	c := NewController(&fakeBooker{})
	fill(c, validDraft())
	_, err := c.Begin()
	require.NoError(t, err)

	c.Reset()

	require.Equal(t, StateSubmitting, c.State())
	require.Equal(t, validDraft(), c.Draft())
}

// Property: a submit issues a request iff the draft validates, and at most one request per submit.
func TestController_SubmitRequestIffValidProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := validDraft()
		d.Mobile = rapid.SampledFrom([]string{"9876543210", "98765", ""}).Draw(rt, "mobile")
		d.Age = rapid.SampledFrom([]string{"18", "65", "17", "66", "2.5", ""}).Draw(rt, "age")
		d.Slot = rapid.SampledFrom([]string{"Morning", "Night", "Noon", ""}).Draw(rt, "slot")
		fail := rapid.Bool().Draw(rt, "fail")

		booker := &fakeBooker{}
		if fail {
			booker.err = errors.New("down")
		}
		c := NewController(booker)
		fill(c, d)

		out, err := c.Submit(context.Background())

		valid := len(Validate(d)) == 0
		if !valid {
			require.Error(rt, err)
			require.Empty(rt, booker.calls)
			require.Equal(rt, StateEditing, c.State())
			return
		}
		require.NoError(rt, err)
		require.Len(rt, booker.calls, 1)
		require.NotEqual(rt, StateSubmitting, c.State())
		if fail {
			require.Equal(rt, StateFailed, c.State())
			require.Equal(rt, d, c.Draft())
			require.Empty(rt, out.Navigate)
		} else {
			require.Equal(rt, StateSucceeded, c.State())
			require.Equal(rt, Draft{}, c.Draft())
			require.Equal(rt, SuccessRoute, out.Navigate)
		}
	})
}
