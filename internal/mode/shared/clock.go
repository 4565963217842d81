package shared

import (
	"fmt"
	"time"
)

// Clock provides the current time. Use RealClock for production
// and FixedClock for testing.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// BookedAgo describes how long ago a booking was accepted, e.g. "just now",
// "5m ago", "2h ago". Older bookings show the calendar date.
func BookedAgo(at, now time.Time) string {
	d := now.Sub(at)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return "on " + at.Format("Jan 2, 2006")
	}
}
