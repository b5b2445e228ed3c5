package notify

import (
	"context"
	"time"
)

// Event kinds recognised by downstream sinks.
const (
	KindIntakeReceived  = "intake_received"
	KindBookingReceived = "booking_received"
	KindShiftMissed     = "shift_missed"
	KindShiftReminder   = "shift_reminder"
)

// Event is the canonical payload for operational notifications: a new intake
// submission, a booking request, or a shift the reaper marked missed.
type Event struct {
	Kind       string
	Title      string
	OccurredAt time.Time
	Fields     map[string]string
}

// Sink describes a destination capable of consuming notification events.
type Sink interface {
	Send(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, event Event) error

// Send implements the Sink interface.
func (f SinkFunc) Send(ctx context.Context, event Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}
