package notify

import (
	"context"
	"errors"
)

// Multi fans one message out to several notifiers sequentially. Every
// notifier is attempted even when an earlier one fails; failures are
// joined into one error.
type Multi struct {
	notifiers []Notifier
}

// NewMulti creates a fan-out notifier.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Compile-time interface check.
var _ Notifier = (*Multi)(nil)

// Send delivers to all channels, aggregating errors.
func (m *Multi) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
