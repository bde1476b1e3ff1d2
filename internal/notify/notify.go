// Package notify delivers run outcome notifications. Delivery is a
// best-effort side channel: by contract, callers catch and log Send errors
// at the call site and never let them affect the run outcome.
package notify

import (
	"context"
	"time"
)

// Message is one job outcome notification.
type Message struct {
	JobName     string            `json:"jobName"`
	Stage       string            `json:"stage"`
	StartTime   time.Time         `json:"startTime"`
	Environment string            `json:"environment"`
	Details     map[string]string `json:"details,omitempty"`
	Error       string            `json:"error,omitempty"` // empty for success
}

// Success reports whether the message carries a successful outcome.
func (m Message) Success() bool {
	return m.Error == ""
}

// Notifier delivers messages to one channel.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
