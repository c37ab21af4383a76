package tracker

import (
	"fmt"
	"log"
	"time"
)

// Notifier delivers a message to a target (a group chat, a report channel).
// Delivery is fire-and-forget from the core's perspective; failures are
// logged by the caller and never abort the triggering operation.
type Notifier interface {
	Notify(target, text string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(target, text string) error

func (f NotifierFunc) Notify(target, text string) error {
	return f(target, text)
}

// LogNotifier writes notifications to the process log. It stands in for a
// chat transport when none is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(target, text string) error {
	log.Printf("notify [%s]: %s", target, text)
	return nil
}

// RetryNotifier retries failed deliveries a capped number of times before
// giving up with an error. Attempts are spaced by backoff.
type RetryNotifier struct {
	Inner    Notifier
	Attempts int
	Backoff  time.Duration
}

func (n *RetryNotifier) Notify(target, text string) error {
	attempts := n.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 && n.Backoff > 0 {
			time.Sleep(n.Backoff)
		}
		if err = n.Inner.Notify(target, text); err == nil {
			return nil
		}
	}
	return fmt.Errorf("delivery to %s failed after %d attempts: %w", target, attempts, err)
}
