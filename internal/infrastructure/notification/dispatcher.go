package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher sends notification mail without blocking the caller.
// Delivery failures are logged, never surfaced: a failed alert must not
// fail the order that triggered it.
type Dispatcher struct {
	sender  EmailSender
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the given sender
func NewDispatcher(sender EmailSender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		logger:  logger.Named("notification"),
		timeout: 30 * time.Second,
	}
}

// Dispatch queues a message for asynchronous delivery
func (d *Dispatcher) Dispatch(to, subject, body string) {
	if to == "" {
		d.logger.Warn("Dropping notification with empty recipient",
			zap.String("subject", subject))
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.Send(ctx, to, subject, body); err != nil {
			d.logger.Error("Failed to send notification email",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err))
			return
		}
		d.logger.Info("Notification email sent",
			zap.String("to", to),
			zap.String("subject", subject))
	}()
}

// Wait blocks until all in-flight deliveries complete. Used during
// shutdown and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
