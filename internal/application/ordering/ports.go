package ordering

// Notifier dispatches notification mail asynchronously. Delivery is
// best-effort; implementations must never block or fail the caller.
type Notifier interface {
	Dispatch(to, subject, body string)
}

// NopNotifier discards every notification. Used when mail is not configured.
type NopNotifier struct{}

// Dispatch discards the message
func (NopNotifier) Dispatch(string, string, string) {}
