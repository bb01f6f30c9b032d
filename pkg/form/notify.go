package form

import "context"

// Notifier delivers a blocking, user-facing notice. Notify returns once the
// user has acknowledged the message (or the context ends); the concrete UI
// decides whether that is a dialog, a prompt or a banner.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, message string) error {
	return f(ctx, message)
}

// Notices collects messages instead of blocking. Request/response front ends
// use it to render pending notices with the next response.
type Notices struct {
	messages []string
}

// Notify records message.
func (n *Notices) Notify(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

// Messages returns the recorded messages in order.
func (n *Notices) Messages() []string {
	if n == nil || len(n.messages) == 0 {
		return nil
	}
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, string) error { return nil }
