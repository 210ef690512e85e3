package notify

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gamify/internal/interfaces"
)

// NotifierFanout broadcasts a notification to every configured sink
// concurrently and reports the first failure.
type NotifierFanout struct {
	sinks []interfaces.Notifier
}

func NewNotifierFanout(sinks ...interfaces.Notifier) *NotifierFanout {
	return &NotifierFanout{sinks: sinks}
}

func (n *NotifierFanout) SendNotification(ctx context.Context, channel string, payload map[string]any) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, sink := range n.sinks {
		sink := sink
		g.Go(func() error {
			return sink.SendNotification(ctx, channel, payload)
		})
	}
	return g.Wait()
}

// NotifierMemory records notifications for inspection in tests.
type NotifierMemory struct {
	Sent []SentNotification
}

type SentNotification struct {
	Channel string
	Payload map[string]any
}

func NewNotifierMemory() *NotifierMemory {
	return &NotifierMemory{}
}

func (n *NotifierMemory) SendNotification(ctx context.Context, channel string, payload map[string]any) error {
	n.Sent = append(n.Sent, SentNotification{Channel: channel, Payload: payload})
	return nil
}
