package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/forwarder"
)

// StartForwarder runs the daemon that moves committed events from the outbox
// topic to their real topics. It returns once the daemon is running.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.cfg.Forwarder {
		return fmt.Errorf("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return fmt.Errorf("events: forwarder already started")
	}

	outbox, err := newSQLSubscriber(q.db, q.cfg.ConsumerGroup+"-forwarder", q.wlog)
	if err != nil {
		return err
	}
	target, err := newSQLPublisher(q.db, true, q.wlog)
	if err != nil {
		_ = outbox.Close()
		return err
	}

	fwd, err := forwarder.NewForwarder(outbox, target, q.wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = target.Close()
		_ = outbox.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started", "topic", forwarderTopic)
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}
