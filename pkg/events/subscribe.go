package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stocktracker/pkg/logger"
)

// RetryPolicy bounds in-process retries of a failing handler. Delays double
// after each failed attempt, starting at BaseDelay.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

// DefaultRetryPolicy retries three times at 1s, 2s.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, BaseDelay: time.Second}

// Subscribe runs handler for every message on topic until ctx ends. The
// handler context carries the publisher's trace. A handler error is retried
// per the bus RetryPolicy; after the last attempt the message is Nacked and
// the error is sent on the returned channel, which callers must drain.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, 100)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := extractTrace(ctx, msg)
			if err := q.cfg.Retry.run(msgCtx, msg, handler, q.log); err != nil {
				msg.Nack()
				select {
				case errCh <- fmt.Errorf("%s: %w", topic, err):
				default:
					q.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "error", err, "topic", topic)
				}
				continue
			}
			msg.Ack()
		}
	}()
	return errCh, nil
}

// run calls handler until it succeeds, the attempts are used up, or ctx ends.
func (p RetryPolicy) run(
	ctx context.Context,
	msg *message.Message,
	handler func(context.Context, *message.Message) error,
	log logger.Logger,
) error {
	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == p.Attempts {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"message_uuid", msg.UUID,
			"attempt", attempt,
			"max_attempts", p.Attempts,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", p.Attempts, err)
}
