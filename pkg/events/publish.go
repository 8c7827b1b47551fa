package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Metadata keys set by NewJSONMessage.
const (
	MetadataEventID      = "event_id"
	MetadataEventVersion = "event_version"
)

// NewJSONMessage marshals payload into a message carrying the event id and
// schema version as metadata.
func NewJSONMessage(eventID string, version int, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetadataEventID, eventID)
	msg.Metadata.Set(MetadataEventVersion, strconv.Itoa(version))
	return msg, nil
}

// NewTxPublisher returns a publisher whose inserts run inside tx. Tables are
// expected to exist already, since New initializes them.
func (q *EventBus) NewTxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := newSQLPublisher(tx, false, q.wlog)
	if err != nil {
		return nil, err
	}
	return wrapForwarder(pub, q.cfg.Forwarder), nil
}

// PublishTx publishes msgs to topic inside tx. The event is stored only if
// the surrounding write commits.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	pub, err := q.NewTxPublisher(tx)
	if err != nil {
		return err
	}
	injectTrace(ctx, msgs)
	if err := pub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s in tx: %w", topic, err)
	}
	return nil
}

// Publish sends msgs to topic outside any transaction.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// injectTrace copies the OTel trace context of ctx into message metadata.
func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

// extractTrace restores the publisher's trace context onto ctx.
func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
