// Package events is the inventory event bus: Watermill over the PostgreSQL
// SQL transport.
//
// The API process publishes inside the write transaction (PublishTx) through
// the forwarder queue, so an event exists only if its write committed. The
// worker process subscribes with a shared consumer group, so each event is
// handled by one worker instance. Handlers must be idempotent; a failing
// handler is retried per RetryPolicy, then the message is Nacked.
package events

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stocktracker/pkg/config"
	"github.com/ghuser/stocktracker/pkg/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	forwarderTopic  = "inventory_outbox"
)

// Config selects the bus topology.
type Config struct {
	DatabaseURL string
	// ConsumerGroup is shared by all worker instances.
	ConsumerGroup string
	// Forwarder routes publishes through the durable outbox topic.
	Forwarder bool
	Retry     RetryPolicy
}

// ConfigFrom derives the bus Config from application config.
func ConfigFrom(cfg *config.Config, useForwarder bool) Config {
	return Config{
		DatabaseURL:   cfg.DatabaseURL,
		ConsumerGroup: cfg.ServiceName + "-inventory-worker",
		Forwarder:     useForwarder,
		Retry:         DefaultRetryPolicy,
	}
}

// EventBus publishes and subscribes inventory events through PostgreSQL.
type EventBus struct {
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	db         *sql.DB
	cfg        Config
	log        logger.Logger
	wlog       watermill.LoggerAdapter
	wg         sync.WaitGroup
	closeOnce  sync.Once
	closeErr   error
}

// NewEventBus is the worker-side bus: direct publishes, consumer-group subscriptions.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return New(ConfigFrom(cfg, false), log)
}

// NewEventBusWithForwarder is the API-side bus. Call StartForwarder after
// construction so queued events reach their topics.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return New(ConfigFrom(cfg, true), log)
}

// New opens a connection pool for the bus and creates the Watermill tables on
// first use.
func New(c Config, log logger.Logger) (*EventBus, error) {
	if c.Retry.Attempts <= 0 {
		c.Retry = DefaultRetryPolicy
	}

	db, err := sql.Open("pgx", c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	wlog := &slogAdapter{log: log.With("component", "events")}

	pub, err := newSQLPublisher(db, true, wlog)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sub, err := newSQLSubscriber(db, c.ConsumerGroup, wlog)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}

	return &EventBus{
		publisher:  wrapForwarder(pub, c.Forwarder),
		subscriber: sub,
		db:         db,
		cfg:        c,
		log:        log,
		wlog:       wlog,
	}, nil
}

func newSQLPublisher(db watermillsql.ContextExecutor, autoInit bool, wlog watermill.LoggerAdapter) (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: autoInit,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func newSQLSubscriber(db *sql.DB, group string, wlog watermill.LoggerAdapter) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber %s: %w", group, err)
	}
	return sub, nil
}

// wrapForwarder envelopes publishes for the outbox topic when enabled.
func wrapForwarder(pub message.Publisher, enabled bool) message.Publisher {
	if !enabled {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
}

// Ping checks the bus database connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops subscriptions and the forwarder, waits up to 30s for in-flight
// handlers, then releases the publisher and pool. Safe to call twice.
func (q *EventBus) Close() error {
	q.closeOnce.Do(func() { q.closeErr = q.close() })
	return q.closeErr
}

func (q *EventBus) close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return q.db.Close()
}
