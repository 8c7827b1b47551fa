// Package workflows runs the inventory maintenance jobs on Temporal.
package workflows

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	temporallog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/stocktracker/pkg/logger"
)

// TemporalClient is a connected Temporal client bound to one task queue.
type TemporalClient struct {
	Client    client.Client
	Namespace string
	TaskQueue string
	log       logger.Logger
}

// NewTemporalClient dials Temporal with OTel tracing. Workers created from
// the client inherit the interceptor. Call Close on shutdown.
func NewTemporalClient(ctx context.Context, hostPort, namespace, taskQueue string, log logger.Logger) (*TemporalClient, error) {
	tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer("stocktracker/temporal"),
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal otel interceptor: %w", err)
	}

	c, err := client.DialContext(ctx, client.Options{
		HostPort:     hostPort,
		Namespace:    namespace,
		Logger:       newTemporalLogger(log),
		Interceptors: []interceptor.ClientInterceptor{tracing},
	})
	if err != nil {
		return nil, fmt.Errorf("dial temporal server at %s: %w", hostPort, err)
	}

	log.Info("temporal client connected", "host_port", hostPort, "namespace", namespace, "task_queue", taskQueue)
	return &TemporalClient{Client: c, Namespace: namespace, TaskQueue: taskQueue, log: log}, nil
}

// NewWorker returns a worker on the client's task queue with the retention
// workflow and activities registered. The caller starts and stops it.
func (tc *TemporalClient) NewWorker(pruner HistoryPruner) worker.Worker {
	w := worker.New(tc.Client, tc.TaskQueue, worker.Options{})
	Register(w, pruner, tc.log)
	return w
}

// Close shuts down the client connection.
func (tc *TemporalClient) Close() {
	tc.Client.Close()
	tc.log.Info("temporal client closed")
}

// temporalLogger routes SDK log lines through logger.Logger.
type temporalLogger struct {
	log logger.Logger
}

func newTemporalLogger(log logger.Logger) temporallog.Logger {
	return &temporalLogger{log: log.With("component", "temporal")}
}

func (l *temporalLogger) Debug(msg string, keyvals ...interface{}) { l.log.Debug(msg, keyvals...) }
func (l *temporalLogger) Info(msg string, keyvals ...interface{})  { l.log.Info(msg, keyvals...) }
func (l *temporalLogger) Warn(msg string, keyvals ...interface{})  { l.log.Warn(msg, keyvals...) }
func (l *temporalLogger) Error(msg string, keyvals ...interface{}) { l.log.Error(msg, keyvals...) }
