package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"weblog-analyzer/internal/events"
	"weblog-analyzer/internal/shared/loggers"
	"weblog-analyzer/internal/shared/metrics"
	"weblog-analyzer/internal/shared/svcerrors"
)

// HostLookupHandler performs one lookup. It is called concurrently from every worker lane.
type HostLookupHandler interface {
	HandleHostLookup(ctx context.Context, event events.HostLookupEvent) *svcerrors.ServiceError
}

type HostLookupConsumer interface {
	Start(ctx context.Context)
	// Wait blocks until every lane is drained after the queue was closed.
	Wait()
	// Stop abandons pending events and waits for the workers to return.
	Stop()
}

type hostLookupConsumer struct {
	queue   *PartitionedQueue[events.HostLookupEvent]
	handler HostLookupHandler

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewHostLookupConsumer(queue *PartitionedQueue[events.HostLookupEvent], handler HostLookupHandler, logger loggers.Logger) HostLookupConsumer {
	return &hostLookupConsumer{
		queue:   queue,
		handler: handler,
		stopCh:  make(chan struct{}),
		logger:  logger,
	}
}

// Start spawns 1 worker goroutine per partition. Each worker runs one lookup at a time.
func (consumer *hostLookupConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		partitionIndex := partitionIndex
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

func (consumer *hostLookupConsumer) Wait() {
	consumer.wg.Wait()
}

func (consumer *hostLookupConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *hostLookupConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.HostLookupEvent) {
	workerCtx := consumer.logger.With().
		Str(loggers.FieldWorkerId, fmt.Sprintf("%d", partitionIndex)).
		Logger().WithContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			consumer.handle(workerCtx, event)
		}
	}
}

func (consumer *hostLookupConsumer) handle(ctx context.Context, event events.HostLookupEvent) {
	// A panicking lookup must not take the worker lane down with it.
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Str(loggers.FieldHost, event.Address).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricHostLookupConsumedTotal.WithLabelValues(streamHostLookup, svcErr.Code).Inc()
		}
	}()

	if svcErr := consumer.handler.HandleHostLookup(ctx, event); svcErr != nil {
		metricHostLookupConsumedTotal.WithLabelValues(streamHostLookup, svcErr.Code).Inc()
		return
	}
	metricHostLookupConsumedTotal.WithLabelValues(streamHostLookup, metrics.ValueNoError).Inc()
}
