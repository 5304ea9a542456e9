package streams

import (
	"context"

	"weblog-analyzer/internal/events"
)

// HostLookupProducer publishes lookup requests to a partitioned queue keyed by address, so a
// repeated address always lands on the same worker lane.
type HostLookupProducer interface {
	Produce(ctx context.Context, event events.HostLookupEvent) error
	// Close signals that no more events follow.
	Close()
}

type hostLookupProducer struct {
	queue *PartitionedQueue[events.HostLookupEvent]
}

func NewHostLookupProducer(queue *PartitionedQueue[events.HostLookupEvent]) HostLookupProducer {
	return &hostLookupProducer{
		queue: queue,
	}
}

func (producer *hostLookupProducer) Produce(ctx context.Context, event events.HostLookupEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := producer.queue.Publish(ctx, event.Address, event); err != nil {
		return err
	}
	metricHostLookupProducedTotal.WithLabelValues(streamHostLookup).Inc()
	return nil
}

func (producer *hostLookupProducer) Close() {
	producer.queue.Close()
}
