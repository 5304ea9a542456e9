package resolvers

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"weblog-analyzer/internal/classifiers"
	"weblog-analyzer/internal/events"
	"weblog-analyzer/internal/parsers"
	"weblog-analyzer/internal/shared/loggers"
	"weblog-analyzer/internal/shared/svcerrors"
	"weblog-analyzer/internal/streams"
)

const defaultLookupTimeout = 5 * time.Second

// AddrLookup performs a reverse lookup. net.DefaultResolver.LookupAddr satisfies it.
type AddrLookup func(ctx context.Context, addr string) ([]string, error)

// ResolveResult summarizes a pre-pass.
type ResolveResult struct {
	Lines     uint64
	Addresses uint64 // distinct addresses handed to the workers
}

//go:generate mockgen -source=resolver.go -destination=./mocks/resolver_mock.go -package=mocks
type Resolver interface {
	// Resolve reads a whole log, looks up every numeric address that is missing from the cache or
	// expired, and stores the results. It returns once every lookup has finished.
	Resolve(ctx context.Context, r io.Reader) (*ResolveResult, error)
}

type ResolverOptions struct {
	Workers  int
	Timeout  time.Duration // per lookup
	CacheIPs bool          // cache unresolved addresses as themselves
	RunID    string
}

type resolver struct {
	cache  Cache
	parser parsers.RecordParser
	lookup AddrLookup
	opts   ResolverOptions
}

// NewResolver returns a pre-pass resolver. parser must not be shared with the aggregation pass.
// A nil lookup uses the system resolver.
func NewResolver(cache Cache, parser parsers.RecordParser, lookup AddrLookup, opts ResolverOptions) Resolver {
	if lookup == nil {
		lookup = net.DefaultResolver.LookupAddr
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultLookupTimeout
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &resolver{cache: cache, parser: parser, lookup: lookup, opts: opts}
}

func (r *resolver) Resolve(ctx context.Context, src io.Reader) (*ResolveResult, error) {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldComponent, "resolver").Logger()
	ctx = logger.WithContext(ctx)
	started := time.Now()

	queue := streams.NewPartitionedQueueSize[events.HostLookupEvent](r.opts.Workers, 0)
	producer := streams.NewHostLookupProducer(queue)
	consumer := streams.NewHostLookupConsumer(queue, r, logger)
	consumer.Start(ctx)

	res, err := r.scan(ctx, src, producer)
	producer.Close()
	if err != nil {
		consumer.Stop()
		return nil, err
	}
	consumer.Wait()

	elapsed := time.Since(started)
	logger.Info().Uint64("addresses", res.Addresses).Dur(loggers.FieldDuration, elapsed).Msg("dns pre-pass finished")
	return res, nil
}

// scan parses every line, silently skipping unusable ones, and queues each distinct numeric
// address that needs a lookup.
func (r *resolver) scan(ctx context.Context, src io.Reader, producer streams.HostLookupProducer) (*ResolveResult, error) {
	res := &ResolveResult{}
	seen := make(map[string]struct{})
	lr := parsers.NewLineReader(src)
	for {
		line, overlong, err := lr.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, errInternalReadFailed(err)
		}
		res.Lines++
		if overlong {
			continue
		}

		rec, err := r.parser.Parse(ctx, line)
		if err != nil {
			continue
		}
		addr := strings.ToLower(rec.Hostname)
		if !classifiers.IsAddress(addr) {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}

		expired, err := r.cache.Expired(ctx, addr)
		if err != nil {
			return nil, err
		}
		if !expired {
			continue
		}
		if err := producer.Produce(ctx, events.HostLookupEvent{RunID: r.opts.RunID, Address: addr, Record: res.Lines}); err != nil {
			return nil, err
		}
		res.Addresses++
	}
}

// HandleHostLookup resolves one address and stores the result. Unresolved addresses are cached as
// themselves when CacheIPs is set.
func (r *resolver) HandleHostLookup(ctx context.Context, event events.HostLookupEvent) *svcerrors.ServiceError {
	logger := loggers.Ctx(ctx)

	lookupCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	started := time.Now()
	names, err := r.lookup(lookupCtx, event.Address)
	cancel()

	name := ""
	if err == nil && len(names) > 0 {
		name = strings.TrimSuffix(names[0], ".")
	}
	if name != "" && name != event.Address {
		metricLookupsTotal.WithLabelValues(resultResolved).Inc()
		metricLookupDuration.WithLabelValues(resultResolved).Observe(time.Since(started).Seconds())
		logger.Debug().Str(loggers.FieldHost, event.Address).Str("name", name).Msg("address resolved")
		return r.store(ctx, event.Address, name, false)
	}

	metricLookupsTotal.WithLabelValues(resultUnresolved).Inc()
	metricLookupDuration.WithLabelValues(resultUnresolved).Observe(time.Since(started).Seconds())
	if err != nil {
		logger.Debug().Err(errInternalLookupFailed(event.Address, err)).Str(loggers.FieldHost, event.Address).Msg("address not resolved")
	}
	if r.opts.CacheIPs {
		return r.store(ctx, event.Address, event.Address, true)
	}
	return nil
}

func (r *resolver) store(ctx context.Context, addr, name string, numeric bool) *svcerrors.ServiceError {
	if err := r.cache.Populate(ctx, addr, name, numeric); err != nil {
		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = errInternalCacheWriteFailed(err)
		}
		loggers.Ctx(ctx).Warn().Err(svcErr).Str(loggers.FieldHost, addr).Msg("dns cache write failed")
		return svcErr
	}
	return nil
}
