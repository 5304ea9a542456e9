package resolvers

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	"weblog-analyzer/internal/shared/loggers"

	_ "github.com/glebarez/sqlite"
)

const (
	defaultTTLDays = 7
	maxTTLDays     = 100
	secondsPerDay  = 86400
)

const schema = `CREATE TABLE IF NOT EXISTS dns_cache (
	address    TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	is_numeric INTEGER NOT NULL,
	stamp      INTEGER NOT NULL
)`

// LockMode selects how the cache file is shared with other runs.
type LockMode int

const (
	// LockShared allows concurrent readers. Populate is refused.
	LockShared LockMode = iota
	// LockExclusive is required to populate the cache.
	LockExclusive
)

// Record is one cached address. A zero Stamp marks a permanent entry.
type Record struct {
	Address string
	Name    string
	Numeric bool // the address did not resolve and is cached as itself
	Stamp   int64
}

//go:generate mockgen -source=cache.go -destination=./mocks/cache_mock.go -package=mocks
type Cache interface {
	// Lookup returns the cached name of address regardless of its age.
	Lookup(ctx context.Context, address string) (string, bool)
	// Expired reports whether address is missing or older than the cache TTL.
	Expired(ctx context.Context, address string) (bool, error)
	// Populate stores the lookup result for address with the current time.
	Populate(ctx context.Context, address, name string, numeric bool) error
	Close() error
}

type CacheOptions struct {
	Mode    LockMode
	TTLDays int
	Now     func() time.Time
}

type sqliteCache struct {
	db   *sql.DB
	lock *fileLock
	mode LockMode
	ttl  int64
	now  func() time.Time
}

// OpenCache opens the cache file at path and locks it without waiting. A held lock yields an
// error wrapping ErrCacheLocked. A shared open of a missing file fails.
func OpenCache(ctx context.Context, path string, opts CacheOptions) (Cache, error) {
	if opts.Mode == LockShared {
		if _, err := os.Stat(path); err != nil {
			return nil, errCacheUnavailable(path, err)
		}
	}

	lock, err := lockFile(path, opts.Mode == LockExclusive)
	if err != nil {
		if errors.Is(err, ErrCacheLocked) {
			return nil, errCacheLocked(path)
		}
		return nil, errCacheUnavailable(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		lock.release()
		return nil, errInternalCacheOpenFailed(err)
	}
	// Workers share one connection so writes never contend for the sqlite lock.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		lock.release()
		return nil, errInternalCacheOpenFailed(err)
	}

	ttlDays := opts.TTLDays
	switch {
	case ttlDays <= 0:
		ttlDays = defaultTTLDays
	case ttlDays > maxTTLDays:
		ttlDays = maxTTLDays
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	loggers.Ctx(ctx).Debug().Str(loggers.FieldComponent, "resolver").Str(loggers.FieldName, path).
		Bool("exclusive", opts.Mode == LockExclusive).Msg("dns cache opened")

	return &sqliteCache{
		db:   db,
		lock: lock,
		mode: opts.Mode,
		ttl:  int64(ttlDays) * secondsPerDay,
		now:  now,
	}, nil
}

func (c *sqliteCache) get(ctx context.Context, address string) (Record, bool, error) {
	rec := Record{Address: address}
	err := c.db.QueryRowContext(ctx,
		`SELECT name, is_numeric, stamp FROM dns_cache WHERE address = ?`, strings.ToLower(address),
	).Scan(&rec.Name, &rec.Numeric, &rec.Stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, false, nil
	}
	if err != nil {
		return rec, false, err
	}
	return rec, true, nil
}

func (c *sqliteCache) Lookup(ctx context.Context, address string) (string, bool) {
	rec, found, err := c.get(ctx, address)
	if err != nil {
		loggers.Ctx(ctx).Warn().Err(errInternalCacheQueryFailed(err)).Str(loggers.FieldHost, address).Msg("dns cache read failed")
		return "", false
	}
	if !found {
		metricCacheReadsTotal.WithLabelValues(resultMiss).Inc()
		return "", false
	}
	metricCacheReadsTotal.WithLabelValues(resultHit).Inc()
	return rec.Name, true
}

func (c *sqliteCache) Expired(ctx context.Context, address string) (bool, error) {
	rec, found, err := c.get(ctx, address)
	if err != nil {
		return false, errInternalCacheQueryFailed(err)
	}
	if !found {
		return true, nil
	}
	if rec.Stamp == 0 {
		return false, nil
	}
	return c.now().Unix()-rec.Stamp > c.ttl, nil
}

func (c *sqliteCache) Populate(ctx context.Context, address, name string, numeric bool) error {
	if c.mode != LockExclusive {
		return errCacheReadOnly()
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO dns_cache (address, name, is_numeric, stamp) VALUES (?, ?, ?, ?)
		 ON CONFLICT(address) DO UPDATE SET name = excluded.name, is_numeric = excluded.is_numeric, stamp = excluded.stamp`,
		strings.ToLower(address), strings.ToLower(name), numeric, c.now().Unix(),
	)
	if err != nil {
		return errInternalCacheWriteFailed(err)
	}
	return nil
}

func (c *sqliteCache) Close() error {
	err := c.db.Close()
	c.lock.release()
	return err
}
