package resolvers

import (
	"errors"
	"fmt"

	"weblog-analyzer/internal/shared/svcerrors"
)

// ErrCacheLocked is returned when another process holds the cache lock.
var ErrCacheLocked = errors.New("dns cache locked")

// Cache and resolver errors
const (
	codeCacheLocked      = "DNS_1000"
	codeCacheUnavailable = "DNS_1001"
	codeCacheReadOnly    = "DNS_1002"

	codeInternalCacheOpenFailed  = "DNS_9000"
	codeInternalCacheQueryFailed = "DNS_9001"
	codeInternalCacheWriteFailed = "DNS_9002"
	codeInternalLookupFailed     = "DNS_9003"
	codeInternalReadFailed       = "DNS_9004"
)

func errCacheLocked(path string) *svcerrors.ServiceError {
	return svcerrors.NewResourceError(codeCacheLocked, "dns cache is locked", fmt.Errorf("path=%q: %w", path, ErrCacheLocked))
}

func errCacheUnavailable(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceError(codeCacheUnavailable, "dns cache unavailable", fmt.Errorf("path=%q: %w", path, cause))
}

func errCacheReadOnly() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeCacheReadOnly, "dns cache opened read only", nil)
}

func errInternalCacheOpenFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCacheOpenFailed, fmt.Errorf("cacheOpenFailed: %w", cause))
}

func errInternalCacheQueryFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCacheQueryFailed, fmt.Errorf("cacheQueryFailed: %w", cause))
}

func errInternalCacheWriteFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCacheWriteFailed, fmt.Errorf("cacheWriteFailed: %w", cause))
}

func errInternalLookupFailed(address string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLookupFailed, fmt.Errorf("lookupFailed address=%q: %w", address, cause))
}

func errInternalReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReadFailed, fmt.Errorf("readFailed: %w", cause))
}
