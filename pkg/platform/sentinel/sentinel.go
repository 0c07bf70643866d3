package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Catalog sources, caches and
// upstream adapters return these (optionally wrapped) and services translate
// them into domain errors or degrade gracefully.
//
// For validation failures use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrCacheMiss   = errors.New("cache miss")
	ErrUnavailable = errors.New("unavailable")
	ErrRateLimited = errors.New("rate limited")
	ErrCircuitOpen = errors.New("circuit open")
)
