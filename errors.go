// Copyright (c) 2026 Frank Corso
//
// errors.go — sentinel error variables wrapped into diagnostics on the
// non-fatal persistence paths; cache operations themselves never return
// them.

// Package lightcache provides a lightweight key-value cache with time-based
// expiration, optional in-memory retention, and optional on-disk
// persistence under a sanitized namespace and directory.
package lightcache

import "errors"

// Persistence errors. Load and save failures degrade to an empty or absent
// cache; these sentinels appear only in Logger diagnostics and error wraps.
var (
	ErrReadFailed   = errors.New("lightcache: failed to read cache file")
	ErrWriteFailed  = errors.New("lightcache: failed to write cache file")
	ErrEncodeFailed = errors.New("lightcache: failed to encode cache for storage")
	ErrDecodeFailed = errors.New("lightcache: failed to decode stored cache")
)

// Encryption errors
var (
	ErrBadKeySize      = errors.New("lightcache: encryption key must be exactly 32 bytes")
	ErrCiphertextShort = errors.New("lightcache: ciphertext too short")
)
