package lightcache

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fpcorso/light-cache/internal/clock"
	"github.com/fpcorso/light-cache/internal/codec"
	"github.com/fpcorso/light-cache/internal/metrics"
)

// Re-export types so callers only import this package.
type Codec = codec.Codec
type Clock = clock.Clock
type Recorder = metrics.Recorder

// Forever marks an entry as never expiring when passed as the TTL to Put.
// It is the explicit opt-in: entries with a missing or malformed expiration
// are always treated as already expired.
const Forever = time.Duration(math.MaxInt64)

// DefaultTTL is applied when Put is called with a zero TTL.
const DefaultTTL = 600 * time.Second

// ────────────────────────────────────────────────────────────────────────────
// Config
// ────────────────────────────────────────────────────────────────────────────

// Config contains all Store configuration, fixed at construction. The zero
// value persists to disk, keeps the cache in memory, and stores the
// "general_cache" namespace under ".cache".
type Config struct {
	// Namespace names the cache's backing file. It is sanitized to a safe
	// filename stem; an input that sanitizes to nothing falls back to
	// DefaultNamespace.
	Namespace string

	// Directory is where the backing file lives. It is sanitized so it
	// cannot escape the working directory. Empty means DefaultDirectory;
	// "." means the working directory itself.
	Directory string

	// DefaultTTL is used when Put is called with a zero TTL.
	DefaultTTL time.Duration

	// DisablePersist turns the store into an all-memory, non-durable cache.
	// The persistence layer is never touched.
	DisablePersist bool

	// DisableMemory makes every operation round-trip through the persisted
	// file. Ignored (memory retention is forced on) when DisablePersist is
	// also set, since a cache holding data nowhere would lose every write.
	DisableMemory bool

	// Optional overrideable components.
	Codec   codec.Codec
	Clock   clock.Clock
	Logger  Logger
	Metrics metrics.Recorder
	FS      FS

	// EncryptionKey enables AES-256-GCM encryption of the persisted file
	// (must be 32 bytes; nil = disabled).
	EncryptionKey []byte
}

func (c *Config) defaults() {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Directory == "" {
		c.Directory = DefaultDirectory
	}
	if c.DefaultTTL == 0 {
		c.DefaultTTL = DefaultTTL
	}
	if c.Codec == nil {
		c.Codec = codec.NewJSON()
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.Noop{}
	}
	if c.FS == nil {
		c.FS = osFS{}
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Stats
// ────────────────────────────────────────────────────────────────────────────

type storeStats struct {
	Gets    atomic.Int64
	Puts    atomic.Int64
	Forgets atomic.Int64
	Hits    atomic.Int64
	Misses  atomic.Int64
	Expired atomic.Int64
	Errors  atomic.Int64
}

// Stats is the snapshot returned by Store.Stats().
type Stats struct {
	Gets    int64
	Puts    int64
	Forgets int64
	Hits    int64
	Misses  int64
	Expired int64
	Errors  int64
	Entries int
}

// ────────────────────────────────────────────────────────────────────────────
// Store
// ────────────────────────────────────────────────────────────────────────────

// Store owns the cache lifecycle for one namespace: load, save, expiration
// sweeps, and the read/write operations. Within a process a Store is the
// sole owner of its in-memory map and its persisted file; concurrent
// processes sharing a namespace race (last writer wins).
type Store struct {
	cfg       Config
	namespace string
	directory string
	persist   bool
	inMemory  bool

	mu  sync.Mutex
	mem CacheMap

	codec     codec.Codec
	clock     clock.Clock
	logger    Logger
	metrics   metrics.Recorder
	fs        FS
	encryptor Encryptor

	stats storeStats
}

// New creates a Store from cfg: sanitizes the namespace and directory,
// ensures the cache directory exists when persistence needs it, loads the
// persisted map, sweeps expired entries (rewriting persisted state only if
// the sweep removed anything), and seeds the in-memory map.
func New(cfg Config) (*Store, error) {
	cfg.defaults()

	s := &Store{
		cfg:      cfg,
		persist:  !cfg.DisablePersist,
		inMemory: !cfg.DisableMemory,
		codec:    cfg.Codec,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		fs:       cfg.FS,
		mem:      CacheMap{},
	}

	if !s.persist && !s.inMemory {
		s.logger.Warn("persistence and memory retention both disabled; forcing memory retention on")
		s.inMemory = true
	}

	var ok bool
	if s.namespace, ok = sanitizeNamespace(cfg.Namespace); !ok {
		s.logger.Warn("namespace empty after sanitization; using default",
			"input", cfg.Namespace, "namespace", s.namespace)
	}
	if s.directory, ok = sanitizeDirectory(cfg.Directory); !ok {
		s.logger.Warn("directory resolves outside the working tree; using default",
			"input", cfg.Directory, "directory", s.directory)
	}

	if len(cfg.EncryptionKey) > 0 {
		enc, err := NewAES256GCM(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("lightcache: encryption init: %w", err)
		}
		s.encryptor = enc
	}

	if s.persist && s.directoryNeeded() {
		if err := s.fs.MkdirAll(s.directory, 0o700); err != nil {
			s.logger.Error("failed to create cache directory",
				"directory", s.directory, "err", err)
			s.metrics.RecordError(s.namespace, "mkdir")
			s.stats.Errors.Add(1)
		}
	}

	// Pick up whatever a previous instance persisted and drop anything that
	// expired in the meantime.
	m := s.readPersistedOrEmpty()
	if removed := sweep(m, s.clock.Now()); removed > 0 {
		s.stats.Expired.Add(int64(removed))
		s.persistLogged(m)
	}
	if s.inMemory {
		s.mem = m
	}
	return s, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Operations
// ────────────────────────────────────────────────────────────────────────────

// Get returns the live value stored under key. An expired entry is pruned
// and the pruned map persisted before the miss is reported.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Gets.Add(1)
	return s.getLocked(key)
}

// Has reports whether key holds a live entry, pruning it if expired.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Gets.Add(1)
	_, ok := s.getLocked(key)
	return ok
}

// Put stores value under key with an absolute expiration of now+ttl,
// overwriting any prior entry, then persists. A zero ttl applies
// Config.DefaultTTL; a negative ttl stores an already-expired entry;
// Forever stores an entry that never expires.
func (s *Store) Put(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Puts.Add(1)

	var expires any
	switch {
	case ttl == Forever:
		expires = nil
	case ttl == 0:
		expires = s.clock.Now().Add(s.cfg.DefaultTTL).Unix()
	default:
		expires = s.clock.Now().Add(ttl).Unix()
	}

	m := s.loadLocked()
	m[key] = newEntry(value, expires)
	s.saveLocked(m)
}

// Forget removes key if present, persists, and reports whether the key was
// present.
func (s *Store) Forget(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Forgets.Add(1)

	m := s.loadLocked()
	if _, ok := m[key]; !ok {
		return false
	}
	delete(m, key)
	s.saveLocked(m)
	return true
}

// Pull returns the live value stored under key and removes it in the same
// persisted write. A missing key leaves the map untouched.
func (s *Store) Pull(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Gets.Add(1)

	m := s.loadLocked()
	raw, ok := m[key]
	if !ok {
		s.stats.Misses.Add(1)
		s.metrics.RecordMiss(s.namespace)
		return nil, false
	}

	expired := isExpired(raw, s.clock.Now())
	delete(m, key)
	s.saveLocked(m)

	if expired {
		s.stats.Expired.Add(1)
		s.stats.Misses.Add(1)
		s.metrics.RecordExpired(s.namespace)
		s.metrics.RecordMiss(s.namespace)
		return nil, false
	}
	s.stats.Forgets.Add(1)
	s.stats.Hits.Add(1)
	s.metrics.RecordHit(s.namespace)
	return entryData(raw), true
}

// Sweep removes every expired entry, persists the result, and returns the
// number of entries removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.loadLocked()
	removed := sweep(m, s.clock.Now())
	if removed > 0 {
		s.stats.Expired.Add(int64(removed))
		s.metrics.RecordExpired(s.namespace)
	}
	s.saveLocked(m)
	return removed
}

// Flush removes every entry and persists the now-empty map.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(CacheMap{})
}

// Len returns the number of stored entries, including entries that have
// expired but not yet been pruned.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loadLocked())
}

// Path returns the resolved location of the persisted cache file.
func (s *Store) Path() string { return s.cachePath() }

// Namespace returns the sanitized namespace.
func (s *Store) Namespace() string { return s.namespace }

// Directory returns the sanitized cache directory; "." means the working
// directory.
func (s *Store) Directory() string { return s.directory }

// Stats returns a snapshot of operational counters.
func (s *Store) Stats() Stats {
	st := Stats{
		Gets:    s.stats.Gets.Load(),
		Puts:    s.stats.Puts.Load(),
		Forgets: s.stats.Forgets.Load(),
		Hits:    s.stats.Hits.Load(),
		Misses:  s.stats.Misses.Load(),
		Expired: s.stats.Expired.Load(),
		Errors:  s.stats.Errors.Load(),
	}
	s.mu.Lock()
	st.Entries = len(s.loadLocked())
	s.mu.Unlock()
	return st
}

func (s *Store) getLocked(key string) (any, bool) {
	m := s.loadLocked()
	raw, ok := m[key]
	if !ok {
		s.stats.Misses.Add(1)
		s.metrics.RecordMiss(s.namespace)
		return nil, false
	}
	if isExpired(raw, s.clock.Now()) {
		delete(m, key)
		s.saveLocked(m)
		s.stats.Expired.Add(1)
		s.stats.Misses.Add(1)
		s.metrics.RecordExpired(s.namespace)
		s.metrics.RecordMiss(s.namespace)
		return nil, false
	}
	s.stats.Hits.Add(1)
	s.metrics.RecordHit(s.namespace)
	s.logger.Debug("cache hit", "namespace", s.namespace, "key", key)
	return entryData(raw), true
}

// ────────────────────────────────────────────────────────────────────────────
// Persistence boundary
// ────────────────────────────────────────────────────────────────────────────

// loadLocked returns the authoritative map for the current mode: the
// in-memory map when retention is on, otherwise a fresh decode of the
// persisted file. It never fails; unreadable state is an empty cache.
func (s *Store) loadLocked() CacheMap {
	if s.inMemory {
		return s.mem
	}
	return s.readPersistedOrEmpty()
}

// saveLocked installs m as the in-memory map (when retention is on) and
// writes it through to disk (when persistence is on). Failures are logged
// and counted, never returned; in-memory state stays authoritative.
func (s *Store) saveLocked(m CacheMap) {
	if s.inMemory {
		s.mem = m
	}
	s.persistLogged(m)
}

func (s *Store) persistLogged(m CacheMap) {
	if !s.persist {
		return
	}
	if err := s.writePersisted(m); err != nil {
		s.logger.Error("failed to save cache", "path", s.cachePath(), "err", err)
		s.metrics.RecordError(s.namespace, "save")
		s.stats.Errors.Add(1)
	}
}

func (s *Store) readPersistedOrEmpty() CacheMap {
	if !s.persist {
		return CacheMap{}
	}
	m, err := s.readPersisted()
	if err != nil {
		s.logger.Warn("failed to load cache; treating as empty",
			"path", s.cachePath(), "err", err)
		s.metrics.RecordError(s.namespace, "load")
		s.stats.Errors.Add(1)
		return CacheMap{}
	}
	return m
}

func (s *Store) readPersisted() (CacheMap, error) {
	data, err := s.fs.ReadFile(s.cachePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// A cache that was never persisted is simply empty.
			return CacheMap{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	if s.encryptor != nil {
		if data, err = s.encryptor.Decrypt(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
	}
	m, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if m == nil {
		m = CacheMap{}
	}
	return m, nil
}

func (s *Store) writePersisted(m CacheMap) error {
	data, err := s.codec.Encode(m)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	if s.encryptor != nil {
		if data, err = s.encryptor.Encrypt(data); err != nil {
			return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
		}
	}
	if err := s.fs.WriteFile(s.cachePath(), data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// ────────────────────────────────────────────────────────────────────────────
// Path resolution
// ────────────────────────────────────────────────────────────────────────────

// cachePath joins the sanitized directory and "{namespace}.{ext}"; a
// trivial directory keeps the file in the working directory itself.
func (s *Store) cachePath() string {
	name := s.namespace + "." + s.codec.FileExt()
	if s.directoryNeeded() {
		return filepath.Join(s.directory, name)
	}
	return name
}

func (s *Store) directoryNeeded() bool {
	return s.directory != "" && s.directory != "."
}
