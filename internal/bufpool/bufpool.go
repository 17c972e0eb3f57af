// Package bufpool provides a tiered buffer pool for scratch space in
// record reassembly and stream inspection.
//
// The pool hands out reusable byte slices so per-record and
// per-fragment work does not allocate on every call. Three size tiers
// balance memory efficiency with reuse:
//   - Small buffers (4KB): headers and individual decoded values
//   - Medium buffers (64KB): typical single-fragment records
//   - Large buffers (1.25MB): fragments up to the default cap
//
// Requests above the large tier are allocated directly and never
// pooled, so an occasional oversized record cannot pin memory.
//
// # Thread Safety
//
// All operations are safe for concurrent use; the tiers are sync.Pools.
//
// # Usage
//
//	buf := bufpool.Get(size)
//	defer bufpool.Put(buf)
package bufpool

import "sync"

// Default buffer size classes.
// These can be overridden when creating a custom pool with NewPool.
const (
	// DefaultSmallSize covers headers and individual values (4KB)
	DefaultSmallSize = 4 << 10

	// DefaultMediumSize covers typical records (64KB)
	DefaultMediumSize = 64 << 10

	// DefaultLargeSize covers fragments up to the default cap used by
	// record readers and writers (1MB + 256KB)
	DefaultLargeSize = (1 << 20) + (1 << 18)
)

// Pool manages byte slice pools organized by size class. Get selects
// the smallest tier that fits and falls back to direct allocation for
// oversized requests.
type Pool struct {
	small      sync.Pool
	medium     sync.Pool
	large      sync.Pool
	smallSize  int
	mediumSize int
	largeSize  int
}

// Config holds configuration for creating a custom buffer pool.
type Config struct {
	// SmallSize is the size of small buffers (default: 4KB)
	SmallSize int

	// MediumSize is the size of medium buffers (default: 64KB)
	MediumSize int

	// LargeSize is the size of large buffers (default: 1.25MB)
	LargeSize int
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		SmallSize:  DefaultSmallSize,
		MediumSize: DefaultMediumSize,
		LargeSize:  DefaultLargeSize,
	}
}

// NewPool creates a new buffer pool with the given configuration.
// If cfg is nil, default values are used; zero fields fall back to
// their defaults individually.
func NewPool(cfg *Config) *Pool {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}

	if cfg.SmallSize <= 0 {
		cfg.SmallSize = DefaultSmallSize
	}
	if cfg.MediumSize <= 0 {
		cfg.MediumSize = DefaultMediumSize
	}
	if cfg.LargeSize <= 0 {
		cfg.LargeSize = DefaultLargeSize
	}

	p := &Pool{
		smallSize:  cfg.SmallSize,
		mediumSize: cfg.MediumSize,
		largeSize:  cfg.LargeSize,
	}

	p.small = sync.Pool{
		New: func() any {
			buf := make([]byte, p.smallSize)
			return &buf
		},
	}
	p.medium = sync.Pool{
		New: func() any {
			buf := make([]byte, p.mediumSize)
			return &buf
		},
	}
	p.large = sync.Pool{
		New: func() any {
			buf := make([]byte, p.largeSize)
			return &buf
		},
	}

	return p
}

// Get returns a byte slice of length size backed by a pooled buffer.
// The caller must call Put when finished; a buffer that never comes
// back simply falls out of the pool.
//
// Sizes above the large tier are allocated directly and will not be
// pooled on Put.
func (p *Pool) Get(size int) []byte {
	var bufPtr *[]byte

	switch {
	case size <= p.smallSize:
		bufPtr = p.small.Get().(*[]byte)
	case size <= p.mediumSize:
		bufPtr = p.medium.Get().(*[]byte)
	case size <= p.largeSize:
		bufPtr = p.large.Get().(*[]byte)
	default:
		return make([]byte, size)
	}

	buf := *bufPtr
	return buf[:size]
}

// Put returns a buffer to the pool for reuse. The buffer must have come
// from Get and must not be used afterwards. Buffers whose capacity
// matches no tier are left to the garbage collector.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}

	switch cap(buf) {
	case p.smallSize:
		fullBuf := buf[:cap(buf)]
		p.small.Put(&fullBuf)
	case p.mediumSize:
		fullBuf := buf[:cap(buf)]
		p.medium.Put(&fullBuf)
	case p.largeSize:
		fullBuf := buf[:cap(buf)]
		p.large.Put(&fullBuf)
	}
}

// =============================================================================
// Global Pool
// =============================================================================

// globalPool is the package-level pool with default configuration,
// shared by record readers, writers and the inspection CLI.
var globalPool = NewPool(nil)

// Get returns a byte slice of length size from the global pool.
func Get(size int) []byte {
	return globalPool.Get(size)
}

// Put returns a buffer to the global pool. Pair with Get, usually via
// defer.
func Put(buf []byte) {
	globalPool.Put(buf)
}
