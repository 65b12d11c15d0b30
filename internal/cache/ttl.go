// Package cache provides a small in-process TTL cache with LRU eviction.
package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// TTL is a thread-safe cache whose entries expire after a fixed lifetime and
// whose least-recently-used entries are evicted beyond maxSize. It is
// per-process only: nothing is shared across replicas.
type TTL[K comparable, V any] struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	ttl     time.Duration
	maxSize int

	entries map[K]*entry[K, V]
	head    *entry[K, V] // most recently used
	tail    *entry[K, V] // least recently used
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	prev      *entry[K, V]
	next      *entry[K, V]
}

// NewTTL creates a cache holding at most maxSize entries, each alive for ttl.
func NewTTL[K comparable, V any](maxSize int, ttl time.Duration) (*TTL[K, V], error) {
	if maxSize <= 0 {
		return nil, errors.New("maxSize must be > 0")
	}
	if ttl <= 0 {
		return nil, errors.New("ttl must be > 0")
	}
	return &TTL[K, V]{
		clock:   clockwork.NewRealClock(),
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[K]*entry[K, V]),
	}, nil
}

// setClock swaps the time source so tests can freeze time.
func (c *TTL[K, V]) setClock(clock clockwork.Clock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = clock
}

// Get returns the cached value and marks it recently used. Expired entries
// are dropped and reported as misses.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !e.expiresAt.After(c.clock.Now()) {
		c.removeEntry(e)
		return zero, false
	}

	c.moveToFront(e)
	return e.value, true
}

// Set stores the value under key, refreshing its lifetime and recency, and
// evicts from the LRU end when the cache is over capacity.
func (c *TTL[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = c.clock.Now().Add(c.ttl)
		c.moveToFront(e)
		return
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: c.clock.Now().Add(c.ttl)}
	c.entries[key] = e
	c.addToFront(e)

	for len(c.entries) > c.maxSize {
		c.removeEntry(c.tail)
	}
}

// Len reports the number of entries currently held, including any that have
// expired but not yet been touched.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTL[K, V]) moveToFront(e *entry[K, V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *TTL[K, V]) addToFront(e *entry[K, V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *TTL[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *TTL[K, V]) removeEntry(e *entry[K, V]) {
	if e == nil {
		return
	}
	delete(c.entries, e.key)
	c.unlink(e)
}
