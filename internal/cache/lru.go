package cache

import (
	"container/list"
	"sync"
	"time"
)

// Options bound an LRU. Zero values mean unbounded.
type Options[K comparable, V any] struct {
	// MaxSize is the entry count above which the least recently used
	// entry is dropped.
	MaxSize int
	// TTL is how long an entry stays readable after its last Set.
	TTL time.Duration
	// OnEvict runs, with the lock released, for entries dropped by size or
	// expiry. Explicit deletes and Purge do not call it.
	OnEvict func(key K, value V)
}

// LRU is a concurrency-safe least-recently-used map.
type LRU[K comparable, V any] struct {
	mu    sync.Mutex
	opts  Options[K, V]
	now   func() time.Time
	index map[K]*list.Element
	order *list.List // front is most recent
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

func NewLRU[K comparable, V any](opts Options[K, V]) *LRU[K, V] {
	return &LRU[K, V]{
		opts:  opts,
		now:   time.Now,
		index: make(map[K]*list.Element),
		order: list.New(),
	}
}

// Get returns the value and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	var zero V
	el, found := c.index[key]
	if !found {
		c.mu.Unlock()
		return zero, false
	}
	e := el.Value.(*entry[K, V])
	if c.isExpired(e, c.now()) {
		c.unlink(el)
		c.mu.Unlock()
		c.notify([]*entry[K, V]{e})
		return zero, false
	}
	c.order.MoveToFront(el)
	c.mu.Unlock()
	return e.value, true
}

// Set inserts or replaces key and resets its expiry.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	e := &entry[K, V]{key: key, value: value}
	if c.opts.TTL > 0 {
		e.expires = c.now().Add(c.opts.TTL)
	}
	if el, found := c.index[key]; found {
		el.Value = e
		c.order.MoveToFront(el)
		c.mu.Unlock()
		return
	}
	c.index[key] = c.order.PushFront(e)

	var evicted []*entry[K, V]
	for c.opts.MaxSize > 0 && c.order.Len() > c.opts.MaxSize {
		back := c.order.Back()
		evicted = append(evicted, back.Value.(*entry[K, V]))
		c.unlink(back)
	}
	c.mu.Unlock()
	c.notify(evicted)
}

// Delete removes key and reports whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, found := c.index[key]
	if found {
		c.unlink(el)
	}
	return found
}

// Keys lists live keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	keys := make([]K, 0, len(c.index))
	for el := c.order.Front(); el != nil; el = el.Next() {
		if e := el.Value.(*entry[K, V]); !c.isExpired(e, now) {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Len counts stored entries, including expired ones not yet collected.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge drops every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.index)
	c.order.Init()
}

// CleanExpired drops expired entries and returns how many went.
func (c *LRU[K, V]) CleanExpired() int {
	c.mu.Lock()
	now := c.now()
	var evicted []*entry[K, V]
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if e := el.Value.(*entry[K, V]); c.isExpired(e, now) {
			evicted = append(evicted, e)
			c.unlink(el)
		}
		el = prev
	}
	c.mu.Unlock()
	c.notify(evicted)
	return len(evicted)
}

func (c *LRU[K, V]) unlink(el *list.Element) {
	delete(c.index, el.Value.(*entry[K, V]).key)
	c.order.Remove(el)
}

func (c *LRU[K, V]) isExpired(e *entry[K, V], now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

func (c *LRU[K, V]) notify(evicted []*entry[K, V]) {
	if c.opts.OnEvict == nil {
		return
	}
	for _, e := range evicted {
		c.opts.OnEvict(e.key, e.value)
	}
}
