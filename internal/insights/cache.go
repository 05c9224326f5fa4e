// Package insights caches the last AI insight report in local storage so a
// view can paint it immediately while the fresh report is fetched.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

var (
	ErrMiss    = errors.New("insights: no cached entry")
	ErrCorrupt = errors.New("insights: cached entry is corrupt")
)

// Entry is the stored form: ISO capture time and the report payload as
// received. Numeric epoch-millisecond times are accepted on read.
type Entry struct {
	Time core.Timestamp  `json:"time"`
	Data json.RawMessage `json:"data"`
}

func (e Entry) CapturedAt() time.Time {
	return e.Time.Time
}

// Fresh reports whether the entry is younger than ttl. It is advisory; the
// cache never refuses to return an old entry.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CapturedAt()) < ttl
}

// Decode unmarshals the payload into v.
func (e Entry) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}

type Cache struct {
	kv     storage.KV
	logger *log.Logger
	now    func() time.Time
}

func NewCache(kv storage.KV, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Discard()
	}
	return &Cache{kv: kv, logger: logger.WithComponent(log.ComponentInsights), now: time.Now}
}

// Read returns the cached entry. A missing entry is ErrMiss, an entry that
// does not decode is ErrCorrupt.
func (c *Cache) Read(ctx context.Context) (Entry, error) {
	if c.kv == nil {
		return Entry{}, ErrMiss
	}
	raw, ok, err := c.kv.Get(ctx, storage.KeyInsightsCache)
	if err != nil {
		return Entry{}, fmt.Errorf("read insight cache: %w", err)
	}
	if !ok {
		return Entry{}, ErrMiss
	}

	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(e.Data) == 0 {
		e.Data = json.RawMessage("null")
	}
	return e, nil
}

// Write stores data stamped with the current time, replacing any previous
// entry, and returns what was stored.
func (c *Cache) Write(ctx context.Context, data json.RawMessage) (Entry, error) {
	e := Entry{Time: core.NewTimestamp(c.now().UTC().Truncate(time.Millisecond)), Data: data}
	if err := c.Put(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Put stores e exactly as given.
func (c *Cache) Put(ctx context.Context, e Entry) error {
	if c.kv == nil {
		return nil
	}
	if len(bytes.TrimSpace(e.Data)) == 0 {
		e.Data = json.RawMessage("null")
	}
	if !json.Valid(e.Data) {
		return fmt.Errorf("write insight cache: payload is not valid JSON")
	}

	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode insight cache: %w", err)
	}
	if err := c.kv.Set(ctx, storage.KeyInsightsCache, string(b)); err != nil {
		return fmt.Errorf("write insight cache: %w", err)
	}
	c.logger.DebugContext(ctx, "Insight cache written", log.FieldKey, storage.KeyInsightsCache, "size", len(b))
	return nil
}
