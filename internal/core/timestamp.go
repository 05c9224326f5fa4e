package core

import (
	"bytes"
	"encoding/json"
	"time"
)

// isoLayout is the UTC millisecond form JavaScript's toISOString produces.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp decodes the API's ISO dates. Missing or unparseable values
// decode to the zero time instead of failing the whole payload.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

// MarshalJSON writes the time in UTC with exactly three fractional digits.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(isoLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// epoch milliseconds, as Date.now() would produce
		var ms int64
		if err := json.Unmarshal(b, &ms); err == nil {
			t.Time = time.UnixMilli(ms).UTC()
		}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}
