package lightcache

import (
	"encoding/json"
	"time"
)

// Entry field names in the persisted map.
const (
	fieldExpires = "expires"
	fieldData    = "data"
)

// CacheMap is the full mapping of keys to entries as the codec sees it.
// Entry values stay dynamic so foreign or corrupted persisted entries
// remain representable and can be judged by the expiration predicate.
type CacheMap = map[string]any

// newEntry builds a well-formed entry. expires is an absolute unix-seconds
// timestamp, or nil for the explicit never-expires state.
func newEntry(data, expires any) map[string]any {
	return map[string]any{fieldExpires: expires, fieldData: data}
}

// entryData extracts the data field from an entry already vetted by
// isExpired.
func entryData(v any) any {
	m, _ := v.(map[string]any)
	return m[fieldData]
}

// isExpired reports whether the entry v is expired at now. Anything that is
// not a map carrying a readable expires field is treated as expired, so
// corrupted or foreign entries never reach callers. The one exception is an
// explicitly-null expires, which marks an entry that never expires.
func isExpired(v any, now time.Time) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return true
	}
	raw, present := m[fieldExpires]
	if !present {
		return true
	}
	if raw == nil {
		return false
	}
	exp, ok := epochSeconds(raw)
	if !ok {
		return true
	}
	return exp < now.Unix()
}

// sweep deletes every expired entry from m in place and returns the count
// removed.
func sweep(m CacheMap, now time.Time) int {
	removed := 0
	for k, v := range m {
		if isExpired(v, now) {
			delete(m, k)
			removed++
		}
	}
	return removed
}

// epochSeconds coerces the numeric representations the codecs produce for
// an absolute unix-seconds timestamp. JSON decodes numbers as float64,
// msgpack picks the narrowest integer type that fits; in-memory entries
// carry int64.
func epochSeconds(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case uint:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	case float64:
		return int64(t), true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
