// Copyright (c) 2026 Frank Corso
//
// json.go — JSON codec wrapping encoding/json, extended with a tagged-object
// convention so values JSON cannot natively represent (time.Time out of the
// box) survive the round trip.

package codec

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeMarker is the reserved wrapper key identifying an encoded time.Time.
const TimeMarker = "__datetime__"

// Ext extends the JSON codec with one non-native type. During encode, a
// matching value is replaced by the single-key wrapper object
// {Marker: payload}; during decode, an object whose only key is Marker is
// replaced by the decoded value.
type Ext struct {
	// Marker is the reserved wrapper key. It must not collide with keys
	// applications store as plain single-key maps.
	Marker string
	// Encode converts v into a JSON-native payload, reporting false when v
	// is not this extension's type.
	Encode func(v any) (any, bool)
	// Decode converts a wrapper payload back into the extension's type.
	Decode func(payload any) (any, error)
}

// TimeExt round-trips time.Time values as RFC 3339 strings under TimeMarker.
func TimeExt() Ext {
	return Ext{
		Marker: TimeMarker,
		Encode: func(v any) (any, bool) {
			t, ok := v.(time.Time)
			if !ok {
				return nil, false
			}
			return t.Format(time.RFC3339Nano), true
		},
		Decode: func(payload any) (any, error) {
			s, ok := payload.(string)
			if !ok {
				return nil, fmt.Errorf("codec: %s payload is not a string", TimeMarker)
			}
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, fmt.Errorf("codec: %s payload: %w", TimeMarker, err)
			}
			return t, nil
		},
	}
}

// JSON is the default codec. It walks the cache map before marshalling and
// after unmarshalling so registered extension types survive the round trip.
type JSON struct {
	exts     []Ext
	byMarker map[string]Ext
}

// NewJSON creates a JSON codec with the time.Time extension registered.
func NewJSON() *JSON {
	c := &JSON{byMarker: make(map[string]Ext)}
	c.Register(TimeExt())
	return c
}

// Register adds an extension type. The map traversal itself never changes;
// new types only add markers.
func (c *JSON) Register(ext Ext) {
	c.exts = append(c.exts, ext)
	c.byMarker[ext.Marker] = ext
}

// Encode serializes m to JSON, wrapping extension values.
func (c *JSON) Encode(m map[string]any) ([]byte, error) {
	return json.Marshal(c.wrap(m))
}

// Decode parses JSON and unwraps extension values.
func (c *JSON) Decode(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	out, err := c.unwrap(m)
	if err != nil {
		return nil, err
	}
	res, ok := out.(map[string]any)
	if !ok || res == nil {
		return map[string]any{}, nil
	}
	return res, nil
}

// Name returns "json".
func (c *JSON) Name() string { return "json" }

// FileExt returns "json".
func (c *JSON) FileExt() string { return "json" }

// wrap recursively replaces extension values with their tagged wrapper form.
func (c *JSON) wrap(v any) any {
	for _, ext := range c.exts {
		if payload, ok := ext.Encode(v); ok {
			return map[string]any{ext.Marker: payload}
		}
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = c.wrap(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = c.wrap(val)
		}
		return out
	default:
		return v
	}
}

// unwrap recursively replaces single-key wrapper objects with their decoded
// values. Objects carrying extra keys alongside a marker are left alone.
func (c *JSON) unwrap(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 1 {
			for marker, payload := range t {
				if ext, ok := c.byMarker[marker]; ok {
					return ext.Decode(payload)
				}
			}
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			u, err := c.unwrap(val)
			if err != nil {
				return nil, err
			}
			out[k] = u
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			u, err := c.unwrap(val)
			if err != nil {
				return nil, err
			}
			out[i] = u
		}
		return out, nil
	default:
		return v, nil
	}
}
