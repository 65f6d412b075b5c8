// Package codec provides encode/decode implementations for the persisted
// cache map.
package codec

// Codec serializes the full cache map to and from its on-disk form.
// Round trips must be lossless for every value the cache stores, including
// absolute timestamps.
type Codec interface {
	// Encode serializes the cache map into bytes.
	Encode(m map[string]any) ([]byte, error)
	// Decode deserializes bytes produced by Encode back into a cache map.
	Decode(data []byte) (map[string]any, error)
	// Name returns the codec identifier used for diagnostics.
	Name() string
	// FileExt returns the extension (without the dot) for persisted files.
	FileExt() string
}
