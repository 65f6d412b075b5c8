package codec

import "github.com/vmihailenco/msgpack/v5"

// MsgPack is a compact binary codec using MessagePack encoding. time.Time
// values round-trip through the MessagePack timestamp extension, so no
// tagged-wrapper convention is needed.
type MsgPack struct{}

// Encode serializes m to MessagePack bytes.
func (MsgPack) Encode(m map[string]any) ([]byte, error) {
	return msgpack.Marshal(m)
}

// Decode deserializes MessagePack bytes into a cache map.
func (MsgPack) Decode(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Name returns "msgpack".
func (MsgPack) Name() string { return "msgpack" }

// FileExt returns "msgpack".
func (MsgPack) FileExt() string { return "msgpack" }
