package codec_test

import (
	"testing"
	"time"

	"github.com/fpcorso/light-cache/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgPack_RoundTripWithTime(t *testing.T) {
	c := codec.MsgPack{}
	ts := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

	m := map[string]any{
		"entry": map[string]any{
			"expires": int64(4102444800),
			"data":    map[string]any{"when": ts},
		},
	}

	b, err := c.Encode(m)
	require.NoError(t, err)

	got, err := c.Decode(b)
	require.NoError(t, err)

	entry := got["entry"].(map[string]any)
	assert.EqualValues(t, 4102444800, entry["expires"])

	when, ok := entry["data"].(map[string]any)["when"].(time.Time)
	require.True(t, ok, "timestamp extension not decoded back to time.Time")
	assert.True(t, ts.Equal(when))
}

func TestMsgPack_CorruptInput(t *testing.T) {
	c := codec.MsgPack{}
	_, err := c.Decode([]byte{0xc1})
	assert.Error(t, err)
}

func TestMsgPack_Identifiers(t *testing.T) {
	c := codec.MsgPack{}
	assert.Equal(t, "msgpack", c.Name())
	assert.Equal(t, "msgpack", c.FileExt())
}
