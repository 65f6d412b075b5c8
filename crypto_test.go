package lightcache_test

import (
	"testing"

	lightcache "github.com/fpcorso/light-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAES256GCM_RoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	enc, err := lightcache.NewAES256GCM(key)
	require.NoError(t, err)

	plain := []byte(`{"k":{"expires":null,"data":"v"}}`)
	cipher, err := enc.Encrypt(plain)
	require.NoError(t, err)
	assert.NotEqual(t, plain, cipher)

	decrypted, err := enc.Decrypt(cipher)
	require.NoError(t, err)
	assert.Equal(t, plain, decrypted)
}

func TestAES256GCM_InvalidKeyLength(t *testing.T) {
	_, err := lightcache.NewAES256GCM([]byte("short"))
	assert.ErrorIs(t, err, lightcache.ErrBadKeySize)
}

func TestAES256GCM_TamperDetection(t *testing.T) {
	key := make([]byte, 32)
	enc, err := lightcache.NewAES256GCM(key)
	require.NoError(t, err)

	cipher, err := enc.Encrypt([]byte("secret"))
	require.NoError(t, err)

	cipher[len(cipher)-1] ^= 0xFF
	_, err = enc.Decrypt(cipher)
	assert.Error(t, err)
}

func TestAES256GCM_ShortCiphertext(t *testing.T) {
	key := make([]byte, 32)
	enc, err := lightcache.NewAES256GCM(key)
	require.NoError(t, err)

	_, err = enc.Decrypt([]byte{1, 2, 3})
	assert.ErrorIs(t, err, lightcache.ErrCiphertextShort)
}
