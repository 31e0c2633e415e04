package crypto

import (
	"bytes"
	"encoding/base64"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeySize)
}

// ── Seal / Unseal ────────────────────────────────────────────────────────────

func TestSeal_RoundTrip(t *testing.T) {
	key := testKey(0x2A)

	for _, plaintext := range [][]byte{
		{},
		[]byte("x"),
		[]byte("passport number 123456789"),
		bytes.Repeat([]byte{0xEE}, 1<<16),
	} {
		blob, err := Seal(plaintext, key)
		require.NoError(t, err)
		assert.Len(t, blob, NonceSize+len(plaintext)+TagSize)

		got, err := Unseal(blob, key)
		require.NoError(t, err)
		assert.Equal(t, len(plaintext), len(got))
		assert.True(t, bytes.Equal(plaintext, got))
	}
}

func TestSeal_FreshNonceEveryCall(t *testing.T) {
	c, err := NewCipher(testKey(0x01))
	require.NoError(t, err)

	const n = 10_000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		blob, err := c.Seal([]byte("same plaintext"))
		require.NoError(t, err)
		seen[string(blob[:NonceSize])] = struct{}{}
	}

	assert.Len(t, seen, n)
}

func TestUnseal_WrongKey(t *testing.T) {
	blob, err := Seal([]byte("secret"), testKey(0x01))
	require.NoError(t, err)

	_, err = Unseal(blob, testKey(0x02))
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestUnseal_Tampered(t *testing.T) {
	key := testKey(0x01)

	tests := []struct {
		name   string
		mutate func(b []byte) []byte
	}{
		{name: "last byte flipped", mutate: func(b []byte) []byte { b[len(b)-1] ^= 0x01; return b }},
		{name: "first nonce byte flipped", mutate: func(b []byte) []byte { b[0] ^= 0x80; return b }},
		{name: "ciphertext byte flipped", mutate: func(b []byte) []byte { b[NonceSize] ^= 0x10; return b }},
		{name: "truncated", mutate: func(b []byte) []byte { return b[:len(b)-1] }},
		{name: "extended", mutate: func(b []byte) []byte { return append(b, 0x00) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := Seal([]byte("document body"), key)
			require.NoError(t, err)

			_, err = Unseal(tt.mutate(blob), key)
			assert.ErrorIs(t, err, ErrIntegrity)
		})
	}
}

func TestUnseal_ShortBlobPassesThrough(t *testing.T) {
	key := testKey(0x01)

	for _, n := range []int{0, 1, 10, MinSealedSize - 1} {
		blob := bytes.Repeat([]byte{'a'}, n)
		got, err := Unseal(blob, key)
		require.NoError(t, err)
		assert.Equal(t, len(blob), len(got))
		assert.True(t, bytes.Equal(blob, got))

		// a copy, not an alias
		if n > 0 {
			got[0] = 'b'
			assert.Equal(t, byte('a'), blob[0])
		}
	}
}

func TestUnseal_WipesInputOnSuccess(t *testing.T) {
	key := testKey(0x01)
	blob, err := Seal([]byte("wipe me"), key)
	require.NoError(t, err)

	_, err = Unseal(blob, key)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, len(blob)), blob)
}

func TestUnseal_KeepsInputOnFailure(t *testing.T) {
	blob, err := Seal([]byte("keep me"), testKey(0x01))
	require.NoError(t, err)
	orig := append([]byte(nil), blob...)

	_, err = Unseal(blob, testKey(0x02))
	require.ErrorIs(t, err, ErrIntegrity)
	assert.Equal(t, orig, blob)
}

func TestNewCipher_InvalidKey(t *testing.T) {
	for _, n := range []int{0, 16, 24, 31, 33, 64} {
		_, err := NewCipher(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidKey, "len %d", n)
	}

	_, err := Seal([]byte("x"), make([]byte, 16))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = Unseal(make([]byte, 40), nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestCipher_ConcurrentUse(t *testing.T) {
	c, err := NewCipher(testKey(0x07))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := bytes.Repeat([]byte{byte(i)}, i+1)
			blob, err := c.Seal(msg)
			if !assert.NoError(t, err) {
				return
			}
			got, err := c.Unseal(blob)
			if assert.NoError(t, err) {
				assert.Equal(t, msg, got)
			}
		}(i)
	}
	wg.Wait()
}

// ── SealString / UnsealString ────────────────────────────────────────────────

func TestSealString_RoundTrip(t *testing.T) {
	key := testKey(0x09)

	sealed, err := SealString("AB1234567", key)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "AB1234567")
	assert.True(t, IsSealedText(sealed))

	opened, err := UnsealString(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, "AB1234567", opened)
}

func TestSealString_EmptyText(t *testing.T) {
	key := testKey(0x09)

	sealed, err := SealString("", key)
	require.NoError(t, err)
	assert.True(t, IsSealedText(sealed))

	opened, err := UnsealString(sealed, key)
	require.NoError(t, err)
	assert.Empty(t, opened)
}

func TestUnsealString_Passthrough(t *testing.T) {
	key := testKey(0x09)
	short := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 10))

	tests := []struct {
		name  string
		input string
	}{
		{name: "plain text", input: "John Smith"},
		{name: "ten byte base64", input: short},
		{name: "empty", input: ""},
		{name: "url base64 alphabet", input: "-_-_-_-_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnsealString(tt.input, key)
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
			assert.False(t, IsSealedText(tt.input))
		})
	}
}

func TestUnsealString_WrongKeyIsIntegrityError(t *testing.T) {
	sealed, err := SealString("value", testKey(0x01))
	require.NoError(t, err)

	got, err := UnsealString(sealed, testKey(0x02))
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestWipeBytes(t *testing.T) {
	b := []byte{1, 2, 3}
	WipeBytes(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	assert.NotPanics(t, func() { WipeBytes(nil) })
}
