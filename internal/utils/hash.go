package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader carries the hex HMAC-SHA256 of a request body.
const HashHeader = "HashSHA256"

// Hasher computes keyed HMAC-SHA256 digests over request bodies.
// Hash instances are pooled to avoid an allocation per request.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher for hashKey. An empty key yields a nil
// *Hasher, which signs nothing and accepts everything.
func NewHasher(hashKey string) *Hasher {
	if hashKey == "" {
		return nil
	}
	key := []byte(hashKey)
	return &Hasher{pool: sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, key)
		},
	}}
}

// Hash returns the raw digest of data.
func (h *Hasher) Hash(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()

	mac.Write(data)
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// HashHex returns the hex digest of data, or "" for a nil Hasher.
func (h *Hasher) HashHex(data []byte) string {
	if h == nil {
		return ""
	}
	return hex.EncodeToString(h.Hash(data))
}

// Verify reports whether signature is the hex digest of data. A nil Hasher
// verifies everything.
func (h *Hasher) Verify(data []byte, signature string) bool {
	if h == nil {
		return true
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, h.Hash(data))
}

// HashString computes a one-off HMAC-SHA256 of data under hashKey and
// returns it hex encoded.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
