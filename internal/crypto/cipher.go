package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
)

const (
	// NonceSize is the GCM nonce length prepended to every blob.
	NonceSize = 12
	// TagSize is the GCM authentication tag length appended to every blob.
	TagSize = 16
	// MinSealedSize is the shortest blob Seal can produce (empty plaintext).
	// Anything shorter is treated as legacy plaintext by Unseal.
	MinSealedSize = NonceSize + TagSize
)

// Cipher seals and opens blobs with AES-256-GCM under a fixed key.
// Blob layout: nonce(12) ‖ ciphertext ‖ tag(16).
//
// A Cipher is safe for concurrent use. It keeps the expanded AES key
// schedule, not the raw key, so the key slice it was built from may be
// wiped right after NewCipher returns.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher for a 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &Cipher{aead: gcm}, nil
}

// Seal encrypts plaintext with a fresh random nonce.
func (c *Cipher) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Unseal reverses Seal.
//
// Blobs shorter than MinSealedSize predate encryption and are returned as an
// unchanged copy. Any authentication failure is ErrIntegrity. On success the
// input blob is wiped.
func (c *Cipher) Unseal(blob []byte) ([]byte, error) {
	if len(blob) < MinSealedSize {
		return append([]byte(nil), blob...), nil
	}

	nonce, ciphertext := blob[:NonceSize], blob[NonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrIntegrity
	}

	memguard.WipeBytes(blob)
	return plaintext, nil
}

// SealString seals text and returns the blob in standard base64.
func (c *Cipher) SealString(text string) (string, error) {
	blob, err := c.Seal([]byte(text))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// UnsealString reverses SealString. Text that is not base64 or decodes to
// fewer than MinSealedSize bytes is returned unchanged.
func (c *Cipher) UnsealString(text string) (string, error) {
	blob, ok := decodeSealed(text)
	if !ok {
		return text, nil
	}

	plaintext, err := c.Unseal(blob)
	if err != nil {
		return "", err
	}
	defer memguard.WipeBytes(plaintext)

	return string(plaintext), nil
}

// Seal is a one-shot helper around NewCipher and Cipher.Seal.
func Seal(plaintext, key []byte) ([]byte, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c.Seal(plaintext)
}

// Unseal is a one-shot helper around NewCipher and Cipher.Unseal.
func Unseal(blob, key []byte) ([]byte, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c.Unseal(blob)
}

// SealString is a one-shot helper around NewCipher and Cipher.SealString.
func SealString(text string, key []byte) (string, error) {
	c, err := NewCipher(key)
	if err != nil {
		return "", err
	}
	return c.SealString(text)
}

// UnsealString is a one-shot helper around NewCipher and Cipher.UnsealString.
func UnsealString(text string, key []byte) (string, error) {
	c, err := NewCipher(key)
	if err != nil {
		return "", err
	}
	return c.UnsealString(text)
}

// IsSealedText reports whether s has the shape of a SealString result:
// valid standard base64 of at least MinSealedSize bytes. It says nothing
// about which key sealed it.
func IsSealedText(s string) bool {
	_, ok := decodeSealed(s)
	return ok
}

// WipeBytes overwrites b with zeroes.
func WipeBytes(b []byte) {
	memguard.WipeBytes(b)
}

func decodeSealed(text string) ([]byte, bool) {
	blob, err := base64.StdEncoding.DecodeString(text)
	if err != nil || len(blob) < MinSealedSize {
		return nil, false
	}
	return blob, true
}
