package vault

import (
	"context"
	"sync/atomic"

	"github.com/MKhiriev/identra-vault/internal/crypto"
	"github.com/MKhiriev/identra-vault/internal/metrics"
)

const (
	opSeal   = "seal"
	opUnseal = "unseal"
)

// Lease is a handle for a batch of cipher calls under the key held when it
// was taken. It does not keep the vault unlocked: after Lock every call on
// the lease returns ErrLocked, and the first such call releases the cipher.
type Lease struct {
	v     *Vault
	epoch uint64
	// cipher is nil once the lease has seen a newer epoch.
	cipher atomic.Pointer[crypto.Cipher]
}

// Lease returns a handle bound to the current key, or ErrLocked.
func (v *Vault) Lease() (*Lease, error) {
	c, epoch, err := v.acquire()
	if err != nil {
		return nil, err
	}
	l := &Lease{v: v, epoch: epoch}
	l.cipher.Store(c)
	return l, nil
}

// acquire builds a cipher from the key under the read lock. The AES key
// schedule is copied into the cipher, so the GCM work runs without the lock.
func (v *Vault) acquire() (*crypto.Cipher, uint64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.status != Unlocked || v.key == nil {
		return nil, v.epoch, ErrLocked
	}

	c, err := crypto.NewCipher(v.key.Bytes())
	if err != nil {
		return nil, v.epoch, err
	}
	return c, v.epoch, nil
}

func (v *Vault) valid(epoch uint64) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.epoch == epoch && v.status == Unlocked
}

// check returns the cipher of a live lease.
func (l *Lease) check(ctx context.Context) (*crypto.Cipher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !l.stillValid() {
		return nil, ErrLocked
	}
	c := l.cipher.Load()
	if c == nil {
		return nil, ErrLocked
	}
	return c, nil
}

// stillValid reports whether the epoch of l is current. A stale lease stays
// stale, so its cipher is dropped for the garbage collector.
func (l *Lease) stillValid() bool {
	if l.v.valid(l.epoch) {
		return true
	}
	l.cipher.Store(nil)
	return false
}

// Seal encrypts plaintext. See crypto.Cipher.Seal.
func (l *Lease) Seal(ctx context.Context, plaintext []byte) ([]byte, error) {
	c, err := l.check(ctx)
	if err != nil {
		l.v.metrics.ObserveCipher(opSeal, metrics.ResultLocked)
		return nil, err
	}

	blob, err := c.Seal(plaintext)
	if err != nil {
		l.v.metrics.ObserveCipher(opSeal, metrics.ResultFailure)
		return nil, err
	}
	if !l.stillValid() {
		l.v.metrics.ObserveCipher(opSeal, metrics.ResultLocked)
		return nil, ErrLocked
	}

	l.v.touch()
	l.v.metrics.ObserveCipher(opSeal, metrics.ResultSuccess)
	return blob, nil
}

// Unseal decrypts blob. Blobs shorter than crypto.MinSealedSize come back
// as a copy. The input is wiped only when a plaintext is returned.
func (l *Lease) Unseal(ctx context.Context, blob []byte) ([]byte, error) {
	c, err := l.check(ctx)
	if err != nil {
		l.v.metrics.ObserveCipher(opUnseal, metrics.ResultLocked)
		return nil, err
	}

	// Work on a copy so a Lock racing the call leaves the caller's blob
	// intact.
	work := append([]byte(nil), blob...)
	plaintext, err := c.Unseal(work)
	if err != nil {
		l.v.metrics.ObserveCipher(opUnseal, metrics.ResultFailure)
		return nil, err
	}
	if !l.stillValid() {
		crypto.WipeBytes(plaintext)
		l.v.metrics.ObserveCipher(opUnseal, metrics.ResultLocked)
		return nil, ErrLocked
	}

	if len(blob) >= crypto.MinSealedSize {
		crypto.WipeBytes(blob)
	}
	l.v.touch()
	l.v.metrics.ObserveCipher(opUnseal, metrics.ResultSuccess)
	return plaintext, nil
}

// SealString seals text and returns it as standard base64.
func (l *Lease) SealString(ctx context.Context, text string) (string, error) {
	c, err := l.check(ctx)
	if err != nil {
		l.v.metrics.ObserveCipher(opSeal, metrics.ResultLocked)
		return "", err
	}

	out, err := c.SealString(text)
	if err != nil {
		l.v.metrics.ObserveCipher(opSeal, metrics.ResultFailure)
		return "", err
	}
	if !l.stillValid() {
		l.v.metrics.ObserveCipher(opSeal, metrics.ResultLocked)
		return "", ErrLocked
	}

	l.v.touch()
	l.v.metrics.ObserveCipher(opSeal, metrics.ResultSuccess)
	return out, nil
}

// UnsealString reverses SealString. Text that is not a sealed blob is
// returned unchanged.
func (l *Lease) UnsealString(ctx context.Context, text string) (string, error) {
	c, err := l.check(ctx)
	if err != nil {
		l.v.metrics.ObserveCipher(opUnseal, metrics.ResultLocked)
		return "", err
	}

	out, err := c.UnsealString(text)
	if err != nil {
		l.v.metrics.ObserveCipher(opUnseal, metrics.ResultFailure)
		return "", err
	}
	if !l.stillValid() {
		l.v.metrics.ObserveCipher(opUnseal, metrics.ResultLocked)
		return "", ErrLocked
	}

	l.v.touch()
	l.v.metrics.ObserveCipher(opUnseal, metrics.ResultSuccess)
	return out, nil
}

// Seal encrypts plaintext with the current key.
func (v *Vault) Seal(ctx context.Context, plaintext []byte) ([]byte, error) {
	l, err := v.Lease()
	if err != nil {
		v.metrics.ObserveCipher(opSeal, metrics.ResultLocked)
		return nil, err
	}
	return l.Seal(ctx, plaintext)
}

// Unseal decrypts blob with the current key.
func (v *Vault) Unseal(ctx context.Context, blob []byte) ([]byte, error) {
	l, err := v.Lease()
	if err != nil {
		v.metrics.ObserveCipher(opUnseal, metrics.ResultLocked)
		return nil, err
	}
	return l.Unseal(ctx, blob)
}

// SealString seals text with the current key.
func (v *Vault) SealString(ctx context.Context, text string) (string, error) {
	l, err := v.Lease()
	if err != nil {
		v.metrics.ObserveCipher(opSeal, metrics.ResultLocked)
		return "", err
	}
	return l.SealString(ctx, text)
}

// UnsealString opens text sealed by SealString with the current key.
func (v *Vault) UnsealString(ctx context.Context, text string) (string, error) {
	l, err := v.Lease()
	if err != nil {
		v.metrics.ObserveCipher(opUnseal, metrics.ResultLocked)
		return "", err
	}
	return l.UnsealString(ctx, text)
}
