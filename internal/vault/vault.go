// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault holds the master key of one signed-in user and gates every
// encryption call on it.
//
// A Vault moves between three states:
//
//	Uninitialized --Initialize--> Unlocked <--Lock/Unlock--> Locked
//
// The key lives in a memguard buffer only while the vault is Unlocked. Lock
// destroys the buffer and bumps an epoch counter; any cipher call that began
// under an older epoch discards its output and reports ErrLocked, so once
// Lock returns no caller gets a result computed with the old key.
package vault

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/identra-vault/internal/crypto"
	"github.com/MKhiriev/identra-vault/internal/keystore"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/metrics"
	"github.com/MKhiriev/identra-vault/models"
	"github.com/awnumar/memguard"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// rollbackTimeout bounds the key store purge after a failed Initialize.
const rollbackTimeout = 10 * time.Second

// Status is the lifecycle state of a Vault.
type Status int

const (
	Uninitialized Status = iota
	Locked
	Unlocked
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Options tune a Vault. The zero value is usable.
type Options struct {
	// Salt is the derivation salt. Empty means crypto.DefaultSalt.
	Salt string
	// MaxUnlockAttempts is how many failed authentications are tolerated
	// in a row before Unlock returns ErrTooManyAttempts. Zero or less
	// disables throttling.
	MaxUnlockAttempts int
	// UnlockRetryInterval is how often one more attempt is granted.
	UnlockRetryInterval time.Duration
	// Backup receives the backup record on Initialize. Nil skips it.
	Backup BackupSink
	// Metrics may be nil.
	Metrics *metrics.VaultMetrics
	// Now replaces time.Now in tests.
	Now func() time.Time
}

// Vault is the per-user encryption gate. It is safe for concurrent use.
type Vault struct {
	// mu guards status, key and epoch.
	mu     sync.RWMutex
	status Status
	key    *memguard.LockedBuffer
	epoch  uint64

	// opMu serializes Initialize, Unlock and Reset against each other.
	opMu sync.Mutex

	store    keystore.KeyStore
	backup   BackupSink
	salt     string
	limiter  *rate.Limiter // nil when throttling is off
	unlockSF singleflight.Group
	// unlockMu guards pending and unlockGen.
	unlockMu  sync.Mutex
	pending   *pendingUnlock
	unlockGen uint64
	metrics  *metrics.VaultMetrics
	now      func() time.Time
	logger   *logger.Logger

	lastActivity atomic.Int64
}

// New creates the vault for one user. It starts Locked when store already
// holds a key and Uninitialized otherwise; it never prompts.
func New(ctx context.Context, store keystore.KeyStore, log *logger.Logger, opts Options) *Vault {
	if opts.Salt == "" {
		opts.Salt = crypto.DefaultSalt
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	v := &Vault{
		status:  Uninitialized,
		store:   store,
		backup:  opts.Backup,
		salt:    opts.Salt,
		metrics: opts.Metrics,
		now:     opts.Now,
		logger:  log,
	}
	if opts.MaxUnlockAttempts > 0 && opts.UnlockRetryInterval > 0 {
		v.limiter = rate.NewLimiter(rate.Every(opts.UnlockRetryInterval), opts.MaxUnlockAttempts)
	}
	if v.hasStoredKey(ctx) {
		v.status = Locked
	}
	v.touch()
	v.metrics.SetUnlocked(false)

	return v
}

// Status returns the current state.
func (v *Vault) Status() Status {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status
}

// LastActivity returns when the vault was last unlocked or used.
func (v *Vault) LastActivity() time.Time {
	return time.Unix(0, v.lastActivity.Load())
}

func (v *Vault) touch() {
	v.lastActivity.Store(v.now().UnixNano())
}

// Initialize derives the master key from phrase, stores it behind device
// authentication, hands the backup record to the backup sink and leaves the
// vault Unlocked.
//
// Nothing is committed on failure: a rejected backup purges the stored key
// again, even when ctx is already done, and the vault stays Uninitialized.
// If that purge fails the error wraps ErrPartialSetup and the vault is
// Locked until Reset.
func (v *Vault) Initialize(ctx context.Context, phrase string) error {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	if v.Status() != Uninitialized {
		return ErrAlreadyInitialized
	}

	key, err := crypto.DeriveKeyContext(ctx, phrase, v.salt)
	if err != nil {
		return err
	}
	defer crypto.WipeBytes(key)

	if err = v.protect(func() error { return v.store.Store(ctx, key) }); err != nil {
		v.logger.Err(err).Msg("storing vault key failed")
		return err
	}

	if v.backup != nil {
		if err = v.saveBackup(ctx, key); err != nil {
			v.logger.Err(err).Msg("saving vault backup failed, rolling back")
			return v.rollbackInitialize(ctx, err)
		}
	}

	v.mu.Lock()
	v.key = memguard.NewBufferFromBytes(key)
	v.status = Unlocked
	v.mu.Unlock()

	v.touch()
	v.metrics.SetUnlocked(true)
	v.logger.Info().Msg("vault initialized")

	return nil
}

// rollbackInitialize removes the key stored by a failed Initialize. The
// purge runs detached from ctx: a cancelled setup must not leave the key
// behind. When the purge fails anyway the vault reports Locked, matching
// what the key store holds, and the error wraps ErrPartialSetup.
func (v *Vault) rollbackInitialize(ctx context.Context, cause error) error {
	purgeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	purgeErr := v.protect(func() error { return v.store.Purge(purgeCtx) })
	if purgeErr == nil {
		return fmt.Errorf("%w: %w", ErrBackupFailed, cause)
	}

	v.logger.Err(purgeErr).Msg("rollback of stored vault key failed")
	v.mu.Lock()
	v.status = Locked
	v.mu.Unlock()

	return fmt.Errorf("%w: %w: %w (purge: %w)", ErrBackupFailed, ErrPartialSetup, cause, purgeErr)
}

func (v *Vault) saveBackup(ctx context.Context, key []byte) error {
	encoded := base64.StdEncoding.EncodeToString(key)
	sealed, err := crypto.SealString(encoded, key)
	if err != nil {
		return err
	}

	backup := models.VaultBackup{
		VaultBackup:        sealed,
		VaultInitializedAt: v.now().UTC(),
	}
	return v.protect(func() error { return v.backup.SaveBackup(ctx, backup) })
}

// pendingUnlock is one shared unlock attempt. Its context lives while at
// least one caller still waits for the result.
type pendingUnlock struct {
	key     string
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// Unlock authenticates the user through the key store and loads the key.
// Unlocking an unlocked vault is a no-op. Concurrent calls share a single
// prompt. On any failure the vault stays Locked and keeps no key material.
//
// Every caller returns as soon as its own ctx is done. The shared prompt is
// cancelled only when all callers have gone.
func (v *Vault) Unlock(ctx context.Context) error {
	switch v.Status() {
	case Uninitialized:
		return ErrNotInitialized
	case Unlocked:
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrAuthenticationCancelled, err)
	}

	p, ch := v.joinUnlock(ctx)
	select {
	case res := <-ch:
		v.leaveUnlock(p)
		return res.Err
	case <-ctx.Done():
		v.leaveUnlock(p)
		return fmt.Errorf("%w: %w", ErrAuthenticationCancelled, ctx.Err())
	}
}

func (v *Vault) joinUnlock(ctx context.Context) (*pendingUnlock, <-chan singleflight.Result) {
	v.unlockMu.Lock()
	defer v.unlockMu.Unlock()

	p := v.pending
	if p == nil {
		v.unlockGen++
		pctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		p = &pendingUnlock{
			key:    "unlock-" + strconv.FormatUint(v.unlockGen, 10),
			ctx:    pctx,
			cancel: cancel,
		}
		v.pending = p
	}
	p.waiters++

	ch := v.unlockSF.DoChan(p.key, func() (any, error) {
		err := v.unlock(p.ctx)

		v.unlockMu.Lock()
		if v.pending == p {
			v.pending = nil
		}
		v.unlockMu.Unlock()
		p.cancel()

		return nil, err
	})
	return p, ch
}

// leaveUnlock drops one waiter; the last one to leave cancels the attempt.
func (v *Vault) leaveUnlock(p *pendingUnlock) {
	v.unlockMu.Lock()
	defer v.unlockMu.Unlock()

	p.waiters--
	if p.waiters > 0 {
		return
	}
	if v.pending == p {
		v.pending = nil
	}
	p.cancel()
}

func (v *Vault) unlock(ctx context.Context) error {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	v.mu.RLock()
	status, epoch := v.status, v.epoch
	v.mu.RUnlock()

	switch status {
	case Uninitialized:
		return ErrNotInitialized
	case Unlocked:
		return nil
	}

	if v.limiter != nil && v.limiter.Tokens() < 1 {
		v.metrics.ObserveUnlock(metrics.ResultFailure)
		return ErrTooManyAttempts
	}

	var key []byte
	err := v.protect(func() error {
		var retrieveErr error
		key, retrieveErr = v.store.Retrieve(ctx)
		return retrieveErr
	})
	if err != nil {
		return v.unlockFailed(err)
	}

	v.mu.Lock()
	if v.epoch != epoch {
		v.mu.Unlock()
		crypto.WipeBytes(key)
		v.metrics.ObserveUnlock(metrics.ResultLocked)
		return ErrLocked
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		// nobody is waiting for the key any more
		v.mu.Unlock()
		crypto.WipeBytes(key)
		v.metrics.ObserveUnlock(metrics.ResultCancelled)
		return fmt.Errorf("%w: %w", ErrAuthenticationCancelled, ctxErr)
	}
	if len(key) != crypto.KeySize {
		v.mu.Unlock()
		crypto.WipeBytes(key)
		v.metrics.ObserveUnlock(metrics.ResultFailure)
		return fmt.Errorf("%w: stored key has wrong size", ErrStorageFailure)
	}
	v.key = memguard.NewBufferFromBytes(key)
	v.status = Unlocked
	v.mu.Unlock()

	v.touch()
	v.metrics.ObserveUnlock(metrics.ResultSuccess)
	v.metrics.SetUnlocked(true)
	v.logger.Info().Msg("vault unlocked")

	return nil
}

func (v *Vault) unlockFailed(err error) error {
	switch {
	case errors.Is(err, ErrAuthenticationCancelled):
		v.metrics.ObserveUnlock(metrics.ResultCancelled)
		return err
	case errors.Is(err, keystore.ErrKeyNotFound):
		// The key vanished underneath us, e.g. wiped in system settings.
		v.mu.Lock()
		v.status = Uninitialized
		v.mu.Unlock()
		v.metrics.ObserveUnlock(metrics.ResultFailure)
		v.logger.Warn().Msg("stored vault key is gone, vault reset to uninitialized")
		return ErrNotInitialized
	case errors.Is(err, ErrAuthenticationFailed) && v.limiter != nil:
		v.limiter.Allow()
	}

	v.metrics.ObserveUnlock(metrics.ResultFailure)
	v.logger.Warn().Err(err).Msg("vault unlock failed")
	return err
}

// Lock drops the key. It never blocks on a prompt, may be called in any
// state and more than once. In-flight cipher calls fail with ErrLocked.
func (v *Vault) Lock() {
	v.mu.Lock()
	if v.key != nil {
		v.key.Destroy()
		v.key = nil
	}
	if v.status == Unlocked {
		v.status = Locked
	}
	v.epoch++
	v.mu.Unlock()

	v.metrics.IncrementLocks()
	v.metrics.SetUnlocked(false)
}

// Reset destroys the key, removes it from the key store and deletes the
// remote backup. The vault ends Uninitialized unless the key store could
// not be cleared.
func (v *Vault) Reset(ctx context.Context) error {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	v.Lock()

	if err := v.protect(func() error { return v.store.Purge(ctx) }); err != nil {
		v.logger.Err(err).Msg("purging vault key failed")
		return err
	}

	v.mu.Lock()
	v.status = Uninitialized
	v.mu.Unlock()

	if v.backup != nil {
		if err := v.protect(func() error { return v.backup.DeleteBackup(ctx) }); err != nil {
			v.logger.Err(err).Msg("deleting vault backup failed")
			return fmt.Errorf("%w: %w", ErrBackupFailed, err)
		}
	}

	v.logger.Info().Msg("vault reset")
	return nil
}

// VerifyBackup checks that backup was produced by Initialize for the key
// the vault holds now. The vault must be unlocked.
func (v *Vault) VerifyBackup(ctx context.Context, backup models.VaultBackup) error {
	blob, err := base64.StdEncoding.DecodeString(backup.VaultBackup)
	if err != nil || len(blob) < crypto.MinSealedSize {
		return ErrBackupMismatch
	}

	lease, err := v.Lease()
	if err != nil {
		return err
	}

	inner, err := lease.Unseal(ctx, blob)
	if err != nil {
		return err
	}
	defer crypto.WipeBytes(inner)

	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.epoch != lease.epoch || v.key == nil {
		return ErrLocked
	}
	want := base64.StdEncoding.EncodeToString(v.key.Bytes())
	if subtle.ConstantTimeCompare(inner, []byte(want)) != 1 {
		return ErrBackupMismatch
	}

	return nil
}

// protect runs a call into the platform layers and turns a panic into
// ErrStorageFailure so the vault state stays consistent.
func (v *Vault) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error().Interface("panic", r).Msg("key store call panicked")
			err = fmt.Errorf("%w: %v", ErrStorageFailure, r)
		}
	}()
	return fn()
}

func (v *Vault) hasStoredKey(ctx context.Context) (ok bool) {
	_ = v.protect(func() error {
		ok = v.store.HasStoredKey(ctx)
		return nil
	})
	return ok
}
