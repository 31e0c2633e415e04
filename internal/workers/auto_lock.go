// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/vault"
)

const maxCheckInterval = 30 * time.Second

type autoLocker struct {
	vault  Lockable
	idle   time.Duration
	every  time.Duration
	now    func() time.Time
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAutoLocker returns a Worker that locks v once it has been idle for
// idle. The vault is checked every idle/4, at most every 30s. A
// non-positive idle disables the worker.
func NewAutoLocker(v Lockable, idle time.Duration, log *logger.Logger) Worker {
	every := min(idle/4, maxCheckInterval)
	if every <= 0 {
		every = time.Second
	}
	return &autoLocker{vault: v, idle: idle, every: every, now: time.Now, logger: log}
}

// Start implements Worker. It stops a running job first.
func (a *autoLocker) Start(ctx context.Context) {
	if a.idle <= 0 {
		return
	}

	a.Stop()

	a.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		t := time.NewTicker(a.every)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				a.check()
			}
		}
	}()
}

func (a *autoLocker) check() {
	if a.vault.Status() != vault.Unlocked {
		return
	}
	if idle := a.now().Sub(a.vault.LastActivity()); idle >= a.idle {
		a.vault.Lock()
		a.logger.Info().Dur("idle", idle).Msg("vault auto-locked after inactivity")
	}
}

// Stop implements Worker.
func (a *autoLocker) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	a.wg.Wait()
}
