// Package workers runs the background jobs of the vault client.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers as one.
package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/identra-vault/internal/vault"
)

// Worker is a background job. Start returns immediately; the job runs until
// ctx is done or Stop is called. Stop blocks until the job has exited and is
// a no-op for a job that is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Lockable is the part of *vault.Vault the auto-locker watches.
type Lockable interface {
	Status() vault.Status
	LastActivity() time.Time
	Lock()
}
