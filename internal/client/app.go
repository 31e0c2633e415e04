package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/identra-vault/internal/adapter"
	"github.com/MKhiriev/identra-vault/internal/app"
	"github.com/MKhiriev/identra-vault/internal/config"
	"github.com/MKhiriev/identra-vault/internal/crypto"
	"github.com/MKhiriev/identra-vault/internal/keystore"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/metrics"
	"github.com/MKhiriev/identra-vault/internal/mnemonic"
	"github.com/MKhiriev/identra-vault/internal/session"
	"github.com/MKhiriev/identra-vault/internal/store"
	"github.com/MKhiriev/identra-vault/internal/vault"
	"github.com/MKhiriev/identra-vault/models"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the vault CLI of one signed-in user.
type App struct {
	cfg      *config.ClientConfig
	sessions *session.Manager
	auth     keystore.Authenticator
	keychain crypto.KeyChainService

	// backup is nil when no escrow server is configured.
	backup adapter.ProfileAdapter
	// storages is nil unless the sqlite key store is selected.
	storages *store.ClientStorages

	registry *prometheus.Registry
	metrics  *metrics.VaultMetrics

	generate  func() (mnemonic.Phrase, error)
	challenge func(n int) ([]int, error)

	in  *bufio.Reader
	out io.Writer

	build  models.AppBuildInfo
	logger *logger.Logger
}

// NewApp wires the local key store, the escrow adapter and the session of
// cfg.App.UserID. Nothing prompts until a command needs the key.
func NewApp(ctx context.Context, cfg *config.ClientConfig, build models.AppBuildInfo, log *logger.Logger) (*App, error) {
	a := &App{
		cfg:       cfg,
		keychain:  crypto.NewKeyChainService(),
		registry:  prometheus.NewRegistry(),
		generate:  mnemonic.Generate,
		challenge: mnemonic.Challenge,
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		build:     build,
		logger:    log,
	}
	a.metrics = metrics.NewVaultMetrics(a.registry)

	if cfg.App.DevMode {
		a.auth = keystore.NewDevAuthenticator(true, log)
	} else {
		a.auth = keystore.NewTerminalAuthenticator()
	}

	if cfg.Vault.KeyStore == config.KeyStoreSQLite {
		storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
		if err != nil {
			return nil, fmt.Errorf("open local key store: %w", err)
		}
		a.storages = storages
	}

	if cfg.Adapter.HTTPAddress != "" {
		backup, err := adapter.NewHTTPProfileAdapter(cfg.Adapter, cfg.App, log)
		if err != nil {
			a.closeStorages()
			return nil, fmt.Errorf("create backup adapter: %w", err)
		}
		a.backup = backup
	}

	a.sessions = session.NewManager(a.openVault, a.auth, log)

	return a, nil
}

// openVault is the session.VaultFactory of the app.
func (a *App) openVault(ctx context.Context, userID string) (*vault.Vault, error) {
	log := a.logger.WithUser(userID)

	var backend keystore.Backend
	switch a.cfg.Vault.KeyStore {
	case config.KeyStoreSQLite:
		if a.storages == nil {
			return nil, ErrLocalStorageDisabled
		}
		backend = a.storages.KeyBackend(userID)
	default:
		backend = keystore.NewKeyringBackend(a.cfg.Vault.Service, userID)
	}

	opts := vault.Options{
		Salt:                a.cfg.Vault.DerivationSalt,
		MaxUnlockAttempts:   a.cfg.Vault.MaxUnlockAttempts,
		UnlockRetryInterval: a.cfg.Vault.UnlockRetryInterval,
		Metrics:             a.metrics,
	}
	if a.backup != nil {
		opts.Backup = a.backup
	}

	ks := keystore.NewWrappedKeyStore(backend, a.auth, a.keychain, log)
	return vault.New(ctx, ks, log, opts), nil
}

// Run executes one command. With no arguments it starts the shell.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{cmdShell}
	}
	ctx = a.logger.WithContext(ctx)

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %q, see `vault help`", ErrUnknownCommand, args[0])
	}

	if cmd.session {
		if _, err := a.sessions.SwitchUser(ctx, a.cfg.App.UserID); err != nil {
			return err
		}
		var err error
		if ctx, err = a.sessions.WithVault(ctx); err != nil {
			return err
		}
	}

	if err := cmd.run(a, ctx, args[1:]); err != nil {
		a.logger.Err(err).Str("command", args[0]).Msg("command failed")
		return err
	}
	return nil
}

// Close implements [Client].
func (a *App) Close() error {
	a.sessions.SignOut()
	return a.closeStorages()
}

func (a *App) closeStorages() error {
	if a.storages == nil {
		return nil
	}
	return a.storages.Close()
}

// ReportError prints the user-facing text of err.
func (a *App) ReportError(w io.Writer, err error) {
	switch {
	case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrUsage),
		errors.Is(err, ErrConfirmationFailed), errors.Is(err, ErrAborted),
		errors.Is(err, ErrBackupNotConfigured), errors.Is(err, session.ErrInvalidUserID):
		fmt.Fprintf(w, "error: %v\n", err)
	default:
		fmt.Fprintf(w, "error: %s\n", app.Message(err))
	}
}

// currentVault returns the vault attached to ctx by Run.
func currentVault(ctx context.Context) *vault.Vault {
	v, ok := vault.FromContext(ctx)
	if !ok {
		panic("client: command run without a session")
	}
	return v
}

// ensureUnlocked unlocks the vault when it is locked. It prompts for device
// authentication.
func (a *App) ensureUnlocked(ctx context.Context) (*vault.Vault, error) {
	v := currentVault(ctx)
	switch v.Status() {
	case vault.Unlocked:
		return v, nil
	case vault.Uninitialized:
		return nil, vault.ErrNotInitialized
	}
	if !a.sessions.BiometricsAvailable(ctx) {
		return nil, vault.ErrBiometricUnavailable
	}
	if err := v.Unlock(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

// readLine prints prompt and returns the next trimmed input line.
func (a *App) readLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(a.out, prompt)
	}
	line, err := a.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", ErrInputClosed
	}
	return strings.TrimSpace(line), nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
