package client

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/MKhiriev/identra-vault/internal/mnemonic"
	"github.com/MKhiriev/identra-vault/internal/records"
	"github.com/MKhiriev/identra-vault/internal/vault"
)

const (
	cmdHelp         = "help"
	cmdVersion      = "version"
	cmdStatus       = "status"
	cmdInit         = "init"
	cmdRestore      = "restore"
	cmdUnlock       = "unlock"
	cmdLock         = "lock"
	cmdSealText     = "seal-text"
	cmdOpenText     = "open-text"
	cmdSealFile     = "seal-file"
	cmdOpenFile     = "open-file"
	cmdSealRecord   = "seal-record"
	cmdOpenRecord   = "open-record"
	cmdVerifyBackup = "verify-backup"
	cmdReset        = "reset"
	cmdStats        = "stats"
	cmdShell        = "shell"
)

// challengeSize is how many recovery words the user types back on init.
const challengeSize = 3

const resetConfirmation = "RESET"

type command struct {
	usage string
	// session commands run with the user's vault in ctx.
	session bool
	run     func(a *App, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		cmdHelp:         {usage: "show this help", run: (*App).help},
		cmdVersion:      {usage: "print build information", run: (*App).version},
		cmdStatus:       {usage: "show the vault state", session: true, run: (*App).status},
		cmdInit:         {usage: "create a vault with a new recovery phrase", session: true, run: (*App).initialize},
		cmdRestore:      {usage: "restore the vault from a recovery phrase", session: true, run: (*App).restore},
		cmdUnlock:       {usage: "unlock the vault with device authentication", session: true, run: (*App).unlock},
		cmdLock:         {usage: "lock the vault", session: true, run: (*App).lock},
		cmdSealText:     {usage: "seal-text [TEXT]  encrypt a value (read from input when omitted)", session: true, run: (*App).sealText},
		cmdOpenText:     {usage: "open-text [BLOB]  decrypt a value", session: true, run: (*App).openText},
		cmdSealFile:     {usage: "seal-file SRC DST  encrypt a file", session: true, run: (*App).sealFile},
		cmdOpenFile:     {usage: "open-file SRC DST  decrypt a file", session: true, run: (*App).openFile},
		cmdSealRecord:   {usage: "seal-record [JSON]  encrypt every field of a JSON object", session: true, run: (*App).sealRecord},
		cmdOpenRecord:   {usage: "open-record [JSON]  decrypt a sealed record", session: true, run: (*App).openRecord},
		cmdVerifyBackup: {usage: "check the server backup against this vault", session: true, run: (*App).verifyBackup},
		cmdReset:        {usage: "erase the vault key and the server backup", session: true, run: (*App).reset},
		cmdStats:        {usage: "print vault counters", run: (*App).stats},
		cmdShell:        {usage: "interactive shell with auto-lock", session: true, run: (*App).shell},
	}
}

func (a *App) help(_ context.Context, _ []string) error {
	a.printf("usage: vault [flags] COMMAND [ARGS]\n\ncommands:\n")
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		usage := commands[name].usage
		if !strings.HasPrefix(usage, name) {
			usage = name + "  " + usage
		}
		a.printf("  %s\n", usage)
	}
	return nil
}

func (a *App) version(_ context.Context, _ []string) error {
	a.printf("%s\n", a.build.String())
	return nil
}

func (a *App) status(ctx context.Context, _ []string) error {
	v := currentVault(ctx)
	a.printf("user:                  %s\n", a.sessions.UserID())
	a.printf("vault:                 %s\n", v.Status())
	a.printf("device authentication: %s\n", a.auth.Availability(ctx))
	a.printf("key store:             %s\n", a.cfg.Vault.KeyStore)
	a.printf("server backup:         %t\n", a.backup != nil)
	return nil
}

// initialize generates a phrase, shows it once and asks for a few of its
// words back before the vault is set up.
func (a *App) initialize(ctx context.Context, _ []string) error {
	v := currentVault(ctx)
	if v.Status() != vault.Uninitialized {
		return vault.ErrAlreadyInitialized
	}

	phrase, err := a.generate()
	if err != nil {
		return err
	}

	a.printf("Write down your recovery phrase. It is the only way to restore the vault.\n\n")
	for i, word := range phrase.Words() {
		a.printf("%2d. %s\n", i+1, word)
	}
	a.printf("\n")

	positions, err := a.challenge(challengeSize)
	if err != nil {
		return err
	}
	answers := make(map[int]string, len(positions))
	for _, pos := range positions {
		answer, err := a.readLine(fmt.Sprintf("Word #%d: ", pos+1))
		if err != nil {
			return err
		}
		answers[pos] = answer
	}
	if !mnemonic.Confirm(phrase, answers) {
		return ErrConfirmationFailed
	}

	if err = v.Initialize(ctx, phrase.Reveal()); err != nil {
		return err
	}
	a.printf("Vault created and unlocked.\n")
	return nil
}

func (a *App) restore(ctx context.Context, _ []string) error {
	v := currentVault(ctx)
	if v.Status() != vault.Uninitialized {
		return vault.ErrAlreadyInitialized
	}

	phrase, err := a.readLine("Recovery phrase (12 words): ")
	if err != nil {
		return err
	}
	if !mnemonic.Validate(phrase) {
		return vault.ErrInvalidMnemonic
	}

	if err = v.Initialize(ctx, mnemonic.Normalize(phrase)); err != nil {
		return err
	}
	a.printf("Vault restored and unlocked.\n")
	return nil
}

func (a *App) unlock(ctx context.Context, _ []string) error {
	if _, err := a.ensureUnlocked(ctx); err != nil {
		return err
	}
	a.printf("Vault unlocked.\n")
	return nil
}

func (a *App) lock(ctx context.Context, _ []string) error {
	currentVault(ctx).Lock()
	a.printf("Vault locked.\n")
	return nil
}

// argOrLine returns the joined args, or one input line when args is empty.
func (a *App) argOrLine(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return a.readLine(prompt)
}

func (a *App) sealText(ctx context.Context, args []string) error {
	text, err := a.argOrLine(args, "Text: ")
	if err != nil {
		return err
	}
	v, err := a.ensureUnlocked(ctx)
	if err != nil {
		return err
	}

	f, err := records.SealField(ctx, v, text)
	if err != nil {
		return err
	}
	a.printf("%s\n", f.Value)
	return nil
}

func (a *App) openText(ctx context.Context, args []string) error {
	blob, err := a.argOrLine(args, "Sealed text: ")
	if err != nil {
		return err
	}
	v, err := a.ensureUnlocked(ctx)
	if err != nil {
		return err
	}

	text, err := records.OpenField(ctx, v, records.Field{Value: blob, IsEncrypted: true})
	if err != nil {
		return err
	}
	a.printf("%s\n", text)
	return nil
}

func (a *App) sealFile(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: %s", ErrUsage, commands[cmdSealFile].usage)
	}
	v, err := a.ensureUnlocked(ctx)
	if err != nil {
		return err
	}
	if err = records.SealFile(ctx, v, args[0], args[1]); err != nil {
		return err
	}
	a.printf("Sealed %s -> %s\n", args[0], args[1])
	return nil
}

func (a *App) openFile(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: %s", ErrUsage, commands[cmdOpenFile].usage)
	}
	v, err := a.ensureUnlocked(ctx)
	if err != nil {
		return err
	}
	if err = records.OpenFile(ctx, v, args[0], args[1]); err != nil {
		return err
	}
	a.printf("Opened %s -> %s\n", args[0], args[1])
	return nil
}

// sealRecord reads a flat JSON object of strings and prints its sealed form.
// All fields are sealed under one lease so a concurrent lock cannot leave
// the record half encrypted.
func (a *App) sealRecord(ctx context.Context, args []string) error {
	raw, err := a.argOrLine(args, "Record JSON: ")
	if err != nil {
		return err
	}
	var fields map[string]string
	if err = json.Unmarshal([]byte(raw), &fields); err != nil {
		return fmt.Errorf("%w: record must be a JSON object of strings: %w", ErrUsage, err)
	}

	v, err := a.ensureUnlocked(ctx)
	if err != nil {
		return err
	}
	lease, err := v.Lease()
	if err != nil {
		return err
	}

	rec, err := records.SealRecord(ctx, lease, fields)
	if err != nil {
		return err
	}
	return a.printJSON(rec)
}

func (a *App) openRecord(ctx context.Context, args []string) error {
	raw, err := a.argOrLine(args, "Sealed record JSON: ")
	if err != nil {
		return err
	}
	var rec records.SealedRecord
	if err = json.Unmarshal([]byte(raw), &rec); err != nil {
		return fmt.Errorf("%w: malformed sealed record: %w", ErrUsage, err)
	}

	v, err := a.ensureUnlocked(ctx)
	if err != nil {
		return err
	}
	lease, err := v.Lease()
	if err != nil {
		return err
	}

	fields, err := records.OpenRecord(ctx, lease, rec)
	if err != nil {
		return err
	}
	return a.printJSON(fields)
}

func (a *App) printJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	a.printf("%s\n", data)
	return nil
}

func (a *App) verifyBackup(ctx context.Context, _ []string) error {
	if a.backup == nil {
		return ErrBackupNotConfigured
	}

	backup, err := a.backup.GetBackup(ctx)
	if err != nil {
		return err
	}

	v, err := a.ensureUnlocked(ctx)
	if err != nil {
		return err
	}
	if err = v.VerifyBackup(ctx, backup); err != nil {
		return err
	}

	a.printf("Server backup matches this vault (created %s).\n", backup.VaultInitializedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func (a *App) reset(ctx context.Context, _ []string) error {
	v := currentVault(ctx)
	if v.Status() == vault.Uninitialized {
		return vault.ErrNotInitialized
	}

	a.printf("This erases the vault key on this device")
	if a.backup != nil {
		a.printf(" and the server backup")
	}
	a.printf(".\nData sealed so far can only be opened again with the recovery phrase.\n")

	answer, err := a.readLine(fmt.Sprintf("Type %s to continue: ", resetConfirmation))
	if err != nil {
		return err
	}
	if answer != resetConfirmation {
		return ErrAborted
	}

	if err = v.Reset(ctx); err != nil {
		return err
	}
	a.printf("Vault erased.\n")
	return nil
}
