package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/identra-vault/internal/workers"
)

// shell reads commands until quit or end of input. The vault is locked by
// the auto-locker after cfg.Vault.AutoLock of inactivity.
func (a *App) shell(ctx context.Context, _ []string) error {
	v := currentVault(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bg := workers.NewWorkers(
		workers.NewAutoLocker(v, a.cfg.Vault.AutoLock, a.logger.WithUser(a.sessions.UserID())),
	)
	bg.Start(ctx)
	defer bg.Stop()

	a.printf("Vault shell for %s. Type `help` for commands, `quit` to leave.\n", a.sessions.UserID())
	for {
		line, err := a.readLine("vault> ")
		if errors.Is(err, ErrInputClosed) {
			a.printf("\n")
			return nil
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit":
			return nil
		case cmdShell:
			continue
		}

		cmd, ok := commands[args[0]]
		if !ok {
			a.ReportError(a.out, fmt.Errorf("%w: %q", ErrUnknownCommand, args[0]))
			continue
		}
		if err = cmd.run(a, ctx, args[1:]); err != nil {
			a.logger.Err(err).Str("command", args[0]).Msg("shell command failed")
			a.ReportError(a.out, err)
		}
	}
}

// stats prints the vault counters gathered in this process.
func (a *App) stats(_ context.Context, _ []string) error {
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}

			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				a.printf("%-60s %g\n", name, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				a.printf("%-60s %g\n", name, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				a.printf("%-60s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
