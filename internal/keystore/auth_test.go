package keystore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTerminal returns a TerminalAuthenticator that answers reads from
// lines in order.
func scriptedTerminal(out io.Writer, lines ...string) *TerminalAuthenticator {
	i := 0
	return &TerminalAuthenticator{
		fd:         0,
		out:        out,
		isTerminal: func(int) bool { return true },
		readPassword: func(int) ([]byte, error) {
			if i >= len(lines) {
				return nil, io.EOF
			}
			line := lines[i]
			i++
			return []byte(line), nil
		},
	}
}

// ── TerminalAuthenticator ─────────────────────────────────────────────────────

func TestTerminalAuthenticator_Unlock(t *testing.T) {
	var out bytes.Buffer
	a := scriptedTerminal(&out, "246810")

	secret, err := a.Authenticate(context.Background(), Prompt{Reason: "Unlock the vault"})
	require.NoError(t, err)
	assert.Equal(t, []byte("246810"), secret)
	assert.Contains(t, out.String(), "Unlock the vault: ")
	assert.NotContains(t, out.String(), "246810")
}

func TestTerminalAuthenticator_Enroll(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{name: "matching", lines: []string{"246810", "246810"}},
		{name: "mismatch", lines: []string{"246810", "246811"}, want: ErrAuthenticationFailed},
		{name: "too short", lines: []string{"123", "123"}, want: ErrAuthenticationFailed},
		{name: "second read cancelled", lines: []string{"246810", ""}, want: ErrAuthenticationCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := scriptedTerminal(io.Discard, tt.lines...)
			secret, err := a.Authenticate(context.Background(), Prompt{Reason: "Choose", Enroll: true})
			if tt.want != nil {
				assert.Nil(t, secret)
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte(tt.lines[0]), secret)
		})
	}
}

func TestTerminalAuthenticator_EmptyAndEOFCancel(t *testing.T) {
	_, err := scriptedTerminal(io.Discard, "").Authenticate(context.Background(), Prompt{})
	assert.ErrorIs(t, err, ErrAuthenticationCancelled)

	_, err = scriptedTerminal(io.Discard).Authenticate(context.Background(), Prompt{})
	assert.ErrorIs(t, err, ErrAuthenticationCancelled)
}

func TestTerminalAuthenticator_ReadError(t *testing.T) {
	a := scriptedTerminal(io.Discard)
	a.readPassword = func(int) ([]byte, error) { return nil, errors.New("inappropriate ioctl") }

	_, err := a.Authenticate(context.Background(), Prompt{})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestTerminalAuthenticator_ContextCancelWhileWaiting(t *testing.T) {
	release := make(chan struct{})
	a := scriptedTerminal(io.Discard)
	a.readPassword = func(int) ([]byte, error) {
		<-release
		return []byte("late"), nil
	}
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	secret, err := a.Authenticate(ctx, Prompt{})
	assert.Nil(t, secret)
	assert.ErrorIs(t, err, ErrAuthenticationCancelled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTerminalAuthenticator_Availability(t *testing.T) {
	a := scriptedTerminal(io.Discard)
	assert.Equal(t, AvailabilityReady, a.Availability(context.Background()))

	a.isTerminal = func(int) bool { return false }
	assert.Equal(t, AvailabilityNoHardware, a.Availability(context.Background()))
}

// ── DevAuthenticator ──────────────────────────────────────────────────────────

func TestDevAuthenticator_Disabled(t *testing.T) {
	a := NewDevAuthenticator(false, logger.Nop())

	assert.Equal(t, AvailabilityNoHardware, a.Availability(context.Background()))
	_, err := a.Authenticate(context.Background(), Prompt{})
	assert.ErrorIs(t, err, ErrBiometricUnavailable)
}

func TestDevAuthenticator_EnabledWarnsOnEveryUse(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}
	a := NewDevAuthenticator(true, log)

	assert.Equal(t, AvailabilityReady, a.Availability(context.Background()))

	s1, err := a.Authenticate(context.Background(), Prompt{Reason: "first"})
	require.NoError(t, err)
	s2, err := a.Authenticate(context.Background(), Prompt{Reason: "second"})
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"level":"warn"`)))
	assert.NotContains(t, buf.String(), devSecret)
}

func TestDevAuthenticator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDevAuthenticator(true, logger.Nop()).Authenticate(ctx, Prompt{})
	assert.ErrorIs(t, err, ErrAuthenticationCancelled)
}
