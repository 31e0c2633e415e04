package keystore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/identra-vault/internal/crypto"
	"golang.org/x/term"
)

// MinPasscodeLength is the shortest device passcode accepted on enrollment.
const MinPasscodeLength = 6

var errPasscodeMismatch = errors.New("passcodes do not match")

// TerminalAuthenticator reads a device passcode from the controlling
// terminal without echo. It is unavailable when stdin is not a terminal.
type TerminalAuthenticator struct {
	fd  int
	out io.Writer

	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

// NewTerminalAuthenticator returns an authenticator bound to os.Stdin that
// writes prompts to os.Stderr.
func NewTerminalAuthenticator() *TerminalAuthenticator {
	return &TerminalAuthenticator{
		fd:           int(os.Stdin.Fd()),
		out:          os.Stderr,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

// Availability implements [Authenticator].
func (a *TerminalAuthenticator) Availability(_ context.Context) Availability {
	if !a.isTerminal(a.fd) {
		return AvailabilityNoHardware
	}
	return AvailabilityReady
}

// Authenticate implements [Authenticator]. Empty input, EOF and ctx
// cancellation are all ErrAuthenticationCancelled. On enrollment the
// passcode is asked twice and must be at least MinPasscodeLength long.
func (a *TerminalAuthenticator) Authenticate(ctx context.Context, prompt Prompt) ([]byte, error) {
	secret, err := a.read(ctx, prompt.Reason)
	if err != nil {
		return nil, err
	}
	if !prompt.Enroll {
		return secret, nil
	}

	if len(secret) < MinPasscodeLength {
		crypto.WipeBytes(secret)
		return nil, fmt.Errorf("%w: passcode shorter than %d characters", ErrAuthenticationFailed, MinPasscodeLength)
	}

	repeat, err := a.read(ctx, "Repeat the passcode")
	if err != nil {
		crypto.WipeBytes(secret)
		return nil, err
	}
	defer crypto.WipeBytes(repeat)

	if !bytes.Equal(secret, repeat) {
		crypto.WipeBytes(secret)
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, errPasscodeMismatch)
	}
	return secret, nil
}

// read prints the prompt and waits for one line. term.ReadPassword cannot
// be interrupted, so on cancellation the pending read is abandoned and its
// result wiped when it eventually arrives.
func (a *TerminalAuthenticator) read(ctx context.Context, reason string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationCancelled, err)
	}

	fmt.Fprintf(a.out, "%s: ", reason)

	type result struct {
		line []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := a.readPassword(a.fd)
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(a.out)
		go func() { crypto.WipeBytes((<-done).line) }()
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationCancelled, ctx.Err())
	case r := <-done:
		fmt.Fprintln(a.out)
		switch {
		case errors.Is(r.err, io.EOF):
			return nil, ErrAuthenticationCancelled
		case r.err != nil:
			return nil, fmt.Errorf("%w: read passcode: %w", ErrAuthenticationFailed, r.err)
		case len(r.line) == 0:
			return nil, ErrAuthenticationCancelled
		}
		return r.line, nil
	}
}
