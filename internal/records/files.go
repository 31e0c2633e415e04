package records

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/identra-vault/internal/crypto"
)

const filePerm = 0o600

// SealFile encrypts the file at src and writes the blob to dst.
func SealFile(ctx context.Context, c Cipher, src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	defer crypto.WipeBytes(data)

	blob, err := c.Seal(ctx, data)
	if err != nil {
		return err
	}

	return writeFile(dst, blob)
}

// OpenFile decrypts the blob at src and writes the plaintext to dst. Files
// shorter than a blob are copied unchanged.
func OpenFile(ctx context.Context, c Cipher, src, dst string) error {
	blob, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	plaintext, err := c.Unseal(ctx, blob)
	if err != nil {
		return err
	}
	defer crypto.WipeBytes(plaintext)

	return writeFile(dst, plaintext)
}

// writeFile writes through a temp file in the target directory so a failed
// write never leaves a truncated dst.
func writeFile(dst string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("rename to %s: %w", dst, err)
	}
	return nil
}
