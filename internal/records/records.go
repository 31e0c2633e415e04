// Package records seals record fields and file blobs before they reach the
// document store and opens them on the way back.
//
// A record carries one isEncrypted flag. Records written before encryption
// was introduced have it false and are handed back untouched.
package records

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/identra-vault/internal/crypto"
	"github.com/MKhiriev/identra-vault/internal/logger"
)

// Cipher is the part of the vault this package needs. Both *vault.Vault and
// *vault.Lease implement it.
type Cipher interface {
	Seal(ctx context.Context, plaintext []byte) ([]byte, error)
	Unseal(ctx context.Context, blob []byte) ([]byte, error)
	SealString(ctx context.Context, text string) (string, error)
	UnsealString(ctx context.Context, text string) (string, error)
}

// Field is one record value together with its encryption flag.
type Field struct {
	Value       string `json:"value"`
	IsEncrypted bool   `json:"isEncrypted"`
}

// SealedRecord is a record in its stored form.
type SealedRecord struct {
	Fields      map[string]string `json:"fields"`
	IsEncrypted bool              `json:"isEncrypted"`
}

// SealField encrypts value.
func SealField(ctx context.Context, c Cipher, value string) (Field, error) {
	sealed, err := c.SealString(ctx, value)
	if err != nil {
		return Field{}, err
	}
	return Field{Value: sealed, IsEncrypted: true}, nil
}

// OpenField returns the plaintext of f. A field not flagged encrypted is
// returned as is without touching the cipher.
func OpenField(ctx context.Context, c Cipher, f Field) (string, error) {
	if !f.IsEncrypted {
		return f.Value, nil
	}
	if !crypto.IsSealedText(f.Value) {
		logger.FromContext(ctx).Warn().
			Int("length", len(f.Value)).
			Msg("field flagged encrypted is not a sealed blob, passing it through")
	}
	return c.UnsealString(ctx, f.Value)
}

// SealRecord encrypts every value of fields.
func SealRecord(ctx context.Context, c Cipher, fields map[string]string) (SealedRecord, error) {
	out := SealedRecord{Fields: make(map[string]string, len(fields)), IsEncrypted: true}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		f, err := SealField(ctx, c, fields[name])
		if err != nil {
			return SealedRecord{}, fmt.Errorf("seal field %q: %w", name, err)
		}
		out.Fields[name] = f.Value
	}
	return out, nil
}

// OpenRecord decrypts every value of rec. Legacy records come back as a
// copy of their fields.
func OpenRecord(ctx context.Context, c Cipher, rec SealedRecord) (map[string]string, error) {
	if !rec.IsEncrypted {
		return maps.Clone(rec.Fields), nil
	}

	out := make(map[string]string, len(rec.Fields))
	for _, name := range slices.Sorted(maps.Keys(rec.Fields)) {
		value, err := OpenField(ctx, c, Field{Value: rec.Fields[name], IsEncrypted: true})
		if err != nil {
			return nil, fmt.Errorf("open field %q: %w", name, err)
		}
		out[name] = value
	}
	return out, nil
}
