package vault

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying v.
func NewContext(ctx context.Context, v *Vault) context.Context {
	return context.WithValue(ctx, ctxKey{}, v)
}

// FromContext returns the vault stored in ctx by NewContext.
func FromContext(ctx context.Context) (*Vault, bool) {
	v, ok := ctx.Value(ctxKey{}).(*Vault)
	return v, ok && v != nil
}
