package helper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash8 is a short stable fingerprint used to log emails without exposing them.
func Hash8(s string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(s))))
	return hex.EncodeToString(sum[:8])
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type ctxKey struct{}

// WithRequestID stores the inbound X-Request-ID so it can follow outgoing events.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
