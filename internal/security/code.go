package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

var codeSpace = big.NewInt(10000)

// NewActivationCode returns exactly four digits, zero-padded.
func NewActivationCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// NewState is an opaque value for the OAuth state parameter.
func NewState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
