// Package domain holds the session identity shared by the session store
// adapters.
package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// CookieName is the client-facing cookie carrying the bridge session id.
const CookieName = "bff_sid"

// NewID generates an unguessable session identifier: 128 bits of
// crypto/rand entropy, hex encoded.
func NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
