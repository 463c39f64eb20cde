// Package csrf implements double-submit tokens: the same random value is set
// as a cookie and echoed back in every state-changing form.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

const (
	// FieldName is used both as the cookie name and as the form field name.
	FieldName = "csrf_token"

	tokenBytes = 32
)

// NewToken returns a fresh URL-safe random token.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Match reports whether the submitted token equals the cookie token.
// Empty values never match.
func Match(cookieToken, submitted string) bool {
	if cookieToken == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) == 1
}
