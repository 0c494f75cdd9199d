package token

import (
	"crypto/rand"
	"encoding/base64"
)

// Generate returns a crypto-secure random string of length n
// The random string contains the following characters:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	// base64 encodes 3 bytes into 4 characters, so this many bytes always
	// yields at least n characters
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}
