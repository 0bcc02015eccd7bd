package util

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns a hex string of n random bytes. Used for the
// placeholder credentials on social accounts.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
