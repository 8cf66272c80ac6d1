package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// APIKeyLength is the length of an API key in hex characters.
const APIKeyLength = 40

// GenerateAPIKey returns a fresh opaque API credential: 40 hex characters
// from a CSPRNG, matching the width of the tokens the REST surface expects.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, APIKeyLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
