package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// idLength matches the 21-character identifiers the persisted schema was
// created with, so rows generated here interleave with existing ones.
const idLength = 21

// NewID generates a random identifier string for a database row.
func NewID() string {
	bytes := make([]byte, idLength)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// there is no useful recovery at a call site generating row IDs.
		panic(fmt.Errorf("failed to generate random bytes: %w", err))
	}

	for i, b := range bytes {
		bytes[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(bytes)
}

// NewSessionToken generates an opaque session token.
func NewSessionToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// NewVerificationToken generates a token for email verification links.
func NewVerificationToken() (string, error) {
	bytes := make([]byte, 24)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
