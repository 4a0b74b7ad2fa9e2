// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrInvalidOrganizerKey = errors.New("invalid organizer key")

// organizerSubject is the fixed HMAC input for the organizer key. The app
// has a single global voting session, so one key covers all organizer
// operations.
const organizerSubject = "organizer"

// GenerateOrganizerKey derives the organizer key from the configured salt.
// This is deterministic and verifiable, so the key can be handed out
// once and checked on every request without storing it.
func GenerateOrganizerKey(salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(organizerSubject))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOrganizerKey checks if the provided key matches the derived one
func ValidateOrganizerKey(key, salt string) error {
	expected := GenerateOrganizerKey(salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidOrganizerKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
