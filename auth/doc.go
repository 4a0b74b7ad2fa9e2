// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the organizer key and small crypto utilities.

# Organizer Key

The organizer key uses HMAC-SHA256 to create a deterministic, verifiable
key from the configured salt:

	key := auth.GenerateOrganizerKey(salt)
	err := auth.ValidateOrganizerKey(key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same salt always produces the same key. This allows validation without
storing the key anywhere: the server prints it at startup and checks the
X-Organizer-Key header against the derived value.

There is a single global voting session, so there is one organizer key,
not one per poll.

# IP Hashing

For privacy-preserving audit logging of ballot submissions:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
