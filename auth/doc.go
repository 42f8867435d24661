// Copyright (c) 2026 Tawan Chaiya.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens, and ID generation.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

Only the hash is ever stored.

# Session Tokens

Sessions are stateless HS256 JWTs signed with the configured
SESSION_SECRET. The user ID rides in the subject claim, the username in a
custom claim:

	token, err := auth.NewSessionToken(userID, username, secret, time.Now())
	claims, err := auth.ParseSessionToken(token, secret)

Tokens expire after SessionTTL (7 days). ParseSessionToken rejects
non-HMAC signing methods, bad signatures, and expired tokens with
ErrInvalidToken.

# ID Generation

Database rows use random UUID string IDs:

	id := auth.NewID()
*/
package auth
