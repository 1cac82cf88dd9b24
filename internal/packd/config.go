// Package packd serves built FSPK packs to a running game or editor over
// HTTP, and pushes pack-changed notifications over a websocket so a
// connected session can hot-reload. It transports opaque pack bytes and
// JSON metadata only — it never renders or decodes assets.
package packd

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds packd's runtime settings. Secret is the cleartext shared API
// secret, read from the operator at startup and used to sign and verify
// bearer tokens; packd does not write it to disk. HashSecret and
// VerifySecret produce and check a bcrypt hash of such a secret.
type Config struct {
	Addr     string
	PacksDir string
	Secret   string
	TokenTTL time.Duration
}

// HashSecret bcrypt-hashes an API secret for storage in a packd config
// file, so the cleartext value never needs to sit on disk.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("packd: hash secret: %w", err)
	}
	return string(hash), nil
}

// VerifySecret reports whether secret matches the bcrypt hash produced by
// HashSecret.
func VerifySecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
