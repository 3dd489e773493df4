// Package auth gates the master-admin surface behind a single shared
// secret. It is deliberately the whole authorization model: everything else
// in the product is capability-based (whoever holds the link code).
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Master verifies the master-admin password. The configured secret may be
// either the plain password or a bcrypt hash of it, so deployments can keep
// the literal out of the environment.
type Master struct {
	hash  []byte
	plain string
}

func NewMaster(secret string) *Master {
	if strings.HasPrefix(secret, "$2a$") || strings.HasPrefix(secret, "$2b$") || strings.HasPrefix(secret, "$2y$") {
		return &Master{hash: []byte(secret)}
	}
	return &Master{plain: secret}
}

// Verify reports whether the supplied password matches the configured
// secret. An empty configured secret never matches.
func (m *Master) Verify(password string) bool {
	if m.hash != nil {
		return bcrypt.CompareHashAndPassword(m.hash, []byte(password)) == nil
	}
	if m.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(m.plain), []byte(password)) == 1
}
