// Package password is the credential hasher: one-way bcrypt hashing with a
// per-call random salt and a tunable work factor.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "pawboard/pkg/domain-errors"
)

// Hasher wraps bcrypt with a configured cost. Hashing is CPU-bound and
// holds no locks, so concurrent requests never serialize on it.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted bcrypt hash of the plaintext. Each call salts
// independently, so two hashes of the same password differ.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "password is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash password")
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed
// stored hash is a verification failure, never a panic or an error: the
// caller only ever learns "match" or "no match".
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
