// Package pin holds the PIN format rules and the owner PIN verifier used
// by the JSON routes. Admin PINs are checked by the stored procedures.
package pin

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	adminPattern = regexp.MustCompile(`^\d{4}$`)
	ownerPattern = regexp.MustCompile(`^\d{4,8}$`)
)

// ValidAdmin reports whether s is a well-formed admin PIN (exactly 4 digits).
func ValidAdmin(s string) bool {
	return adminPattern.MatchString(s)
}

// ValidOwner reports whether s is a well-formed owner PIN (4 to 8 digits).
func ValidOwner(s string) bool {
	return ownerPattern.MatchString(s)
}

var (
	// ErrInvalid is returned when the candidate does not match the stored hash.
	ErrInvalid = errors.New("invalid owner PIN")

	// ErrNotConfigured is returned when no owner PIN hash is stored.
	ErrNotConfigured = errors.New("owner PIN settings not found")
)

// HashSource yields the stored bcrypt hash of the owner PIN, or "" when
// none is configured.
type HashSource interface {
	Hash() (string, error)
}

// Verifier checks candidate owner PINs against the stored hash.
type Verifier struct {
	src HashSource
}

// NewVerifier returns a Verifier reading hashes from src.
func NewVerifier(src HashSource) *Verifier {
	return &Verifier{src: src}
}

// Verify compares candidate with the stored hash. The hash is read on every
// call so a PIN change takes effect immediately.
func (v *Verifier) Verify(candidate string) error {
	hash, err := v.src.Hash()
	if err != nil {
		return fmt.Errorf("verify owner pin: %w", err)
	}
	if strings.TrimSpace(hash) == "" {
		return ErrNotConfigured
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalid
	}
	if err != nil {
		return fmt.Errorf("verify owner pin: %w", err)
	}
	return nil
}
