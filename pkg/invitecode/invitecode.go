// Package invitecode generates short, human-shareable invite codes.
package invitecode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	// Length of every generated code.
	Length = 6

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxAttempts bounds the generate-and-check loop in AssignUnique.
	// 36^6 codes make collisions rare until the user table is huge, so
	// hitting the cap means something is wrong with the store.
	maxAttempts = 5
)

// ErrExhausted is returned when AssignUnique cannot find a free code
// within the attempt budget.
var ErrExhausted = errors.New("invite code generation exhausted retries")

// ExistsFunc reports whether a candidate code is already taken. It must
// be a pure read; the caller is responsible for enforcing uniqueness at
// write time with a storage constraint.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generate returns a random code of Length chars drawn from [A-Z0-9].
func Generate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}

// AssignUnique generates candidate codes until exists reports one free,
// up to a fixed attempt budget. Beyond the budget it fails with
// ErrExhausted rather than looping forever.
func AssignUnique(ctx context.Context, exists ExistsFunc) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code, err := Generate()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check invite code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrExhausted
}
