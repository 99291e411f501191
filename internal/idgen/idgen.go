// Package idgen generates submission identifiers.
//
// Constructors that need IDs accept a Generator, so tests can substitute a
// deterministic sequence.
package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// SubmissionPrefix scopes report identifiers
const SubmissionPrefix = "irec_"

// Generator produces unique string identifiers.
type Generator func() string

// UUIDv7 returns a Generator that produces RFC 9562 UUID v7 strings.
// They sort by creation time.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Prefixed wraps a Generator and prepends a fixed prefix to every ID.
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Sequence returns a Generator producing prefix-1, prefix-2, ... Not safe
// for concurrent use.
func Sequence(prefix string) Generator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

// Default generates prefixed UUIDv7 submission IDs.
var Default Generator = Prefixed(SubmissionPrefix, UUIDv7())

// New produces an ID using the Default generator.
func New() string {
	return Default()
}

// Parse validates a submission ID and returns its UUID part.
func Parse(id string) (string, error) {
	if len(id) <= len(SubmissionPrefix) || id[:len(SubmissionPrefix)] != SubmissionPrefix {
		return "", fmt.Errorf("invalid submission ID %q: missing %q prefix", id, SubmissionPrefix)
	}
	u, err := uuid.Parse(id[len(SubmissionPrefix):])
	if err != nil {
		return "", fmt.Errorf("invalid submission ID: %w", err)
	}
	return u.String(), nil
}
