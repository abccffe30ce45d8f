package project

import (
	"strings"

	"github.com/google/uuid"
)

// Kind selects the identity prefix.
type Kind string

const (
	KindProject Kind = "proj"
	KindSegment Kind = "seg"
)

// IDGenerator returns a new opaque identity for the given kind.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Uniqueness: identities must not repeat within the process lifetime.
type IDGenerator func(kind Kind) string

// RandomIDs produces identities of the form "<kind>_<8 hex chars>" taken
// from a random UUID.
func RandomIDs(kind Kind) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return string(kind) + "_" + hex[:8]
}
