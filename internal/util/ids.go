package util

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity and context ids are derived from fingerprints so that repeated
// builds over identical mentions produce identical ids. Graph ids are random;
// every build is an independent snapshot.
var idNamespace = uuid.MustParse("8f7a2e1c-53d4-4b9a-9f6e-1d2c3b4a5e6f")

// DeterministicID derives a stable id from a namespace label and a value,
// using a SHA1-based UUID (v5 semantics) so equal inputs always map to the
// same id.
func DeterministicID(namespace string, value string) string {
	return uuid.NewSHA1(idNamespace, []byte(namespace+":"+value)).String()
}

// NewGraphID returns a fresh random identifier for a graph snapshot.
func NewGraphID() (string, error) {
	return gonanoid.New()
}
