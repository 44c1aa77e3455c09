package app

import (
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

// newGameID returns a random UUIDv4 string.
func newGameID() string { return uuid.NewString() }

// ValidID reports whether id looks like a game ID issued by the service.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// newLabel returns a short human-friendly label such as "brave-otter".
func newLabel() string { return petname.Generate(2, "-") }
