package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// idAlphabet has no '-' so generated IDs never collide with the seed
// namespaces ("topic-1", "sub-1", "q-...").
const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const idLength = 21

// NewID returns a fresh entity ID.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// RequestID returns a short ID for correlating log lines. It never fails;
// on generator error it returns "unknown".
func RequestID() string {
	id, err := gonanoid.New(12)
	if err != nil {
		return "unknown"
	}
	return id
}
