package model

import (
	"crypto/rand"
	"fmt"
)

// autoIDAlphabet matches the character set Firestore uses for generated
// document IDs.
const autoIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// AutoIDLength is the number of characters in a generated document ID.
const AutoIDLength = 20

// NewAutoID generates a collision-resistant random document ID of
// AutoIDLength characters from the fixed alphabet.
func NewAutoID() string {
	return NewAutoIDWithLength(AutoIDLength)
}

// NewAutoIDWithLength generates a random document ID of at least
// AutoIDLength characters; shorter requests are raised to the minimum.
func NewAutoIDWithLength(length int) string {
	if length < AutoIDLength {
		length = AutoIDLength
	}
	// Bytes at or above the largest multiple of the alphabet size are
	// discarded; reducing them modulo 62 would skew toward the first
	// characters of the alphabet.
	const limit = 256 - 256%len(autoIDAlphabet)
	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand never fails on supported platforms
			panic(fmt.Sprintf("autoid: reading random bytes: %v", err))
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, autoIDAlphabet[int(b)%len(autoIDAlphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out)
}
