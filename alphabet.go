package binsweep

import (
	"fmt"
	"strings"
)

// DefaultAlphabet is the character set short myjson bin ids are drawn from.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Alphabet is an ordered, immutable set of characters.
// The order of the characters defines the order candidates are generated in.
type Alphabet struct {
	chars []string
}

// NewAlphabet builds an Alphabet from the characters of a string, keeping their order.
// Every character must be unique, otherwise candidates would be generated more than once.
func NewAlphabet(chars string) (Alphabet, error) {
	if chars == "" {
		return Alphabet{}, ErrEmptyAlphabet
	}

	seen := map[rune]bool{}
	alphabet := Alphabet{}
	for _, char := range chars {
		if seen[char] {
			return Alphabet{}, fmt.Errorf("%w: %q", ErrDuplicateCharacter, char)
		}
		seen[char] = true
		alphabet.chars = append(alphabet.chars, string(char))
	}

	return alphabet, nil
}

// MustAlphabet is like NewAlphabet but panics on an invalid alphabet.
func MustAlphabet(chars string) Alphabet {
	alphabet, err := NewAlphabet(chars)
	if err != nil {
		panic(err)
	}
	return alphabet
}

// Len returns the number of characters in the alphabet.
func (a Alphabet) Len() int {
	return len(a.chars)
}

func (a Alphabet) String() string {
	return strings.Join(a.chars, "")
}
