package binsweep

import (
	"context"
	"fmt"
	"math"
)

// IterateCharacters calls fn with prefix+char for every character of the alphabet, in alphabet order.
// It stops as soon as fn returns false and reports whether it went through the whole alphabet.
func IterateCharacters(alphabet Alphabet, prefix string, fn func(candidate string) bool) bool {
	for _, char := range alphabet.chars {
		if !fn(prefix + char) {
			return false
		}
	}
	return true
}

// Enumerator generates every string of Length characters over Alphabet exactly once, in lexicographic order.
type Enumerator struct {
	Alphabet Alphabet
	Length   int
}

// NewEnumerator returns an Enumerator for candidates of the given length.
func NewEnumerator(alphabet Alphabet, length int) (*Enumerator, error) {
	if alphabet.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	if length < 1 {
		return nil, ErrInvalidLength
	}
	if _, ok := candidateCount(alphabet.Len(), length); !ok {
		return nil, fmt.Errorf("%w: %d characters at length %d", ErrTooManyCandidates, alphabet.Len(), length)
	}
	return &Enumerator{Alphabet: alphabet, Length: length}, nil
}

// Walk calls fn with every candidate.
// Each nesting level reuses IterateCharacters, with the outermost level varying the most significant character.
func (e *Enumerator) Walk(fn func(candidate string)) {
	e.walk("", e.Length, func(candidate string) bool {
		fn(candidate)
		return true
	})
}

func (e *Enumerator) walk(prefix string, remaining int, fn func(string) bool) bool {
	if remaining <= 0 {
		return true
	}

	if remaining == 1 {
		return IterateCharacters(e.Alphabet, prefix, fn)
	}

	return IterateCharacters(e.Alphabet, prefix, func(next string) bool {
		return e.walk(next, remaining-1, fn)
	})
}

// Stream returns a <- chan string that receives candidates as they are generated.
// The channel is closed after the last candidate or once ctx is done.
// Calling Stream again restarts the sequence from the first candidate.
func (e *Enumerator) Stream(ctx context.Context) <-chan string {
	candidates := make(chan string)

	go func(candidates chan<- string) {
		defer close(candidates)
		e.walk("", e.Length, func(candidate string) bool {
			select {
			case candidates <- candidate:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}(candidates)

	return candidates
}

// Count returns the number of candidates the enumerator generates: len(alphabet) ^ length.
// It saturates at math.MaxInt when that does not fit in an int; NewEnumerator refuses such enumerators.
func (e *Enumerator) Count() int {
	count, ok := candidateCount(e.Alphabet.Len(), e.Length)
	if !ok {
		return math.MaxInt
	}
	return count
}

// candidateCount computes size^length and reports false on overflow.
func candidateCount(size, length int) (int, bool) {
	if length <= 0 {
		return 0, true
	}

	count := 1
	for i := 0; i < length; i++ {
		if size != 0 && count > math.MaxInt/size {
			return 0, false
		}
		count *= size
	}
	return count, true
}
