package binsweep

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAlphabet is returned when an alphabet has no characters.
	ErrEmptyAlphabet = errors.New("alphabet is empty")
	// ErrDuplicateCharacter is returned when a character appears twice in an alphabet.
	ErrDuplicateCharacter = errors.New("alphabet contains a duplicate character")
	// ErrInvalidLength is returned for candidate lengths below 1.
	ErrInvalidLength = errors.New("candidate length must be at least 1")
	// ErrTooManyCandidates is returned when len(alphabet) ^ length does not fit in an int.
	ErrTooManyCandidates = errors.New("too many candidates")
	// ErrContainerNotFound is returned when a document has no container with the requested id.
	ErrContainerNotFound = errors.New("container not found")
	// ErrUnexpectedStatus is the cause of a LookupError for any response other than 200.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// LookupError describes a bin lookup that did not produce a result.
type LookupError struct {
	Bin        string
	URL        string
	StatusCode int
	Cause      error
}

func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("lookup %s (%s): status %d: %v", e.Bin, e.URL, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("lookup %s (%s): %v", e.Bin, e.URL, e.Cause)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}
