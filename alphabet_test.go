package binsweep

import (
	"errors"
	"testing"
)

func TestNewAlphabetKeepsCharacterOrder(t *testing.T) {
	alphabet, err := NewAlphabet("zyx")
	if err != nil {
		t.Fatal(err)
	}

	if alphabet.String() != "zyx" {
		t.Fatalf("Expected zyx, got %s", alphabet.String())
	}

	if alphabet.Len() != 3 {
		t.Fatalf("Expected 3 characters, got %d", alphabet.Len())
	}
}

func TestDefaultAlphabetHas36Characters(t *testing.T) {
	alphabet := MustAlphabet(DefaultAlphabet)
	if alphabet.Len() != 36 {
		t.Fatalf("Expected 36 characters, got %d", alphabet.Len())
	}
}

func TestNewAlphabetRejectsEmpty(t *testing.T) {
	_, err := NewAlphabet("")
	if !errors.Is(err, ErrEmptyAlphabet) {
		t.Fatalf("Expected ErrEmptyAlphabet, got %v", err)
	}
}

func TestNewAlphabetRejectsDuplicates(t *testing.T) {
	_, err := NewAlphabet("abca")
	if !errors.Is(err, ErrDuplicateCharacter) {
		t.Fatalf("Expected ErrDuplicateCharacter, got %v", err)
	}
}
