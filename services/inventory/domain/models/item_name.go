package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ItemName is a value object representing a valid, trimmed item name.
// Encapsulates validation rules: 1 <= runes(name) <= 60 after trimming.
type ItemName string

const (
	minItemNameLength = 1
	// MaxItemNameLength is the longest accepted name, in characters.
	MaxItemNameLength = 60
)

// NewItemName trims s and constructs a valid ItemName or returns an error if
// constraints are violated.
func NewItemName(s string) (ItemName, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < minItemNameLength {
		return "", errors.New("Please provide a name for this item")
	}
	if n > MaxItemNameLength {
		return "", fmt.Errorf("Name cannot be more than %d characters", MaxItemNameLength)
	}
	return ItemName(s), nil
}

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}

// Key returns the case-folded form used for duplicate detection.
func (n ItemName) Key() string {
	return strings.ToLower(string(n))
}

// SameAs reports whether two names refer to the same item, ignoring case.
func (n ItemName) SameAs(other ItemName) bool {
	return strings.EqualFold(string(n), string(other))
}
