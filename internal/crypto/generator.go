package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	DigitChars     = "0123456789"
	SymbolChars    = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	DefaultLength = 16
)

var (
	ErrInvalidSelection = errors.New("at least one character type must be selected")
	ErrInvalidLength    = errors.New("password length must be at least 1")
)

// randReader is the entropy source for every draw. Tests swap it for a failing
// reader; it must never point at a non-cryptographic source.
var randReader io.Reader = rand.Reader

// CharacterClasses selects which character types make up the pool.
type CharacterClasses struct {
	Uppercase bool
	Lowercase bool
	Digits    bool
	Symbols   bool
}

// DefaultClasses returns a selection with every character type enabled.
func DefaultClasses() CharacterClasses {
	return CharacterClasses{
		Uppercase: true,
		Lowercase: true,
		Digits:    true,
		Symbols:   true,
	}
}

// Any reports whether at least one class is selected.
func (c CharacterClasses) Any() bool {
	return c.Uppercase || c.Lowercase || c.Digits || c.Symbols
}

// BuildPool concatenates the characters of every selected class in the fixed
// order uppercase, lowercase, digits, symbols.
func BuildPool(classes CharacterClasses) (string, error) {
	var sb strings.Builder

	if classes.Uppercase {
		sb.WriteString(UppercaseChars)
	}
	if classes.Lowercase {
		sb.WriteString(LowercaseChars)
	}
	if classes.Digits {
		sb.WriteString(DigitChars)
	}
	if classes.Symbols {
		sb.WriteString(SymbolChars)
	}

	if sb.Len() == 0 {
		return "", ErrInvalidSelection
	}
	return sb.String(), nil
}

// Generate draws length characters uniformly and independently from the pool
// built from classes, using crypto/rand.
func Generate(length int, classes CharacterClasses) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}

	pool, err := BuildPool(classes)
	if err != nil {
		return "", err
	}

	result := make([]byte, length)
	for i := range result {
		ch, err := randChar(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	return string(result), nil
}

// randChar picks a random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(randReader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return charset[n.Int64()], nil
}
