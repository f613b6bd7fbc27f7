// Package strength scores passwords with a simple composite heuristic: length,
// character-class variety, and a log2(charset) × length entropy proxy.
//
// The score is a rough guide for generated passwords. It does no pattern or
// dictionary analysis and is not a guessability estimate.
package strength

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

// Level is the category a score falls into.
type Level string

const (
	Weak       Level = "weak"
	Medium     Level = "medium"
	Strong     Level = "strong"
	VeryStrong Level = "very-strong"
)

// Band returns the ordinal of the level, 0 for weak through 3 for very-strong.
func (l Level) Band() int {
	switch l {
	case VeryStrong:
		return 3
	case Strong:
		return 2
	case Medium:
		return 1
	default:
		return 0
	}
}

func (l Level) String() string { return string(l) }

const (
	FeedbackLength16   = "Use a longer password (16+ characters recommended)"
	FeedbackLength12   = "Use a longer password (12+ characters recommended)"
	FeedbackTooShort   = "Password is too short (at least 8 characters recommended)"
	FeedbackAddSymbols = "Add symbols to make it stronger"
	FeedbackMoreTypes  = "Use more character types"
	FeedbackFewTypes   = "Too few character types"
	FeedbackGood       = "Good password"

	feedbackSeparator = " / "
)

// Assessment is the result of scoring a password.
type Assessment struct {
	Level    Level  `json:"level"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Composition records which character classes occur in a password.
type Composition struct {
	Upper  bool
	Lower  bool
	Digit  bool
	Symbol bool
}

// Analyze reports the character classes present in password. Symbols are
// members of the fixed punctuation set regardless of how the password was made.
func Analyze(password string) Composition {
	var c Composition
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			c.Upper = true
		case unicode.IsLower(r):
			c.Lower = true
		case unicode.IsDigit(r):
			c.Digit = true
		case strings.ContainsRune(crypto.SymbolChars, r):
			c.Symbol = true
		}
	}
	return c
}

// Variety is the number of classes present.
func (c Composition) Variety() int {
	n := 0
	for _, present := range []bool{c.Upper, c.Lower, c.Digit, c.Symbol} {
		if present {
			n++
		}
	}
	return n
}

// CharsetSize sums the class sizes of the classes present.
func (c Composition) CharsetSize() int {
	size := 0
	if c.Upper {
		size += len(crypto.UppercaseChars)
	}
	if c.Lower {
		size += len(crypto.LowercaseChars)
	}
	if c.Digit {
		size += len(crypto.DigitChars)
	}
	if c.Symbol {
		size += len(crypto.SymbolChars)
	}
	return size
}

// EntropyBits returns length × log2(charset), or 0 when charset is empty.
func EntropyBits(length, charset int) float64 {
	if charset <= 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(charset))
}

// Evaluate scores password. It never fails; the empty string scores in the
// lowest band of every component.
func Evaluate(password string) Assessment {
	var feedback []string
	length := utf8.RuneCountInString(password)
	comp := Analyze(password)

	points, advice := lengthPoints(length)
	score := points
	if advice != "" {
		feedback = append(feedback, advice)
	}

	points, advice = varietyPoints(comp.Variety())
	score += points
	if advice != "" {
		feedback = append(feedback, advice)
	}

	if charset := comp.CharsetSize(); charset > 0 {
		score += entropyPoints(EntropyBits(length, charset))
	}

	text := FeedbackGood
	if len(feedback) > 0 {
		text = strings.Join(feedback, feedbackSeparator)
	}

	return Assessment{
		Level:    levelFor(score),
		Score:    score,
		Feedback: text,
	}
}

func lengthPoints(length int) (int, string) {
	switch {
	case length >= 16:
		return 40, ""
	case length >= 12:
		return 30, FeedbackLength16
	case length >= 8:
		return 20, FeedbackLength12
	default:
		return 10, FeedbackTooShort
	}
}

func varietyPoints(variety int) (int, string) {
	switch {
	case variety >= 4:
		return 40, ""
	case variety == 3:
		return 30, FeedbackAddSymbols
	case variety == 2:
		return 15, FeedbackMoreTypes
	default:
		return 5, FeedbackFewTypes
	}
}

func entropyPoints(bits float64) int {
	switch {
	case bits >= 80:
		return 20
	case bits >= 60:
		return 15
	case bits >= 40:
		return 10
	default:
		return 5
	}
}

func levelFor(score int) Level {
	switch {
	case score >= 80:
		return VeryStrong
	case score >= 60:
		return Strong
	case score >= 40:
		return Medium
	default:
		return Weak
	}
}
