package service

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/strength"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrLengthTooShort = errors.New("password length is too short")
	ErrLengthTooLong  = errors.New("password length is too long")
	ErrCountTooLarge  = errors.New("too many passwords requested")
)

// Limits bounds what a single request may ask for.
type Limits struct {
	DefaultLength int
	MinLength     int
	MaxLength     int
	MaxCount      int
}

// DefaultLimits mirrors the configuration defaults.
func DefaultLimits() Limits {
	return Limits{
		DefaultLength: crypto.DefaultLength,
		MinLength:     4,
		MaxLength:     128,
		MaxCount:      100,
	}
}

// Recorder receives one call per scored password.
type Recorder interface {
	PasswordScored(operation string, level strength.Level)
}

type nopRecorder struct{}

func (nopRecorder) PasswordScored(string, strength.Level) {}

// GeneratorService handles password generation and evaluation business logic.
type GeneratorService struct {
	limits   Limits
	hash     crypto.HashParams
	recorder Recorder
	validate *validator.Validate
}

// NewGeneratorService creates a new GeneratorService. A nil recorder discards
// the observations.
func NewGeneratorService(limits Limits, hash crypto.HashParams, recorder Recorder) *GeneratorService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &GeneratorService{
		limits:   limits,
		hash:     hash,
		recorder: recorder,
		validate: validator.New(),
	}
}

// Generate produces req.Count passwords and scores each of them.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return model.GenerateResponse{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	length := req.Length
	if length == 0 {
		length = s.limits.DefaultLength
	}
	count := req.Count
	if count == 0 {
		count = 1
	}

	if length < s.limits.MinLength {
		return model.GenerateResponse{}, fmt.Errorf("%w: minimum is %d", ErrLengthTooShort, s.limits.MinLength)
	}
	if length > s.limits.MaxLength {
		return model.GenerateResponse{}, fmt.Errorf("%w: maximum is %d", ErrLengthTooLong, s.limits.MaxLength)
	}
	if count > s.limits.MaxCount {
		return model.GenerateResponse{}, fmt.Errorf("%w: maximum is %d", ErrCountTooLarge, s.limits.MaxCount)
	}

	classes := crypto.CharacterClasses{
		Uppercase: boolOrDefault(req.Uppercase, true),
		Lowercase: boolOrDefault(req.Lowercase, true),
		Digits:    boolOrDefault(req.Digits, true),
		Symbols:   boolOrDefault(req.Symbols, true),
	}

	passwords := make([]model.GeneratedPassword, 0, count)
	for i := 0; i < count; i++ {
		password, err := crypto.Generate(length, classes)
		if err != nil {
			return model.GenerateResponse{}, err
		}

		a := strength.Evaluate(password)
		gp := model.GeneratedPassword{
			Password: password,
			Length:   length,
			Level:    a.Level,
			Score:    a.Score,
			Feedback: a.Feedback,
		}

		if req.Hash {
			gp.Hash, err = crypto.HashPassword(password, s.hash)
			if err != nil {
				return model.GenerateResponse{}, fmt.Errorf("hashing password: %w", err)
			}
		}

		s.recorder.PasswordScored("generate", a.Level)
		passwords = append(passwords, gp)
	}

	return model.GenerateResponse{Passwords: passwords}, nil
}

// Evaluate scores a caller-supplied password.
func (s *GeneratorService) Evaluate(req model.EvaluateRequest) (model.EvaluateResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return model.EvaluateResponse{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	a := strength.Evaluate(req.Password)
	s.recorder.PasswordScored("evaluate", a.Level)

	return model.EvaluateResponse{
		Length:   utf8.RuneCountInString(req.Password),
		Level:    a.Level,
		Score:    a.Score,
		Feedback: a.Feedback,
	}, nil
}

// IsValidationError reports whether err stems from bad caller input rather
// than a server-side failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrLengthTooShort) ||
		errors.Is(err, ErrLengthTooLong) ||
		errors.Is(err, ErrCountTooLarge) ||
		errors.Is(err, crypto.ErrInvalidSelection) ||
		errors.Is(err, crypto.ErrInvalidLength)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
