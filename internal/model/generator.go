package model

import "github.com/vaultpass/passgen-go/internal/strength"

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
// Zero Length and Count fall back to the configured defaults.
type GenerateRequest struct {
	Length    int   `json:"length" validate:"gte=0,lte=4096"`
	Count     int   `json:"count" validate:"gte=0,lte=10000"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Digits    *bool `json:"digits"`
	Symbols   *bool `json:"symbols"`
	Hash      bool  `json:"hash"`
}

// GeneratedPassword is one generated password with its strength assessment.
type GeneratedPassword struct {
	Password string         `json:"password"`
	Length   int            `json:"length"`
	Level    strength.Level `json:"level"`
	Score    int            `json:"score"`
	Feedback string         `json:"feedback"`
	Hash     string         `json:"hash,omitempty"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Passwords []GeneratedPassword `json:"passwords"`
}

// EvaluateRequest asks for the strength of an existing password.
type EvaluateRequest struct {
	Password string `json:"password" validate:"max=4096"`
}

// EvaluateResponse carries the strength assessment of a password.
type EvaluateResponse struct {
	Length   int            `json:"length"`
	Level    strength.Level `json:"level"`
	Score    int            `json:"score"`
	Feedback string         `json:"feedback"`
}
