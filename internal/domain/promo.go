package domain

import (
	"strings"
	"time"
)

// PromoCode is an externally provisioned code. Uses is incremented with a
// conditional statement so the cap cannot be overshot under concurrent
// redemptions.
type PromoCode struct {
	Code      string     `json:"code"`
	IsActive  bool       `json:"is_active"`
	Uses      int        `json:"uses"`
	MaxUses   *int       `json:"max_uses,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// PromoFormatRules is the lexical pre-check a promo code must pass before
// the store is ever queried. The thresholds are business policy, not a
// security boundary, so they are carried as data rather than parsing logic.
type PromoFormatRules struct {
	MinLength     int
	MaxLength     int
	MinConsonants int
	MinVowels     int
	MinDigits     int
	MinSymbols    int
	Symbols       string
	// Marker letters classify a code. A valid code must contain at least
	// one of them; TrialMarker wins when both are present.
	TrialMarker    rune
	LifetimeMarker rune
}

// DefaultPromoFormatRules returns the rule set the product ships with.
func DefaultPromoFormatRules() PromoFormatRules {
	return PromoFormatRules{
		MinLength:      8,
		MaxLength:      16,
		MinConsonants:  3,
		MinVowels:      2,
		MinDigits:      2,
		MinSymbols:     1,
		Symbols:        "!@#$%&*?",
		TrialMarker:    'p',
		LifetimeMarker: 'n',
	}
}

const (
	vowels     = "aeiou"
	consonants = "bcdfghjklmnpqrstvwxz"
)

// Valid reports whether code passes the composite lexical check.
func (r PromoFormatRules) Valid(code string) bool {
	if len(code) < r.MinLength || len(code) > r.MaxLength {
		return false
	}
	lower := strings.ToLower(code)
	var nConsonants, nVowels, nDigits, nSymbols int
	for _, c := range lower {
		switch {
		case strings.ContainsRune(consonants, c):
			nConsonants++
		case strings.ContainsRune(vowels, c):
			nVowels++
		case c >= '0' && c <= '9':
			nDigits++
		}
	}
	for _, c := range code {
		if strings.ContainsRune(r.Symbols, c) {
			nSymbols++
		}
	}
	hasMarker := strings.ContainsRune(lower, r.TrialMarker) || strings.ContainsRune(lower, r.LifetimeMarker)
	return nConsonants >= r.MinConsonants &&
		nVowels >= r.MinVowels &&
		nDigits >= r.MinDigits &&
		nSymbols >= r.MinSymbols &&
		hasMarker
}

// IsTrial classifies a format-valid code as trial-granting.
func (r PromoFormatRules) IsTrial(code string) bool {
	return strings.ContainsRune(strings.ToLower(code), r.TrialMarker)
}
