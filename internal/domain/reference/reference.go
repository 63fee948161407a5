// Package reference normalizes payment reference numbers so that two
// references that differ only by formatting compare equal.
//
// Handled variations:
//   - Whitespace anywhere in the reference: "9876 543 2103" == "98765432103"
//   - Leading zeros on numeric references: "0000 5550 0011 14" == "5550001114"
//   - Zero checksums on Finnish creditor references: "RF00 1234" == "RF1234"
//
// References are case-sensitive; no case folding is applied.
package reference

import (
	"strings"
	"unicode"
)

// Normalizer canonicalizes raw reference strings.
type Normalizer struct {
	// FinnishPrefix enables special handling of ISO-11649-style "RF"
	// creditor references. Enabled in the default configuration.
	FinnishPrefix bool
}

// Default returns a normalizer with Finnish creditor-reference handling on.
func Default() Normalizer {
	return Normalizer{FinnishPrefix: true}
}

// Normalize canonicalizes a raw reference. The second return value is false
// when the reference is absent (empty or whitespace-only); an absent
// reference never equals anything, including another absent reference.
func (n Normalizer) Normalize(raw string) (string, bool) {
	stripped := stripWhitespace(raw)
	if stripped == "" {
		return "", false
	}

	if n.FinnishPrefix {
		if body, ok := strings.CutPrefix(stripped, "RF"); ok && isDigits(body) {
			return "RF" + stripLeadingZeros(body), true
		}
	}

	if isDigits(stripped) {
		return stripLeadingZeros(stripped), true
	}

	return stripped, true
}

// Equal reports whether two raw references encode the same payment
// reference. Two absent references do not match.
func (n Normalizer) Equal(a, b string) bool {
	na, ok := n.Normalize(a)
	if !ok {
		return false
	}
	nb, ok := n.Normalize(b)
	if !ok {
		return false
	}
	return na == nb
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
