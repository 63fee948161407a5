// Package names scores how strongly two free-text party names plausibly
// denote the same organization or person.
//
// Names are compared at the token level after case folding and stripping of
// legal-form suffixes ("Oy", "Ltd", ...) and regional qualifiers ("EMEA",
// "Europe", ...), so "Best Supplies EMEA" and "Best Supplies Europe" compare
// equal while "Jane Doe" and "Jane Smith" only share a surname.
package names

import "strings"

// MaxScore is the highest compatibility score Score can return.
const MaxScore = 4

// Compatibility score levels.
const (
	scoreExact   = 4 // normalized names identical
	scoreSubset  = 3 // one name's tokens fully contained in the other's
	scoreOverlap = 2 // two or more shared tokens covering most of the smaller name
	scorePartial = 1 // a single shared token between short names
)

// Config lists the tokens stripped during normalization. The lists are
// configuration, not business rules baked into code.
type Config struct {
	LegalSuffixes      []string `yaml:"legal_suffixes"`
	RegionalQualifiers []string `yaml:"regional_qualifiers"`
}

// DefaultConfig returns the stock suffix and qualifier lists.
func DefaultConfig() Config {
	return Config{
		LegalSuffixes: []string{
			"oy", "oyj", "ab", "as", "ky", "tmi",
			"ltd", "llc", "inc", "corp", "co", "company", "gmbh",
		},
		RegionalQualifiers: []string{"emea", "europe", "nordic", "global"},
	}
}

// Scorer computes name compatibility scores.
type Scorer struct {
	strip map[string]struct{}
}

// NewScorer builds a scorer from the given configuration.
func NewScorer(cfg Config) *Scorer {
	strip := make(map[string]struct{}, len(cfg.LegalSuffixes)+len(cfg.RegionalQualifiers))
	for _, s := range cfg.LegalSuffixes {
		strip[strings.ToLower(s)] = struct{}{}
	}
	for _, q := range cfg.RegionalQualifiers {
		strip[strings.ToLower(q)] = struct{}{}
	}
	return &Scorer{strip: strip}
}

// Normalize lowercases a name, collapses whitespace and drops configured
// suffix/qualifier tokens. Returns "" for names with no usable tokens.
func (s *Scorer) Normalize(name string) string {
	return strings.Join(s.tokens(name), " ")
}

func (s *Scorer) tokens(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	kept := fields[:0]
	for _, f := range fields {
		if _, drop := s.strip[f]; !drop {
			kept = append(kept, f)
		}
	}
	return kept
}

// Score rates how plausibly two names denote the same party, from 0 (no
// overlap) to MaxScore (same normalized name). Symmetric in its arguments.
func (s *Scorer) Score(a, b string) int {
	ta := s.tokens(a)
	tb := s.tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	if strings.Join(ta, " ") == strings.Join(tb, " ") {
		return scoreExact
	}

	setA := tokenSet(ta)
	setB := tokenSet(tb)
	shared := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}

	if shared == len(setA) || shared == len(setB) {
		return scoreSubset
	}

	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	if shared >= 2 && shared*2 >= smaller {
		return scoreOverlap
	}

	// A lone shared token is only meaningful between short names; longer
	// names share incidental words too easily.
	if shared == 1 && smaller <= 2 {
		return scorePartial
	}
	return 0
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
