// Package search converts raw user search strings into full-text-search
// query expressions that are safe under the FTS5 query grammar.
package search

import (
	"regexp"
	"strings"
	"unicode"
)

// Variants holds the query expressions built from one raw input.
// Primary is attempted first; Fallback, when non-empty, is a degraded
// but guaranteed-parseable alternative for when Primary fails to parse
// or returns nothing.
type Variants struct {
	Primary  string `json:"primary"`
	Fallback string `json:"fallback,omitempty"`
}

// booleanOperatorPattern finds FTS boolean keywords as whole words.
// FTS5 only treats the uppercase forms as operators, so matching is
// case-sensitive: a lowercase "and" inside a title is plain text.
var booleanOperatorPattern = regexp.MustCompile(`\b(?:AND|OR|NOT)\b`)

// BuildVariants turns a raw search string into safe query variants.
//
// Input that already uses explicit search syntax (quotes, boolean
// operators, a trailing wildcard) is passed through unchanged as
// Primary, with a fully sanitized OR query as Fallback. Plain input is
// tokenized and each token quoted and prefix-wildcarded: Primary joins
// them with implicit AND, Fallback with OR. Input that sanitizes to
// nothing falls back to the raw trimmed string with no Fallback.
func BuildVariants(raw string) Variants {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Variants{Primary: trimmed}
	}

	terms := sanitizeTokens(trimmed)

	if hasExplicitSyntax(trimmed) {
		v := Variants{Primary: trimmed}
		if len(terms) > 0 {
			v.Fallback = strings.Join(terms, " OR ")
		}
		return v
	}

	if len(terms) == 0 {
		return Variants{Primary: trimmed}
	}
	return Variants{
		Primary:  strings.Join(terms, " "),
		Fallback: strings.Join(terms, " OR "),
	}
}

// hasExplicitSyntax reports whether the user is deliberately writing
// native FTS syntax.
func hasExplicitSyntax(trimmed string) bool {
	return strings.ContainsRune(trimmed, '"') ||
		strings.HasSuffix(trimmed, "*") ||
		booleanOperatorPattern.MatchString(trimmed)
}

// sanitizeTokens splits on whitespace and reduces each token to
// letters, digits, underscore and hyphen (Unicode-aware), then quotes
// and prefix-wildcards the survivors.
func sanitizeTokens(trimmed string) []string {
	var terms []string
	for _, token := range strings.Fields(trimmed) {
		cleaned := stripSpecial(token)
		if cleaned == "" {
			continue
		}
		terms = append(terms, `"`+cleaned+`"*`)
	}
	return terms
}

func stripSpecial(token string) string {
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
