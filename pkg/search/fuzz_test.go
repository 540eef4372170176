package search

import (
	"regexp"
	"strings"
	"testing"
)

// safePrimaryPattern is the shape of a sanitized query: quoted
// prefix-wildcarded terms joined by single spaces.
var safePrimaryPattern = regexp.MustCompile(`^"[\p{L}\p{N}_-]+"\*( "[\p{L}\p{N}_-]+"\*)*$`)

// FuzzBuildVariants checks that plain input (no explicit syntax) always
// produces a query the FTS grammar accepts.
// Run with: go test -fuzz=FuzzBuildVariants -fuzztime=30s ./pkg/search/...
func FuzzBuildVariants(f *testing.F) {
	seeds := []string{
		"Datenschutzgesetz",
		"allgemeines bürgerliches Gesetzbuch",
		`"quoted phrase"`,
		"Datenschutz AND Auskunft",
		"Gesetz*",
		"!!! ???",
		"",
		"   ",
		"§ 1 B-VG",
		"a;b:c(d)e",
		strings.Repeat("wort ", 500),
		"NOT",
		"not",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		variants := BuildVariants(input)
		trimmed := strings.TrimSpace(input)

		if trimmed == "" {
			if variants.Primary != "" || variants.Fallback != "" {
				t.Fatalf("blank input produced %+v", variants)
			}
			return
		}

		if hasExplicitSyntax(trimmed) {
			if variants.Primary != trimmed {
				t.Errorf("explicit syntax not passed through: %q -> %q", trimmed, variants.Primary)
			}
			return
		}

		// Plain input: the primary is either fully sanitized or, when
		// nothing survived sanitization, the raw input with no fallback.
		if variants.Primary == trimmed && variants.Fallback == "" {
			return
		}
		if !safePrimaryPattern.MatchString(variants.Primary) {
			t.Errorf("unsafe primary %q from input %q", variants.Primary, input)
		}
		if variants.Fallback == "" {
			t.Errorf("sanitized input must carry a fallback: %q", input)
		}
	})
}
