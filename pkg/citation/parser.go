package citation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// sectionToken matches a section reference: digits, an optional trailing
// lowercase letter, then optional "(subsection)" and "(paragraph)"
// sub-tokens, e.g. "3", "4a", "3(1)", "3(1)(a)".
const sectionToken = `\d+[a-z]?(?:\(\d+\))?(?:\([a-z]\))?`

// sectionTitleSep separates a section token from a following title: a
// comma with optional spacing, or plain whitespace. A comma alone is
// enough ("§ 3,DSG"), but a glued title ("§ 3DSG") is not a citation.
const sectionTitleSep = `(?:\s*,\s*|\s+)`

// grammarForm pairs a whole-string pattern with a constructor for the
// citation it denotes. Forms are tried in declaration order and the
// first match wins, which is what disambiguates section-first from
// title-first style and native from legacy-English keywords.
type grammarForm struct {
	name    string
	pattern *regexp.Regexp
	build   func(match []string) Parsed
}

var grammarForms = []grammarForm{
	{
		// "§ 3(1)(a), DSG" / "Paragraf 4a Datenschutzgesetz"
		name:    "symbol-section-first",
		pattern: regexp.MustCompile(`^(?i:§|paragraph|paragraf)\s*(` + sectionToken + `)` + sectionTitleSep + `(\S.*)$`),
		build: func(match []string) Parsed {
			return newParsed(match[1], match[2])
		},
	},
	{
		// "Allgemeines bürgerliches Gesetzbuch § 5"
		name:    "title-first",
		pattern: regexp.MustCompile(`^(\S.*?)\s+(?i:§|paragraph|paragraf)\s*(` + sectionToken + `)$`),
		build: func(match []string) Parsed {
			return newParsed(match[2], match[1])
		},
	},
	{
		// "para4a, B-VG" — machine-style section prefix with title.
		name:    "machine-section-first",
		pattern: regexp.MustCompile(`^(?i:para)(` + sectionToken + `)` + sectionTitleSep + `(\S.*)$`),
		build: func(match []string) Parsed {
			return newParsed(match[1], match[2])
		},
	},
	{
		// "Section 3, Data Protection Act 2018" / "s. 6(1) Human Rights Act 1998"
		name:    "legacy-english",
		pattern: regexp.MustCompile(`^(?i:section|s\.)\s+(` + sectionToken + `)` + sectionTitleSep + `(\S.*)$`),
		build: func(match []string) Parsed {
			return newParsed(match[1], match[2])
		},
	},
	{
		// "para4a" alone.
		name:    "machine-bare",
		pattern: regexp.MustCompile(`^(?i:para)(` + sectionToken + `)$`),
		build: func(match []string) Parsed {
			return newParsed(match[1], "")
		},
	},
	{
		// "§ 4a" alone.
		name:    "symbol-bare",
		pattern: regexp.MustCompile(`^(?i:§|paragraph|paragraf)\s*(` + sectionToken + `)$`),
		build: func(match []string) Parsed {
			return newParsed(match[1], "")
		},
	},
}

var (
	// subTokenPattern decomposes a section token into section,
	// subsection, and paragraph.
	subTokenPattern = regexp.MustCompile(`^(\d+[a-z]?)(?:\((\d+)\))?(?:\(([a-z])\))?$`)

	// paraPrefixPattern strips a machine-style "para" prefix off a
	// section token before sub-parsing.
	paraPrefixPattern = regexp.MustCompile(`^(?i:para)`)

	// trailingYearPattern splits a bare 4-digit year off the end of a
	// title, so "Data Protection Act 2018" keeps title and year apart.
	trailingYearPattern = regexp.MustCompile(`^(.*\S)\s+(\d{4})$`)

	// bareYearPattern matches a title that is nothing but a year.
	bareYearPattern = regexp.MustCompile(`^\d{4}$`)
)

// Parse parses a free-form citation string. It never fails: unparseable
// input yields a Parsed with Valid=false and Err describing the problem.
func Parse(raw string) Parsed {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return invalid("Empty citation")
	}

	for _, form := range grammarForms {
		if match := form.pattern.FindStringSubmatch(trimmed); match != nil {
			return form.build(match)
		}
	}

	return invalid(fmt.Sprintf("Unrecognized citation format: %q", trimmed))
}

// newParsed builds a valid citation from a section token and an optional
// trailing title, splitting a trailing year off the title if present.
func newParsed(sectionTok, title string) Parsed {
	sectionTok = paraPrefixPattern.ReplaceAllString(sectionTok, "")
	sub := subTokenPattern.FindStringSubmatch(sectionTok)
	if sub == nil {
		return invalid(fmt.Sprintf("Malformed section token: %q", sectionTok))
	}

	title = strings.TrimSpace(title)
	year := 0
	if m := trailingYearPattern.FindStringSubmatch(title); m != nil {
		title = strings.TrimSpace(m[1])
		year, _ = strconv.Atoi(m[2])
	} else if bareYearPattern.MatchString(title) {
		year, _ = strconv.Atoi(title)
		title = ""
	}

	return Parsed{
		Valid:      true,
		Kind:       classifyKind(title),
		Title:      title,
		Year:       year,
		Section:    sub[1],
		Subsection: sub[2],
		Paragraph:  sub[3],
	}
}

// classifyKind decides statute vs statutory instrument from the title.
// Regulation-style names (German "...verordnung"/"-VO", English
// "... Regulations"/"... Order") are statutory instruments; everything
// else that parses is a statute.
func classifyKind(title string) Kind {
	lower := strings.ToLower(title)
	switch {
	case strings.HasSuffix(lower, "verordnung"),
		strings.HasSuffix(lower, "-vo"),
		strings.HasSuffix(lower, " regulations"),
		strings.HasSuffix(lower, " order"):
		return KindStatutoryInstrument
	}
	return KindStatute
}

func invalid(errMsg string) Parsed {
	return Parsed{
		Valid: false,
		Kind:  KindUnknown,
		Err:   errMsg,
	}
}
