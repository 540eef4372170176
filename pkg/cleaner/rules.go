package cleaner

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// metadataRule classifies one whole-line shape of registry metadata.
// Rules are configuration: new registry shapes get a new entry here, not
// new control flow.
type metadataRule struct {
	name  string
	match func(line string) bool
}

// wholeLine adapts an anchored pattern into a rule matcher.
func wholeLine(pattern string) func(string) bool {
	re := regexp.MustCompile(pattern)
	return re.MatchString
}

// metadataRules lists the whole-line shapes of administrative metadata
// that the upstream registry interleaves with provision text. Each rule
// matches a complete line, never a substring, so legal text that merely
// mentions a date or an abbreviation mid-sentence is untouched.
var metadataRules = []metadataRule{
	// "BGBl. Nr. 1/1930", "BGBl. I Nr. 165/1999"
	{name: "publication-journal", match: wholeLine(`^(?:BGBl|LGBl|RGBl|StGBl)\.\s*(?:[IVX]+\s+)?Nr\.\s*\d+\w*/\d{4}\.?$`)},

	// Bare document-type abbreviation from the registry's Typ field.
	{name: "document-type", match: wholeLine(`^(?:BVG|BG|V|K)\.?$`)},

	// "§ 1" / "Art. 10" lines duplicating the structured section field.
	{name: "section-marker", match: wholeLine(`^(?:§\s*\d+[a-z]?|Art(?:ikel)?\.?\s*\d+[a-z]?)\.?$`)},

	// Classification index: "10/01 Bundes-Verfassungsgesetz".
	{name: "classification-index", match: wholeLine(`^\d{2}/\d{2}\s+\p{Lu}.*$`)},

	// Short statute abbreviation standing alone: "B-VG", "ABGB", "DSG".
	{name: "standalone-abbreviation", match: isAbbreviationLine},

	// Internal norm document ID: "NOR12017703".
	{name: "norm-id", match: wholeLine(`^[A-Z]{3}\d{8}$`)},

	// Bare registry statute number.
	{name: "registry-number", match: wholeLine(`^\d{7,8}$`)},

	// Bare date line.
	{name: "date", match: wholeLine(`^\d{2}\.\d{2}\.\d{4}$`)},

	// Short amendment note ending in a publication reference:
	// "zuletzt geändert durch BGBl. I Nr. 2/2008".
	{name: "amendment-reference", match: isAmendmentLine},

	// Structural division heading: "Erstes Hauptstück", "2. Abschnitt".
	{name: "structural-heading", match: wholeLine(`^(?i:\d+[a-z]?\.|erste[rs]?|zweite[rs]?|dritte[rs]?|vierte[rs]?|fünfte[rs]?|sechste[rs]?|sieb(?:ente|te)[rs]?|achte[rs]?|neunte[rs]?|zehnte[rs]?)\s+(?i:hauptstück|teil|abschnitt|buch|kapitel)\b.*$`)},
}

// Calibration points for the trailing keyword-block heuristic. Both are
// tuned to German registry text; porting to another jurisdiction means
// re-tuning these, not just translating strings.
var (
	// maxKeywordTermLen caps how long a single index term may be.
	maxKeywordTermLen = 40

	// functionWords are sentence-forming words (auxiliary/modal verbs,
	// articles, common prepositions). A comma-separated line containing
	// any of them is treated as prose, never as an index-keyword block.
	functionWords = map[string]bool{
		"ist": true, "sind": true, "war": true, "waren": true,
		"wird": true, "werden": true, "wurde": true, "wurden": true,
		"hat": true, "haben": true, "hatte": true, "hatten": true,
		"kann": true, "können": true, "muss": true, "müssen": true,
		"darf": true, "dürfen": true, "soll": true, "sollen": true,
		"sein": true, "und": true, "oder": true, "nicht": true,
		"ein": true, "eine": true, "einer": true, "eines": true,
		"der": true, "die": true, "das": true, "dem": true, "den": true,
		"in": true, "im": true, "an": true, "am": true, "auf": true,
		"für": true, "mit": true, "nach": true, "bei": true,
		"durch": true, "über": true, "unter": true, "von": true,
		"vom": true, "vor": true, "zu": true, "zur": true, "zum": true,
		"aus": true, "als": true, "wenn": true, "dass": true,
		"bis": true, "gegen": true, "ohne": true, "um": true,
	}
)

// amendmentSuffixPattern matches a publication reference at the end of a
// line.
var amendmentSuffixPattern = regexp.MustCompile(`(?:BGBl|LGBl|RGBl|StGBl)\.?\s*(?:[IVX]+\s+)?Nr\.\s*\d+\w*/\d{4}\.?$`)

// isAmendmentLine reports whether a line is a short amendment or keyword
// note ending in a publication reference. The length bound keeps real
// provision sentences that cite a gazette number from being deleted.
func isAmendmentLine(line string) bool {
	return utf8.RuneCountInString(line) <= 100 && amendmentSuffixPattern.MatchString(line)
}

// isAbbreviationLine reports whether a line is a short statute
// abbreviation standing alone. Requiring two uppercase letters keeps
// ordinary capitalized German nouns ("Republik") out.
func isAbbreviationLine(line string) bool {
	runeCount := utf8.RuneCountInString(line)
	if runeCount < 2 || runeCount > 12 {
		return false
	}
	upper := 0
	for _, r := range line {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r), unicode.IsDigit(r), r == '-', r == '.':
		default:
			return false
		}
	}
	return upper >= 2
}

// isKeywordLine reports whether a line looks like a registry
// index-keyword block: at least three comma-separated short terms and no
// sentence-forming function word. Genuine legal sentences are long,
// verb-bearing, and not strictly comma-delimited; index blocks are
// short, verb-free lists.
func isKeywordLine(line string) bool {
	terms := strings.Split(line, ",")
	if len(terms) < 3 {
		return false
	}
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" || utf8.RuneCountInString(term) > maxKeywordTermLen {
			return false
		}
	}
	return !containsFunctionWord(line)
}

// containsFunctionWord checks every whitespace-separated word of the
// line against the function-word list.
func containsFunctionWord(line string) bool {
	for _, word := range strings.Fields(line) {
		word = strings.ToLower(strings.Trim(word, `.,;:!?()"'`))
		if functionWords[word] {
			return true
		}
	}
	return false
}
