// Package cleaner strips embedded registry metadata from raw provision
// text. The upstream registry interleaves the substantive legal text
// with administrative lines (publication references, classification
// codes, internal IDs, dates, index keywords) without any structural
// delimiter, so cleaning is line-level heuristic classification.
package cleaner

import (
	"regexp"
	"strings"
)

// trailingMarkerPattern matches an inline section-marker fragment
// dangling at the end of the final content line ("... Republik. Artikel 1.").
var trailingMarkerPattern = regexp.MustCompile(`\s*(?:§\s*\d+[a-z]?|Art(?:ikel)?\.?\s*\d+[a-z]?)\.?\s*$`)

// Clean removes registry metadata lines from raw provision text. It
// never fails: worst case it returns an empty string (everything looked
// like metadata) or the input nearly verbatim (nothing did). Cleaning
// already-clean text is a no-op.
func Clean(raw string) string {
	lines := splitLines(raw)

	// Each pass can expose new work for an earlier one (stripping a
	// dangling marker may leave a bare metadata line), so the passes
	// repeat until the text stops changing. Every change removes text,
	// so this terminates — and it makes Clean idempotent.
	for {
		before := strings.Join(lines, "\n")
		lines = dropMetadataLines(lines)
		lines = dropTrailingKeywordBlock(lines)
		lines = stripTrailingMarker(lines)
		if strings.Join(lines, "\n") == before {
			break
		}
	}
	lines = collapseBlankRuns(lines)

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// dropMetadataLines removes every line matching a metadata rule. Blank
// lines survive this pass so paragraph breaks are preserved.
func dropMetadataLines(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" && matchesMetadataRule(line) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

func matchesMetadataRule(line string) bool {
	for _, rule := range metadataRules {
		if rule.match(line) {
			return true
		}
	}
	return false
}

// dropTrailingKeywordBlock works backward from the last line, dropping
// index-keyword lines (and trailing blanks) until it hits real text.
func dropTrailingKeywordBlock(lines []string) []string {
	end := len(lines)
	for end > 0 {
		line := lines[end-1]
		if line == "" || isKeywordLine(line) {
			end--
			continue
		}
		break
	}
	return lines[:end]
}

// stripTrailingMarker removes a dangling section-marker fragment from
// the final content line, but only after a completed sentence, so a
// line that IS a marker reference is left alone.
func stripTrailingMarker(lines []string) []string {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] == "" {
			continue
		}
		loc := trailingMarkerPattern.FindStringIndex(lines[i])
		if loc != nil && loc[0] > 0 {
			head := strings.TrimSpace(lines[i][:loc[0]])
			if strings.HasSuffix(head, ".") {
				lines[i] = head
			}
		}
		break
	}
	return lines
}

// collapseBlankRuns reduces runs of three or more blank lines to one.
func collapseBlankRuns(lines []string) []string {
	collapsed := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if line == "" {
			blanks++
			continue
		}
		if blanks > 0 {
			if blanks >= 3 {
				collapsed = append(collapsed, "")
			} else {
				for ; blanks > 0; blanks-- {
					collapsed = append(collapsed, "")
				}
			}
			blanks = 0
		}
		collapsed = append(collapsed, line)
	}
	return collapsed
}
