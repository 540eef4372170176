package citation

import (
	"regexp"
	"strings"
)

// CandidateSet enumerates every lookup key equivalent to one provision
// reference. The corpus stores a provision under two independent
// encodings — a machine key ("para4a") and a human section label
// ("§ 4a" / "4a") — and a caller may supply either, so lookups must try
// them all.
type CandidateSet struct {
	CanonicalSection string   `json:"canonicalSection"`
	ProvisionRefs    []string `json:"provisionRefs"`
	Sections         []string `json:"sections"`
}

// refMarkerPattern strips a leading section marker off a provision
// reference. Longest keywords first so "paragraph" is not half-eaten by
// "para".
var refMarkerPattern = regexp.MustCompile(`^(?i:paragraph|paragraf|para|§)\s*`)

// BuildCandidates normalizes a loose provision reference into the set of
// equivalent lookup keys. Empty input yields an all-empty set, which
// callers read as "no candidates, no match possible".
func BuildCandidates(ref string) CandidateSet {
	canonical := strings.TrimSpace(refMarkerPattern.ReplaceAllString(strings.TrimSpace(ref), ""))
	if canonical == "" {
		return CandidateSet{
			ProvisionRefs: []string{},
			Sections:      []string{},
		}
	}

	provisionRefs := []string{"para" + canonical}
	// Stored machine keys are lowercase; cover a reference typed with an
	// uppercase section letter ("4A").
	if lower := strings.ToLower(canonical); lower != canonical {
		provisionRefs = append(provisionRefs, "para"+lower)
	}

	return CandidateSet{
		CanonicalSection: canonical,
		ProvisionRefs:    provisionRefs,
		Sections:         []string{"§ " + canonical, canonical},
	}
}
