// Package validate confirms that a citation refers to a statute and
// provision that actually exist in a document store.
package validate

import (
	"fmt"
	"regexp"

	"github.com/coolbeans/paragraf/pkg/citation"
)

// Document is the store's view of a statute document.
type Document struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// StatusRepealed marks a document that is no longer in force. A
// citation to a repealed document still resolves; it just earns an
// advisory warning.
const StatusRepealed = "repealed"

// DocumentStore is the external collaborator the validator resolves
// citations against. Implementations must be safe for concurrent use.
type DocumentStore interface {
	// ResolveID resolves a raw term (exact canonical ID, abbreviation,
	// or title substring) to a canonical document ID.
	ResolveID(term string) (string, bool)

	// GetDocument fetches a document by canonical ID.
	GetDocument(id string) (Document, bool)

	// ProvisionExists reports whether any provision of the document
	// matches any key in the candidate set.
	ProvisionExists(documentID string, candidates citation.CandidateSet) bool
}

// Result reports the outcome of validating one citation. ProvisionExists
// is only ever true when DocumentExists is.
type Result struct {
	Citation        citation.Parsed `json:"citation"`
	DocumentExists  bool            `json:"document_exists"`
	ProvisionExists bool            `json:"provision_exists"`
	DocumentTitle   string          `json:"document_title,omitempty"`
	Status          string          `json:"status,omitempty"`
	Warnings        []string        `json:"warnings"`
}

// canonicalIDPattern recognizes an explicit canonical document ID
// ("NOR" followed by digits) inside a raw citation string.
var canonicalIDPattern = regexp.MustCompile(`\bNOR\d+\b`)

// Citation parses a raw citation and checks it against the store.
// Every failure mode — unparseable input, unresolvable document,
// missing provision — comes back as a Result with warnings, never as an
// error.
func Citation(raw string, store DocumentStore) Result {
	result := Result{Warnings: []string{}}

	parsed := citation.Parse(raw)
	result.Citation = parsed
	if !parsed.Valid {
		result.Warnings = append(result.Warnings, parsed.Err)
		return result
	}

	term := parsed.Title
	if term == "" {
		term = canonicalIDPattern.FindString(raw)
	}
	if term == "" {
		result.Warnings = append(result.Warnings,
			"Citation must name a statute title or a NOR document ID")
		return result
	}

	id, ok := store.ResolveID(term)
	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Document not found: %q", term))
		return result
	}
	doc, ok := store.GetDocument(id)
	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Document not found: %q", term))
		return result
	}

	result.DocumentExists = true
	result.DocumentTitle = doc.Title
	result.Status = doc.Status
	if doc.Status == StatusRepealed {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Document %q is repealed", doc.Title))
	}

	if parsed.Section == "" {
		// Document-level citation; nothing further to check.
		result.ProvisionExists = true
		return result
	}

	candidates := citation.BuildCandidates(parsed.Section)
	if store.ProvisionExists(id, candidates) {
		result.ProvisionExists = true
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Provision § %s not found in %q", parsed.Section, doc.Title))
	}
	return result
}
