package store

import (
	"testing"

	"github.com/coolbeans/paragraf/pkg/citation"
	"github.com/coolbeans/paragraf/pkg/validate"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	docs := []struct {
		doc          validate.Document
		abbreviation string
	}{
		{validate.Document{ID: "NOR1000101", Title: "Datenschutzgesetz", Status: "in_force"}, "DSG"},
		{validate.Document{ID: "NOR1000202", Title: "Bundes-Verfassungsgesetz", Status: "in_force"}, "B-VG"},
		{validate.Document{ID: "NOR1000303", Title: "Fernmeldegesetz", Status: "repealed"}, "FMG"},
	}
	for _, d := range docs {
		if err := s.AddDocument(d.doc, d.abbreviation); err != nil {
			t.Fatalf("failed to seed document: %v", err)
		}
	}

	provisions := []Provision{
		{DocumentID: "NOR1000101", Ref: "para1", Section: "1", Content: "Jedermann hat Anspruch auf Geheimhaltung."},
		{DocumentID: "NOR1000101", Ref: "para4a", Section: "4a", Content: "Besondere Kategorien personenbezogener Daten."},
		{DocumentID: "NOR1000202", Ref: "para1", Section: "1", Content: "Österreich ist eine demokratische Republik."},
	}
	for _, p := range provisions {
		if err := s.AddProvision(p); err != nil {
			t.Fatalf("failed to seed provision: %v", err)
		}
	}
	return s
}

func TestResolveID(t *testing.T) {
	s := openTestStore(t)

	cases := []struct {
		name   string
		term   string
		wantID string
		wantOK bool
	}{
		{name: "exact canonical id", term: "NOR1000101", wantID: "NOR1000101", wantOK: true},
		{name: "exact abbreviation", term: "DSG", wantID: "NOR1000101", wantOK: true},
		{name: "abbreviation case insensitive", term: "dsg", wantID: "NOR1000101", wantOK: true},
		{name: "title substring", term: "Verfassungsgesetz", wantID: "NOR1000202", wantOK: true},
		{name: "unknown term", term: "Handelsgesetzbuch", wantOK: false},
		{name: "percent is not a wildcard", term: "%", wantOK: false},
		{name: "underscore is not a wildcard", term: "Daten_chutzgesetz", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := s.ResolveID(tc.term)
			if ok != tc.wantOK || id != tc.wantID {
				t.Errorf("ResolveID(%q) = (%q, %v), want (%q, %v)", tc.term, id, ok, tc.wantID, tc.wantOK)
			}
		})
	}
}

func TestGetDocument(t *testing.T) {
	s := openTestStore(t)

	doc, ok := s.GetDocument("NOR1000303")
	if !ok {
		t.Fatal("document should exist")
	}
	if doc.Title != "Fernmeldegesetz" || doc.Status != "repealed" {
		t.Errorf("unexpected document: %+v", doc)
	}

	if _, ok := s.GetDocument("NOR9999999"); ok {
		t.Error("nonexistent document should not resolve")
	}
}

func TestProvisionExists(t *testing.T) {
	s := openTestStore(t)

	cases := []struct {
		name string
		ref  string
		want bool
	}{
		{name: "machine ref", ref: "para4a", want: true},
		{name: "decorated section", ref: "§ 4a", want: true},
		{name: "bare section", ref: "4a", want: true},
		{name: "missing provision", ref: "§ 99", want: false},
		{name: "empty reference", ref: "", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidates := citation.BuildCandidates(tc.ref)
			if got := s.ProvisionExists("NOR1000101", candidates); got != tc.want {
				t.Errorf("ProvisionExists(NOR1000101, %q) = %v, want %v", tc.ref, got, tc.want)
			}
		})
	}
}

func TestProvisionExistsScopedToDocument(t *testing.T) {
	s := openTestStore(t)

	candidates := citation.BuildCandidates("4a")
	if s.ProvisionExists("NOR1000202", candidates) {
		t.Error("provision of another document must not match")
	}
}

func TestProvisions(t *testing.T) {
	s := openTestStore(t)

	provisions, err := s.Provisions("NOR1000101")
	if err != nil {
		t.Fatalf("Provisions failed: %v", err)
	}
	if len(provisions) != 2 {
		t.Fatalf("got %d provisions, want 2", len(provisions))
	}
	if provisions[0].Ref != "para1" || provisions[1].Ref != "para4a" {
		t.Errorf("unexpected order: %+v", provisions)
	}
}

// Re-adding a document under an existing ID must update the FTS index
// in place; a REPLACE-style delete-and-insert would leave a stale index
// row and make later searches fail.
func TestAddDocumentUpdatesExisting(t *testing.T) {
	s := openTestStore(t)

	updated := validate.Document{ID: "NOR1000101", Title: "Informationsfreiheitsgesetz", Status: "in_force"}
	if err := s.AddDocument(updated, "IFG"); err != nil {
		t.Fatalf("failed to update document: %v", err)
	}

	doc, ok := s.GetDocument("NOR1000101")
	if !ok || doc.Title != "Informationsfreiheitsgesetz" {
		t.Fatalf("document not updated: %+v", doc)
	}

	hits, err := s.Search("Informationsfreiheit", 10)
	if err != nil {
		t.Fatalf("Search after update failed: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "NOR1000101" {
		t.Errorf("updated title not searchable: %+v", hits)
	}

	hits, err = s.Search("Datenschutz", 10)
	if err != nil {
		t.Fatalf("Search for replaced title failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("replaced title still indexed: %+v", hits)
	}
}

func TestSearchPlainQuery(t *testing.T) {
	s := openTestStore(t)

	hits, err := s.Search("Datenschutz", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "NOR1000101" {
		t.Errorf("unexpected hits: %+v", hits)
	}
}

// Adversarial input must not surface an FTS syntax error to the caller:
// the sanitized primary (or the fallback) has to absorb it.
func TestSearchAdversarialInput(t *testing.T) {
	s := openTestStore(t)

	for _, query := range []string{
		`Daten" OR "x`,
		"Verfassungs- NEAR/3 gesetz",
		"Datenschutz)",
		"§§ 1; DROP TABLE documents",
	} {
		if _, err := s.Search(query, 10); err != nil {
			t.Errorf("Search(%q) returned error: %v", query, err)
		}
	}

	// The table must have survived.
	if _, ok := s.GetDocument("NOR1000101"); !ok {
		t.Error("documents table damaged by adversarial query")
	}
}

func TestSearchByAbbreviation(t *testing.T) {
	s := openTestStore(t)

	hits, err := s.Search("B-VG", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "NOR1000202" {
		t.Errorf("unexpected hits: %+v", hits)
	}
}

func TestValidatorAgainstStore(t *testing.T) {
	s := openTestStore(t)

	result := validate.Citation("§ 4a, Datenschutzgesetz", s)
	if !result.DocumentExists || !result.ProvisionExists {
		t.Errorf("end-to-end validation failed: %+v", result)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}
