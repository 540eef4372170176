// Package store is the reference DocumentStore: an embedded SQLite
// database with an FTS5 index over document titles. It exists so the
// validator and the search sanitizer can be exercised against a real
// collaborator; ingestion beyond the seed API is out of scope.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/coolbeans/paragraf/pkg/citation"
	"github.com/coolbeans/paragraf/pkg/search"
	"github.com/coolbeans/paragraf/pkg/validate"
)

// Store wraps the SQLite document database.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Provision is one stored provision of a document.
type Provision struct {
	DocumentID string `json:"document_id"`
	Ref        string `json:"ref"`
	Section    string `json:"section"`
	Content    string `json:"content,omitempty"`
}

// SearchHit is one ranked full-text search result.
type SearchHit struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

var _ validate.DocumentStore = (*Store)(nil)

// Open opens (creating if necessary) the document store at path.
// Use ":memory:" for an ephemeral store.
func Open(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	logger.Debug("document store opened", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddDocument inserts or updates a document. A true upsert, not INSERT
// OR REPLACE: the REPLACE conflict path deletes the old row without
// firing the delete trigger, which would leave a stale row in the FTS
// index and corrupt later searches.
func (s *Store) AddDocument(doc validate.Document, abbreviation string) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (id, title, abbreviation, status) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			abbreviation = excluded.abbreviation,
			status = excluded.status`,
		doc.ID, doc.Title, abbreviation, doc.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to add document %s: %w", doc.ID, err)
	}
	return nil
}

// AddProvision inserts or replaces a provision of a document.
func (s *Store) AddProvision(p Provision) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO provisions (document_id, ref, section, content) VALUES (?, ?, ?, ?)`,
		p.DocumentID, p.Ref, p.Section, p.Content,
	)
	if err != nil {
		return fmt.Errorf("failed to add provision %s/%s: %w", p.DocumentID, p.Ref, err)
	}
	return nil
}

// ResolveID resolves a term to a canonical document ID: exact ID first,
// then exact abbreviation, then title substring.
func (s *Store) ResolveID(term string) (string, bool) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM documents WHERE id = ?`, term).Scan(&id)
	if err == nil {
		return id, true
	}
	if err != sql.ErrNoRows {
		s.logger.Error("resolve by id failed", "term", term, "err", err)
		return "", false
	}

	err = s.db.QueryRow(
		`SELECT id FROM documents WHERE abbreviation = ? COLLATE NOCASE`, term,
	).Scan(&id)
	if err == nil {
		return id, true
	}
	if err != sql.ErrNoRows {
		s.logger.Error("resolve by abbreviation failed", "term", term, "err", err)
		return "", false
	}

	// instr, not LIKE: the term is user input, and LIKE would treat
	// '%' and '_' in it as wildcards.
	err = s.db.QueryRow(
		`SELECT id FROM documents WHERE instr(title, ?) > 0 ORDER BY length(title) LIMIT 1`, term,
	).Scan(&id)
	if err == nil {
		return id, true
	}
	if err != sql.ErrNoRows {
		s.logger.Error("resolve by title failed", "term", term, "err", err)
	}
	return "", false
}

// GetDocument fetches a document by canonical ID.
func (s *Store) GetDocument(id string) (validate.Document, bool) {
	var doc validate.Document
	err := s.db.QueryRow(
		`SELECT id, title, status FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.Title, &doc.Status)
	if err == sql.ErrNoRows {
		return validate.Document{}, false
	}
	if err != nil {
		s.logger.Error("get document failed", "id", id, "err", err)
		return validate.Document{}, false
	}
	return doc, true
}

// ProvisionExists reports whether any provision of the document matches
// any key of the candidate set, by machine ref or human section label.
func (s *Store) ProvisionExists(documentID string, candidates citation.CandidateSet) bool {
	keys := make([]string, 0, len(candidates.ProvisionRefs)+len(candidates.Sections))
	keys = append(keys, candidates.ProvisionRefs...)
	keys = append(keys, candidates.Sections...)
	if len(keys) == 0 {
		return false
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	query := fmt.Sprintf(
		`SELECT 1 FROM provisions WHERE document_id = ? AND (ref IN (%s) OR section IN (%s)) LIMIT 1`,
		placeholders, placeholders,
	)

	args := make([]any, 0, 1+2*len(keys))
	args = append(args, documentID)
	for _, k := range keys {
		args = append(args, k)
	}
	for _, k := range keys {
		args = append(args, k)
	}

	var one int
	err := s.db.QueryRow(query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		s.logger.Error("provision lookup failed", "document", documentID, "err", err)
		return false
	}
	return true
}

// Provisions lists all provisions of a document.
func (s *Store) Provisions(documentID string) ([]Provision, error) {
	rows, err := s.db.Query(
		`SELECT document_id, ref, section, content FROM provisions WHERE document_id = ? ORDER BY ref`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list provisions of %s: %w", documentID, err)
	}
	defer rows.Close()

	var provisions []Provision
	for rows.Next() {
		var p Provision
		if err := rows.Scan(&p.DocumentID, &p.Ref, &p.Section, &p.Content); err != nil {
			return nil, fmt.Errorf("failed to scan provision: %w", err)
		}
		provisions = append(provisions, p)
	}
	return provisions, rows.Err()
}

// Search runs a full-text title search. The raw input is sanitized into
// primary and fallback query variants; the fallback is used when the
// primary fails to parse under the FTS grammar or matches nothing.
func (s *Store) Search(raw string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}
	variants := search.BuildVariants(raw)
	if variants.Primary == "" {
		return nil, nil
	}

	hits, err := s.searchFTS(variants.Primary, limit)
	if (err != nil || len(hits) == 0) && variants.Fallback != "" {
		if err != nil {
			s.logger.Debug("primary query failed, using fallback", "primary", variants.Primary, "err", err)
		}
		return s.searchFTS(variants.Fallback, limit)
	}
	return hits, err
}

func (s *Store) searchFTS(query string, limit int) ([]SearchHit, error) {
	rows, err := s.db.Query(
		`SELECT id, title, abbreviation FROM documents_fts WHERE documents_fts MATCH ? ORDER BY rank LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("full-text query failed: %w", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var hit SearchHit
		if err := rows.Scan(&hit.ID, &hit.Title, &hit.Abbreviation); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}
