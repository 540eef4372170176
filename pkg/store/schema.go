package store

// Schema for the embedded document store. Safe to apply repeatedly —
// everything is IF NOT EXISTS. The FTS index over titles and
// abbreviations is kept in sync by triggers.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	abbreviation TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'in_force'
);

CREATE TABLE IF NOT EXISTS provisions (
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	ref TEXT NOT NULL,
	section TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (document_id, ref)
);

CREATE INDEX IF NOT EXISTS idx_provisions_section ON provisions(document_id, section);

CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
	id UNINDEXED,
	title,
	abbreviation,
	content='documents',
	content_rowid='rowid'
);

CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
	INSERT INTO documents_fts(rowid, id, title, abbreviation)
	VALUES (new.rowid, new.id, new.title, new.abbreviation);
END;

CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
	INSERT INTO documents_fts(documents_fts, rowid, id, title, abbreviation)
	VALUES ('delete', old.rowid, old.id, old.title, old.abbreviation);
END;

CREATE TRIGGER IF NOT EXISTS documents_au AFTER UPDATE ON documents BEGIN
	INSERT INTO documents_fts(documents_fts, rowid, id, title, abbreviation)
	VALUES ('delete', old.rowid, old.id, old.title, old.abbreviation);
	INSERT INTO documents_fts(rowid, id, title, abbreviation)
	VALUES (new.rowid, new.id, new.title, new.abbreviation);
END;
`
