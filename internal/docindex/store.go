package docindex

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/persiafts/engine/internal/ftserrors"
)

const schemaSQL = `
CREATE TABLE docs (
	doc_id INTEGER PRIMARY KEY,
	url    TEXT NOT NULL,
	title  TEXT NOT NULL,
	body   TEXT NOT NULL,
	length INTEGER NOT NULL
);

CREATE TABLE postings (
	term      TEXT NOT NULL,
	doc_id    INTEGER NOT NULL,
	tf        INTEGER NOT NULL,
	positions BLOB NOT NULL
);

CREATE INDEX idx_postings_term ON postings(term);
`

// Save serializes the store to a single SQLite file at path, creating
// parent directories as needed. Any existing file at path is replaced
// wholesale — the store is a monolithic blob regenerated from source,
// never incrementally updated.
func (s *Store) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ftserrors.NewStoreError("save", path, err)
		}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return ftserrors.NewStoreError("save", path, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return ftserrors.NewStoreError("save", path, err)
	}
	defer db.Close()

	if err := saveTo(db, s); err != nil {
		return ftserrors.NewStoreError("save", path, err)
	}
	return nil
}

func saveTo(db *sql.DB, s *Store) error {
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return inTx(ctx, db, func(tx *sql.Tx) error {
		docStmt, err := tx.PrepareContext(ctx, `INSERT INTO docs (doc_id, url, title, body, length) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer docStmt.Close()

		for docID, meta := range s.docs {
			if _, err := docStmt.ExecContext(ctx, docID, meta.URL, meta.Title, meta.Body, meta.Length); err != nil {
				return fmt.Errorf("inserting doc %d: %w", docID, err)
			}
		}

		postStmt, err := tx.PrepareContext(ctx, `INSERT INTO postings (term, doc_id, tf, positions) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer postStmt.Close()

		for term, postings := range s.dict {
			for _, p := range postings {
				if _, err := postStmt.ExecContext(ctx, term, p.DocID, p.TF, encodePositions(p.Positions)); err != nil {
					return fmt.Errorf("inserting posting for %q: %w", term, err)
				}
			}
		}
		return nil
	})
}

// Load reads back a store previously written by Save. The SQLite
// handle is closed before Load returns; the resulting Store holds
// everything in memory and does no further I/O, so concurrent query
// serving never blocks on disk.
func Load(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, ftserrors.NewStoreError("load", path, err)
	}
	defer db.Close()

	store, err := loadFrom(db)
	if err != nil {
		return nil, ftserrors.NewStoreError("load", path, err)
	}
	return store, nil
}

func loadFrom(db *sql.DB) (*Store, error) {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `SELECT doc_id, url, title, body, length FROM docs ORDER BY doc_id`)
	if err != nil {
		return nil, fmt.Errorf("reading docs: %w", err)
	}
	var docs []DocMeta
	for rows.Next() {
		var docID int
		var meta DocMeta
		if err := rows.Scan(&docID, &meta.URL, &meta.Title, &meta.Body, &meta.Length); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning doc: %w", err)
		}
		if docID != len(docs) {
			rows.Close()
			return nil, fmt.Errorf("corrupt store: non-dense doc_id %d", docID)
		}
		docs = append(docs, meta)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	postRows, err := db.QueryContext(ctx, `SELECT term, doc_id, tf, positions FROM postings ORDER BY term, doc_id`)
	if err != nil {
		return nil, fmt.Errorf("reading postings: %w", err)
	}
	defer postRows.Close()

	dict := make(map[string][]Posting)
	for postRows.Next() {
		var term string
		var p Posting
		var blob []byte
		if err := postRows.Scan(&term, &p.DocID, &p.TF, &blob); err != nil {
			return nil, fmt.Errorf("scanning posting: %w", err)
		}
		p.Positions, err = decodePositions(blob)
		if err != nil {
			return nil, fmt.Errorf("decoding positions for %q: %w", term, err)
		}
		dict[term] = append(dict[term], p)
	}
	if err := postRows.Err(); err != nil {
		return nil, err
	}

	return &Store{dict: dict, docs: docs, docCount: len(docs)}, nil
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// encodePositions packs a position list as a sequence of little-endian
// uint32s with no length prefix; the count is the blob length divided
// by four.
func encodePositions(positions []int) []byte {
	buf := make([]byte, len(positions)*4)
	for i, p := range positions {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(p))
	}
	return buf
}

func decodePositions(blob []byte) ([]int, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("positions blob length %d not a multiple of 4", len(blob))
	}
	n := len(blob) / 4
	positions := make([]int, n)
	for i := 0; i < n; i++ {
		positions[i] = int(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return positions, nil
}
