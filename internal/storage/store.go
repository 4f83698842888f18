// Package storage persists the corpus in a SQLite database so imported
// content survives restarts. It supports both a pure Go driver (default)
// and mattn/go-sqlite3 behind the cgo_sqlite build tag.
package storage

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/FocuswithJustin/AcaciaBible/core/corpus"
	"github.com/FocuswithJustin/AcaciaBible/core/errors"
)

// DriverName returns the SQL driver name in use.
func DriverName() string { return driverName }

// DriverType returns "purego" or "cgo".
func DriverType() string { return driverType }

// DriverPackage returns the import path of the active driver.
func DriverPackage() string { return driverPackage }

const schemaDDL = `
CREATE TABLE IF NOT EXISTS verses (
	book    TEXT NOT NULL,
	chapter INTEGER NOT NULL,
	verse   INTEGER NOT NULL,
	text    TEXT NOT NULL,
	PRIMARY KEY (book, chapter, verse)
);
`

// Store is a SQLite-backed verse store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening database %s", path)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the corpus in one transaction, replacing any prior rows for
// the same verses.
func (s *Store) Save(ctx context.Context, c corpus.Corpus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO verses (book, chapter, verse, text) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer stmt.Close()

	for book, chapters := range c {
		for chapter, verses := range chapters {
			chapterNum, err := strconv.Atoi(chapter)
			if err != nil {
				continue
			}
			for verse, text := range verses {
				verseNum, err := strconv.Atoi(verse)
				if err != nil {
					continue
				}
				if _, err := stmt.ExecContext(ctx, book, chapterNum, verseNum, text); err != nil {
					return errors.Wrapf(err, "inserting %s %d:%d", book, chapterNum, verseNum)
				}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing")
	}
	return nil
}

// Load reads the whole verse table back into a Corpus.
func (s *Store) Load(ctx context.Context) (corpus.Corpus, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book, chapter, verse, text FROM verses`)
	if err != nil {
		return nil, errors.Wrap(err, "querying verses")
	}
	defer rows.Close()

	out := make(corpus.Corpus)
	for rows.Next() {
		var book, text string
		var chapter, verse int
		if err := rows.Scan(&book, &chapter, &verse, &text); err != nil {
			return nil, errors.Wrap(err, "scanning verse row")
		}
		chapters, ok := out[book]
		if !ok {
			chapters = make(map[string]map[string]string)
			out[book] = chapters
		}
		verses, ok := chapters[strconv.Itoa(chapter)]
		if !ok {
			verses = make(map[string]string)
			chapters[strconv.Itoa(chapter)] = verses
		}
		verses[strconv.Itoa(verse)] = text
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating verse rows")
	}
	return out, nil
}

// VerseCount returns the number of stored verses.
func (s *Store) VerseCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verses`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "counting verses")
	}
	return n, nil
}
