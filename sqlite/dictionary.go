package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/huaci"
)

// Compile-time interface verification.
var (
	_ huaci.DictionaryService = (*DictionaryService)(nil)
	_ huaci.HeadwordIterator  = (*DictionaryService)(nil)
)

// DictionaryService implements huaci.DictionaryService using SQLite.
type DictionaryService struct {
	db *DB
}

// NewDictionaryService creates a new DictionaryService.
func NewDictionaryService(db *DB) *DictionaryService {
	return &DictionaryService{db: db}
}

// SearchCollins returns the Collins entries for word, ignoring case.
func (s *DictionaryService) SearchCollins(ctx context.Context, word string) ([]*huaci.CollinsEntry, error) {
	entries := []*huaci.CollinsEntry{}
	err := s.db.view(ctx, func(conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT word, phonetic, sense, enDef, cnDef
			FROM collins
			WHERE word = ? COLLATE NOCASE
			ORDER BY rowid
		`, word)
		if err != nil {
			return huaci.Errorf(huaci.EDATABASE, "failed to query collins: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var e huaci.CollinsEntry
			var phonetic, sense, enDef, cnDef sql.NullString
			if err := rows.Scan(&e.Word, &phonetic, &sense, &enDef, &cnDef); err != nil {
				return huaci.Errorf(huaci.EDATABASE, "failed to read collins row: %v", err)
			}
			e.Phonetic = nullString(phonetic)
			e.Sense = nullString(sense)
			e.EnglishDefinition = nullString(enDef)
			e.ChineseDefinition = nullString(cnDef)
			entries = append(entries, &e)
		}
		if err := rows.Err(); err != nil {
			return huaci.Errorf(huaci.EDATABASE, "failed to read collins rows: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SearchOxford returns the Oxford entries for word, ignoring case.
func (s *DictionaryService) SearchOxford(ctx context.Context, word string) ([]*huaci.OxfordEntry, error) {
	entries := []*huaci.OxfordEntry{}
	err := s.db.view(ctx, func(conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT word, phrase, phonetic, sense, ext, enDef, cnDef
			FROM oxford
			WHERE word = ? COLLATE NOCASE
			ORDER BY rowid
		`, word)
		if err != nil {
			return huaci.Errorf(huaci.EDATABASE, "failed to query oxford: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var e huaci.OxfordEntry
			var phrase, phonetic, sense, ext, enDef, cnDef sql.NullString
			if err := rows.Scan(&e.Word, &phrase, &phonetic, &sense, &ext, &enDef, &cnDef); err != nil {
				return huaci.Errorf(huaci.EDATABASE, "failed to read oxford row: %v", err)
			}
			e.Phrase = nullString(phrase)
			e.Phonetic = nullString(phonetic)
			e.Sense = nullString(sense)
			e.Extension = nullString(ext)
			e.EnglishDefinition = nullString(enDef)
			e.ChineseDefinition = nullString(cnDef)
			entries = append(entries, &e)
		}
		if err := rows.Err(); err != nil {
			return huaci.Errorf(huaci.EDATABASE, "failed to read oxford rows: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindWordBase returns the base form recorded for word, ignoring case.
// When several rows match, the first one in insertion order wins.
func (s *DictionaryService) FindWordBase(ctx context.Context, word string) (string, bool, error) {
	var base string
	var found bool
	err := s.db.view(ctx, func(conn *sql.DB) error {
		err := conn.QueryRowContext(ctx, `
			SELECT base
			FROM forms
			WHERE word = ? COLLATE NOCASE
			ORDER BY rowid
			LIMIT 1
		`, word).Scan(&base)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return huaci.Errorf(huaci.EDATABASE, "failed to query word base: %v", err)
		}
		found = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return base, found, nil
}

// EachHeadword calls fn for every distinct word of the three tables.
// Iteration stops at the first error returned by fn.
func (s *DictionaryService) EachHeadword(ctx context.Context, fn func(word string) error) error {
	return s.db.view(ctx, func(conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT word FROM collins
			UNION SELECT word FROM oxford
			UNION SELECT word FROM forms
		`)
		if err != nil {
			return huaci.Errorf(huaci.EDATABASE, "failed to query headwords: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var word string
			if err := rows.Scan(&word); err != nil {
				return huaci.Errorf(huaci.EDATABASE, "failed to read headword: %v", err)
			}
			if err := fn(word); err != nil {
				return err
			}
		}
		if err := rows.Err(); err != nil {
			return huaci.Errorf(huaci.EDATABASE, "failed to read headwords: %v", err)
		}
		return nil
	})
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
