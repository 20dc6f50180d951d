// Package dicttest builds dictionary database fixtures for tests.
package dicttest

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Schema is the layout of the bundled dictionary database.
const Schema = `
	CREATE TABLE collins (
		word TEXT NOT NULL,
		phonetic TEXT,
		sense TEXT,
		enDef TEXT,
		cnDef TEXT
	);
	CREATE INDEX idx_collins_word ON collins(word COLLATE NOCASE);

	CREATE TABLE oxford (
		word TEXT NOT NULL,
		phrase TEXT,
		phonetic TEXT,
		sense TEXT,
		ext TEXT,
		enDef TEXT,
		cnDef TEXT
	);
	CREATE INDEX idx_oxford_word ON oxford(word COLLATE NOCASE);

	CREATE TABLE forms (
		word TEXT NOT NULL,
		base TEXT NOT NULL
	);
	CREATE INDEX idx_forms_word ON forms(word COLLATE NOCASE);
`

// Collins is a fixture row of the collins table. Nil fields are stored as NULL.
type Collins struct {
	Word, Phonetic, Sense, EnDef, CnDef any
}

// Oxford is a fixture row of the oxford table. Nil fields are stored as NULL.
type Oxford struct {
	Word, Phrase, Phonetic, Sense, Ext, EnDef, CnDef any
}

// Form maps an inflected word to its base form.
type Form struct {
	Word, Base string
}

// Fixture lists the rows to insert, in insertion order.
type Fixture struct {
	Collins []Collins
	Oxford  []Oxford
	Forms   []Form
}

// Default returns a small fixture covering the common lookup cases.
func Default() Fixture {
	return Fixture{
		Collins: []Collins{
			{Word: "run", Phonetic: "rʌn", Sense: "1", EnDef: "move fast", CnDef: "跑"},
			{Word: "apple", Phonetic: "ˈæpəl", Sense: "1", EnDef: "a round fruit", CnDef: "苹果"},
			{Word: "Apple", Phonetic: nil, Sense: "2", EnDef: "a technology company", CnDef: nil},
		},
		Oxford: []Oxford{
			{Word: "run", Phrase: nil, Phonetic: "rʌn", Sense: "verb", Ext: nil, EnDef: "move at a speed faster than a walk", CnDef: "跑"},
			{Word: "run", Phrase: "run into", Phonetic: nil, Sense: "phrasal verb", Ext: "informal", EnDef: "meet by chance", CnDef: "偶遇"},
		},
		Forms: []Form{
			{Word: "ran", Base: "run"},
			{Word: "running", Base: "run"},
			{Word: "apples", Base: "apple"},
		},
	}
}

// Create writes a dictionary database with the fixture rows to dir and
// returns its path.
func Create(tb testing.TB, dir string, fx Fixture) string {
	tb.Helper()

	path := filepath.Join(dir, "dict.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		tb.Fatalf("open fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(Schema); err != nil {
		tb.Fatalf("create fixture schema: %v", err)
	}
	for _, r := range fx.Collins {
		if _, err := db.Exec(`INSERT INTO collins (word, phonetic, sense, enDef, cnDef) VALUES (?, ?, ?, ?, ?)`,
			r.Word, r.Phonetic, r.Sense, r.EnDef, r.CnDef); err != nil {
			tb.Fatalf("insert collins row: %v", err)
		}
	}
	for _, r := range fx.Oxford {
		if _, err := db.Exec(`INSERT INTO oxford (word, phrase, phonetic, sense, ext, enDef, cnDef) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.Word, r.Phrase, r.Phonetic, r.Sense, r.Ext, r.EnDef, r.CnDef); err != nil {
			tb.Fatalf("insert oxford row: %v", err)
		}
	}
	for _, r := range fx.Forms {
		if _, err := db.Exec(`INSERT INTO forms (word, base) VALUES (?, ?)`, r.Word, r.Base); err != nil {
			tb.Fatalf("insert forms row: %v", err)
		}
	}
	return path
}
