// Package huaci is the backend of a desktop word-lookup and flashcard
// assistant. It reads and writes a small TOML configuration, watches that
// file for external edits, and queries a bundled read-only SQLite dictionary
// for definitions and base-form (lemma) resolution.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, toml/, fsnotify/).
package huaci
