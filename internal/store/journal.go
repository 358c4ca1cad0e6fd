package store

import (
	"fmt"
	"os"
)

// DefaultJournalPath is the text log used when none is configured.
const DefaultJournalPath = "remember.txt"

// Journal is the human-readable, append-only copy of saved snapshots.
// It is never read back and is not authoritative; the database is.
type Journal struct {
	path string
}

// NewJournal returns a journal writing to path.
func NewJournal(path string) *Journal {
	if path == "" {
		path = DefaultJournalPath
	}
	return &Journal{path: path}
}

// Path returns the file the journal appends to.
func (j *Journal) Path() string { return j.path }

// Append writes one snapshot block to the end of the file.
func (j *Journal) Append(snap Snapshot) error {
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if _, err := f.WriteString(snap.JournalEntry()); err != nil {
		f.Close()
		return fmt.Errorf("write journal: %w", err)
	}
	return f.Close()
}
