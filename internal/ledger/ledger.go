// Package ledger persists flattened candidate rows in an append-only CSV file
// and answers the idempotency question "was this filename already processed?".
// Single-process, sequential use only; there is no concurrent writer.
package ledger

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/jonathan/resume-parser/internal/types"
)

// Ledger is an append-only CSV store keyed by source filename.
type Ledger struct {
	path string
}

// New creates a Ledger backed by the CSV file at path. The file is created
// lazily on first append.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the location of the backing CSV file.
func (l *Ledger) Path() string {
	return l.path
}

// IsProcessed reports whether filename appears in the ledger's filename
// column. The lookup is an exact match on that column only, so one filename
// being a substring of another never causes a false skip. A ledger file that
// does not exist yet means nothing has been processed.
func (l *Ledger) IsProcessed(filename string) (bool, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &PersistenceError{Path: l.path, Message: "failed to open for read", Cause: err}
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate rows from interrupted writes

	first := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, &PersistenceError{Path: l.path, Message: "failed to read row", Cause: err}
		}
		if first {
			first = false
			continue // header
		}
		if len(row) > 0 && row[0] == filename {
			return true, nil
		}
	}
}

// Append writes exactly one row to the ledger, creating the file and writing
// the header row first if the ledger did not previously exist.
func (l *Ledger) Append(row types.FlatRow) error {
	_, statErr := os.Stat(l.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &PersistenceError{Path: l.path, Message: "failed to open for append", Cause: err}
	}
	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	if writeHeader {
		if err := writer.Write(types.Columns()); err != nil {
			return &PersistenceError{Path: l.path, Message: "failed to write header", Cause: err}
		}
	}
	if err := writer.Write(row.Values()); err != nil {
		return &PersistenceError{Path: l.path, Message: "failed to write row", Cause: err}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &PersistenceError{Path: l.path, Message: "failed to flush", Cause: err}
	}
	return nil
}
