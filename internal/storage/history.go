// Package storage persists the draw history: an append-only JSON array
// of result entries, insertion order = draw chronological order.
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"raffle/internal/filex"
	"raffle/internal/models"
)

// History is the live store file. One short-lived invocation owns the
// whole file for its duration; there is no locking, the deployment
// contract is at most one invocation at a time per store.
type History struct {
	Path string
}

func NewHistory(path string) *History {
	return &History{Path: path}
}

// Load reads all entries. A missing or unreadable file and corrupt JSON
// all yield an empty slice without error: the tool prefers starting from
// an empty state over halting the automation that triggered it.
func (h *History) Load() []models.ResultEntry {
	return ReadEntries(h.Path)
}

// Save rewrites the store with exactly the given entries. The write is a
// whole-file atomic replace (temp file + rename), never an in-place
// append.
func (h *History) Save(entries []models.ResultEntry) error {
	return WriteEntries(h.Path, entries)
}

// Append loads the current entries, appends e, and saves. Write failures
// propagate: a draw result that cannot be persisted is a hard error.
func (h *History) Append(e models.ResultEntry) error {
	entries := h.Load()
	entries = append(entries, e)
	return h.Save(entries)
}

// ReadEntries reads a JSON-array entry file with the same tolerance as
// Load: anything unreadable is an empty slice. Archive files use the
// same format as the live store, so the archive manager shares this.
func ReadEntries(path string) []models.ResultEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		return []models.ResultEntry{}
	}
	var entries []models.ResultEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []models.ResultEntry{}
	}
	return entries
}

// WriteEntries atomically replaces path with the given entries.
func WriteEntries(path string, entries []models.ResultEntry) error {
	if entries == nil {
		entries = []models.ResultEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	data = append(data, '\n')
	if err := filex.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
