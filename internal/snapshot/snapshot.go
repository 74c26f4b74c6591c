// Package snapshot stores a flat JSONL copy of an author's citation counts and
// reports what changed between two copies.
package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/matsen/insp/internal/record"
)

// MaxLineCapacity is the buffer size for reading snapshot lines.
const MaxLineCapacity = 1024 * 1024

// Entry is one record in a snapshot.
type Entry struct {
	Key             string    `json:"key"`
	Title           string    `json:"title"`
	Citations       int       `json:"citations"`
	CitationsNoSelf int       `json:"citations_no_self"`
	SnapshotID      string    `json:"snapshot_id"`
	Identifier      string    `json:"identifier"`
	TakenAt         time.Time `json:"taken_at"`
}

// Take builds a snapshot of recs. All entries share one snapshot id.
func Take(identifier string, recs []record.Record, now time.Time) []Entry {
	id := uuid.NewString()
	entries := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, Entry{
			Key:             rec.Key,
			Title:           rec.Title,
			Citations:       rec.CitationCount,
			CitationsNoSelf: rec.CitationCountNoSelf,
			SnapshotID:      id,
			Identifier:      identifier,
			TakenAt:         now.UTC(),
		})
	}
	return entries
}

// ReadAll reads the snapshot at path. A missing file is an empty snapshot and
// reports exists false.
func ReadAll(path string) (entries []Entry, exists bool, err error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, MaxLineCapacity), MaxLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, true, fmt.Errorf("parsing snapshot line %d: %w", lineNum, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, true, fmt.Errorf("reading snapshot: %w", err)
	}
	return entries, true, nil
}

// WriteAll replaces the snapshot at path. The file is written next to path and
// renamed into place so a failed write leaves the previous snapshot intact.
func WriteAll(path string, entries []Entry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.jsonl")
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, e := range entries {
		if err := enc.Encode(e); err != nil {
			tmp.Close()
			return fmt.Errorf("encoding entry %d: %w", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}
