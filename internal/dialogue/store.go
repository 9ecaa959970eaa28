package dialogue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the durable sink for finalized records.
// Abstracted for testability (DIP); agents choose a layout per task.
type Store interface {
	// Write persists the finalized document under the given identifier
	// and returns its storage location. The write must be all-or-nothing:
	// on error the target holds no partial record.
	Write(id string, doc map[string]any) (string, error)
}

// --- One file per record ---

// FileStore writes each finalized record to its own file,
// <prefix>_<id>.json, inside Dir.
type FileStore struct {
	Dir    string
	Prefix string
}

// NewFileStore creates a file-per-record store.
func NewFileStore(dir, prefix string) *FileStore {
	return &FileStore{Dir: dir, Prefix: prefix}
}

// RecordPath returns the path a given record identifier maps to.
func (fs *FileStore) RecordPath(id string) string {
	return filepath.Join(fs.Dir, fmt.Sprintf("%s_%s.json", fs.Prefix, id))
}

// Write persists the document to its own file.
func (fs *FileStore) Write(id string, doc map[string]any) (string, error) {
	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating record directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling record: %w", err)
	}

	path := fs.RecordPath(id)
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// --- Journal: one growing JSON array ---

// JournalStore appends each finalized record to a single JSON array
// file, read-modify-write. Summary, when set, is a template rendered
// from the entry's own values and stored alongside them (the wellness
// log keeps "Feeling calm with high energy." per entry).
type JournalStore struct {
	Path    string
	Summary string
}

// NewJournalStore creates a journal-backed store.
func NewJournalStore(path string) *JournalStore {
	return &JournalStore{Path: path}
}

// Write appends the document to the journal.
func (js *JournalStore) Write(id string, doc map[string]any) (string, error) {
	entries, err := js.read()
	if err != nil {
		return "", err
	}

	doc["date"] = timeNow().UTC().Format("2006-01-02")
	if js.Summary != "" {
		doc["summary"] = renderEntry(js.Summary, doc)
	}
	entries = append(entries, doc)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling journal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(js.Path), 0o755); err != nil {
		return "", fmt.Errorf("creating journal directory: %w", err)
	}
	if err := writeAtomic(js.Path, data); err != nil {
		return "", err
	}
	return js.Path, nil
}

// Last returns the most recent journal entry, or false when the
// journal is empty or does not exist yet.
func (js *JournalStore) Last() (map[string]any, bool) {
	entries, err := js.read()
	if err != nil || len(entries) == 0 {
		return nil, false
	}
	return entries[len(entries)-1], true
}

// read loads the current journal contents. A missing file is an empty
// journal, not an error.
func (js *JournalStore) read() ([]map[string]any, error) {
	data, err := os.ReadFile(js.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing journal %s: %w", js.Path, err)
	}
	return entries, nil
}

// renderEntry fills {{field}} placeholders with the entry's values.
func renderEntry(tmpl string, doc map[string]any) string {
	pairs := make([]string, 0, len(doc)*2)
	for k, v := range doc {
		var s string
		switch vv := v.(type) {
		case string:
			s = vv
		case []string:
			s = strings.Join(vv, ", ")
		default:
			s = fmt.Sprint(vv)
		}
		pairs = append(pairs, "{{"+k+"}}", s)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// writeAtomic writes data to path through a temp file in the same
// directory plus a rename, so the target never holds a half-written
// record.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".murf-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing record file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("moving record into place: %w", err)
	}
	return nil
}
