package dialogue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Compile-time interface checks.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*JournalStore)(nil)
)

// --- FileStore ---

func TestFileStore_WritesOneFilePerRecord(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir, "order")

	location, err := fs.Write("Sam", map[string]any{"name": "Sam", "size": "Medium"})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := filepath.Join(dir, "order_Sam.json")
	if location != want {
		t.Errorf("location = %q, want %q", location, want)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("reading record file: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("record file is not valid JSON: %v", err)
	}
	if doc["name"] != "Sam" || doc["size"] != "Medium" {
		t.Errorf("record doc = %v", doc)
	}
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "records")
	fs := NewFileStore(dir, "order")

	if _, err := fs.Write("Ana", map[string]any{"name": "Ana"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "order_Ana.json")); err != nil {
		t.Errorf("record file missing: %v", err)
	}
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir, "order")

	if _, err := fs.Write("Sam", map[string]any{"name": "Sam"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory holds %v, want only order_Sam.json", names)
	}
}

// --- JournalStore ---

func TestJournalStore_AppendsPreservingEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellness_log.json")
	js := NewJournalStore(path)

	if _, err := js.Write("a", map[string]any{"mood": "calm"}); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if _, err := js.Write("b", map[string]any{"mood": "tired"}); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading journal: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("journal is not a JSON array: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("journal has %d entries, want 2", len(entries))
	}
	if entries[0]["mood"] != "calm" || entries[1]["mood"] != "tired" {
		t.Errorf("entries = %v", entries)
	}
}

func TestJournalStore_StampsDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	js := NewJournalStore(path)

	if _, err := js.Write("a", map[string]any{"mood": "calm"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entry, ok := js.Last()
	if !ok {
		t.Fatal("Last should find the written entry")
	}
	if entry["date"] != "2026-02-23" {
		t.Errorf("date = %v, want 2026-02-23", entry["date"])
	}
}

func TestJournalStore_RendersSummaryTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	js := NewJournalStore(path)
	js.Summary = "Feeling {{mood}} with {{energy_level}} energy."

	doc := map[string]any{"mood": "great", "energy_level": "high"}
	if _, err := js.Write("a", doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entry, _ := js.Last()
	if entry["summary"] != "Feeling great with high energy." {
		t.Errorf("summary = %v", entry["summary"])
	}
}

func TestJournalStore_LastOnMissingFile(t *testing.T) {
	js := NewJournalStore(filepath.Join(t.TempDir(), "absent.json"))
	if _, ok := js.Last(); ok {
		t.Error("Last on a missing journal should report false")
	}
}

func TestJournalStore_CorruptJournalFailsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seeding corrupt journal: %v", err)
	}

	js := NewJournalStore(path)
	_, err := js.Write("a", map[string]any{"mood": "calm"})
	if err == nil {
		t.Fatal("Write over a corrupt journal should fail")
	}
	if !containsStr(err.Error(), "parsing journal") {
		t.Errorf("error should mention 'parsing journal', got: %s", err.Error())
	}
}

// --- Finalize through real stores ---

func TestFinalize_FileStoreEndToEnd(t *testing.T) {
	dir := t.TempDir()
	r := completeOrder(t)

	res, err := Finalize(r, NewFileStore(dir, "order"))
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	data, err := os.ReadFile(res.Location)
	if err != nil {
		t.Fatalf("reading %s: %v", res.Location, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing record: %v", err)
	}

	for field, want := range map[string]string{
		"drink_type": "Latte",
		"size":       "Medium",
		"milk":       "Oat",
		"name":       "Sam",
		"id":         "Sam",
	} {
		if doc[field] != want {
			t.Errorf("doc[%s] = %v, want %s", field, doc[field], want)
		}
	}
	extras, ok := doc["extras"].([]any)
	if !ok || len(extras) != 0 {
		t.Errorf("extras = %v, want empty JSON array", doc["extras"])
	}
}

func TestFinalize_UnwritableDirFailsCleanly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blocked")
	// A file where the store wants a directory.
	if err := os.WriteFile(dir, []byte("x"), 0o644); err != nil {
		t.Fatalf("seeding blocker file: %v", err)
	}

	r := completeOrder(t)
	_, err := Finalize(r, NewFileStore(dir, "order"))
	if err == nil {
		t.Fatal("Finalize into an unusable directory should fail")
	}
	if r.Finalized() {
		t.Error("record must stay unfinalized after a failed write")
	}
}

// containsStr reports whether substr occurs in s.
func containsStr(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
