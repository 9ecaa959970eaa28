package dialogue

import (
	"errors"
	"fmt"
	"testing"
)

// --- Fake stores ---

// memStore records writes in memory and counts them.
type memStore struct {
	writes  int
	lastID  string
	lastDoc map[string]any
}

func (m *memStore) Write(id string, doc map[string]any) (string, error) {
	m.writes++
	m.lastID = id
	m.lastDoc = doc
	return "mem://" + id, nil
}

// failStore fails every write.
type failStore struct{}

func (failStore) Write(id string, doc map[string]any) (string, error) {
	return "", fmt.Errorf("disk full")
}

func completeOrder(t *testing.T) *Record {
	t.Helper()
	r := NewRecord(orderSchema())
	mustSet(t, r, "drink_type", "Latte")
	mustSet(t, r, "size", "Medium")
	mustSet(t, r, "milk", "Oat")
	mustSet(t, r, "name", "Sam")
	return r
}

// --- Incomplete records ---

func TestFinalize_IncompleteCarriesMissingList(t *testing.T) {
	r := NewRecord(checkinSchema())
	mustSet(t, r, "mood", "calm")
	mustSet(t, r, "energy_level", "high")

	store := &memStore{}
	_, err := Finalize(r, store)
	if err == nil {
		t.Fatal("Finalize on incomplete record should fail")
	}

	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %T, want *IncompleteError", err)
	}
	if len(incomplete.Missing) != 1 || incomplete.Missing[0] != "goals" {
		t.Errorf("Missing = %v, want [goals]", incomplete.Missing)
	}
	if store.writes != 0 {
		t.Errorf("incomplete finalize performed %d writes, want 0", store.writes)
	}
	if r.Finalized() {
		t.Error("record must stay unfinalized after incomplete finalize")
	}
}

// --- Success path ---

func TestFinalize_WritesFullDocument(t *testing.T) {
	r := completeOrder(t)
	store := &memStore{}

	res, err := Finalize(r, store)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if res.ID != "Sam" {
		t.Errorf("ID = %q, want Sam", res.ID)
	}
	if res.Location != "mem://Sam" {
		t.Errorf("Location = %q, want mem://Sam", res.Location)
	}
	if !containsStr(res.Summary, "drink_type: Latte") {
		t.Errorf("Summary should list drink_type, got: %s", res.Summary)
	}

	doc := store.lastDoc
	if doc["drink_type"] != "Latte" || doc["size"] != "Medium" || doc["milk"] != "Oat" || doc["name"] != "Sam" {
		t.Errorf("document fields = %v", doc)
	}
	extras, ok := doc["extras"].([]string)
	if !ok || len(extras) != 0 {
		t.Errorf("extras = %v, want empty list present in document", doc["extras"])
	}
	if doc["id"] != "Sam" {
		t.Errorf("document id = %v, want Sam", doc["id"])
	}
	if doc["timestamp"] != "2026-02-23T12:00:00Z" {
		t.Errorf("document timestamp = %v, want frozen clock value", doc["timestamp"])
	}
}

func TestFinalize_MarksRecordImmutable(t *testing.T) {
	r := completeOrder(t)
	if _, err := Finalize(r, &memStore{}); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if !r.Finalized() {
		t.Fatal("record should be finalized")
	}
	if err := r.Set("size", "Large"); !errors.Is(err, ErrFinalized) {
		t.Errorf("Set after finalize = %v, want ErrFinalized", err)
	}
	if err := r.Append("extras", "whip"); !errors.Is(err, ErrFinalized) {
		t.Errorf("Append after finalize = %v, want ErrFinalized", err)
	}
	if err := r.Clear("size"); !errors.Is(err, ErrFinalized) {
		t.Errorf("Clear after finalize = %v, want ErrFinalized", err)
	}
}

// --- Idempotence ---

func TestFinalize_SecondCallReturnsPriorResult(t *testing.T) {
	r := completeOrder(t)
	store := &memStore{}

	first, err := Finalize(r, store)
	if err != nil {
		t.Fatalf("first Finalize failed: %v", err)
	}
	second, err := Finalize(r, store)
	if err != nil {
		t.Fatalf("second Finalize failed: %v", err)
	}

	if first != second {
		t.Error("second Finalize should return the cached result value")
	}
	if second.ID != "Sam" {
		t.Errorf("second ID = %q, want Sam", second.ID)
	}
	if store.writes != 1 {
		t.Errorf("two finalize calls performed %d writes, want exactly 1", store.writes)
	}
}

// --- Write failure ---

func TestFinalize_WriteFailureLeavesRecordRetryable(t *testing.T) {
	r := completeOrder(t)

	_, err := Finalize(r, failStore{})
	if !errors.Is(err, ErrDurableWrite) {
		t.Fatalf("error = %v, want ErrDurableWrite", err)
	}
	if r.Finalized() {
		t.Fatal("failed write must leave the record unfinalized")
	}

	// Retry against a working store succeeds.
	store := &memStore{}
	res, err := Finalize(r, store)
	if err != nil {
		t.Fatalf("retry Finalize failed: %v", err)
	}
	if res.ID != "Sam" || store.writes != 1 {
		t.Errorf("retry produced ID %q with %d writes, want Sam with 1", res.ID, store.writes)
	}
}

// --- Identifier derivation ---

func TestDeriveID_SanitizesPrimaryValue(t *testing.T) {
	r := completeOrder(t)
	mustSet(t, r, "name", "Sam O'Neil Jr.!")

	if got := deriveID(r); got != "SamONeilJr" {
		t.Errorf("deriveID = %q, want SamONeilJr", got)
	}
}

func TestDeriveID_TimestampWhenNoPrimary(t *testing.T) {
	r := NewRecord(checkinSchema())
	if got := deriveID(r); got != "20260223120000" {
		t.Errorf("deriveID = %q, want frozen timestamp key", got)
	}
}

func TestDeriveID_TimestampWhenPrimarySanitizesToNothing(t *testing.T) {
	r := completeOrder(t)
	mustSet(t, r, "name", "!!!")

	if got := deriveID(r); got != "20260223120000" {
		t.Errorf("deriveID = %q, want timestamp fallback", got)
	}
}

func TestSanitizeID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Sam", "Sam"},
		{"Sam Smith", "SamSmith"},
		{"../../etc/passwd", "etcpasswd"},
		{"maría", "mara"},
		{"", ""},
	}
	for _, c := range cases {
		if got := sanitizeID(c.in); got != c.want {
			t.Errorf("sanitizeID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// --- End-to-end checkin scenario ---

func TestFinalize_CheckinMissingGoalsOnly(t *testing.T) {
	r := NewRecord(checkinSchema())
	mustSet(t, r, "mood", "content")
	mustSet(t, r, "energy_level", "medium")

	_, err := Finalize(r, &memStore{})
	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %v, want *IncompleteError", err)
	}
	if len(incomplete.Missing) != 1 || incomplete.Missing[0] != "goals" {
		t.Errorf("Missing = %v, want exactly [goals]", incomplete.Missing)
	}
}
