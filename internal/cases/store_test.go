package cases

import (
	"errors"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := testStore(t)
	if err := s.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return s
}

// --- Lookup ---

func TestGet_Miss(t *testing.T) {
	s := testStore(t)
	_, err := s.Get("nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store = %v, want ErrNotFound", err)
	}
}

func TestGet_SeededCase(t *testing.T) {
	s := seededStore(t)

	c, err := s.Get("John")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if c.UserName != "John" {
		t.Errorf("UserName = %q, want John", c.UserName)
	}
	if c.Status != StatusPending {
		t.Errorf("Status = %q, want %s", c.Status, StatusPending)
	}
	if c.TransactionName != "ABC Industry" || c.TransactionAmount != "$1,250.00" {
		t.Errorf("transaction = %s / %s", c.TransactionName, c.TransactionAmount)
	}
	if c.SecurityQuestion != "What is your mother's maiden name?" || c.SecurityAnswer != "Smith" {
		t.Errorf("security = %s / %s", c.SecurityQuestion, c.SecurityAnswer)
	}
}

func TestGet_CaseInsensitive(t *testing.T) {
	s := seededStore(t)

	for _, name := range []string{"john", "JOHN", "jOhN"} {
		c, err := s.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", name, err)
		}
		if c.UserName != "John" {
			t.Errorf("Get(%q).UserName = %q, want John", name, c.UserName)
		}
	}
}

// --- Update ---

func TestUpdateStatus_RecordsOutcome(t *testing.T) {
	s := seededStore(t)
	c, err := s.Get("John")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if err := s.UpdateStatus(c.ID, StatusConfirmedSafe, "Customer recognized the charge."); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	updated, err := s.Get("John")
	if err != nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if updated.Status != StatusConfirmedSafe {
		t.Errorf("Status = %q, want %s", updated.Status, StatusConfirmedSafe)
	}
	if updated.OutcomeNote != "Customer recognized the charge." {
		t.Errorf("OutcomeNote = %q", updated.OutcomeNote)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	s := seededStore(t)
	c, _ := s.Get("John")

	err := s.UpdateStatus(c.ID, "maybe_fraud", "")
	if err == nil {
		t.Fatal("UpdateStatus should reject an unknown status")
	}
	if !containsStr(err.Error(), "confirmed_safe, confirmed_fraud") {
		t.Errorf("error should list valid statuses, got: %s", err.Error())
	}
}

func TestUpdateStatus_MissingCase(t *testing.T) {
	s := testStore(t)
	if err := s.UpdateStatus(99, StatusConfirmedFraud, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus on missing id = %v, want ErrNotFound", err)
	}
}

// --- Seed ---

func TestSeed_Idempotent(t *testing.T) {
	s := seededStore(t)
	if err := s.Seed(); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if err := s.Seed(); err != nil {
		t.Fatalf("third Seed failed: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM fraud_cases`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("fraud_cases has %d rows after repeated seeds, want 1", count)
	}
}

func TestSeed_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := New(Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(Config{DataDir: dir})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	c, err := reopened.Get("john")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if c.CardEnding != "4242" {
		t.Errorf("CardEnding = %q, want 4242", c.CardEnding)
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
